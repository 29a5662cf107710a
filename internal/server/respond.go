package server

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/phase2"
	"github.com/zulandar/checkgate/internal/session"
	"github.com/zulandar/checkgate/internal/validation"
)

// respondError maps domain errors to HTTP status codes: malformed requests
// get 422, state conflicts get 409, missing records get 404.
func respondError(c *gin.Context, err error) {
	var (
		invalidStatus *validation.InvalidStatusError
		valErr        *validation.ValidationError
		p2Err         *phase2.ValidationError
		inputErr      *models.InvalidInputError
		preErr        *session.PreconditionError
		covErr        *session.IncompleteCoverageError
		notFound      *models.NotFoundError
	)

	switch {
	case errors.As(err, &invalidStatus), errors.As(err, &valErr), errors.As(err, &p2Err), errors.As(err, &inputErr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.As(err, &covErr):
		c.JSON(http.StatusConflict, gin.H{
			"error":     covErr.Error(),
			"validated": covErr.Validated,
			"total":     covErr.Total,
		})
	case errors.As(err, &preErr):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// paramID parses a numeric path parameter. A false return means the handler
// has already written a 400 response.
func paramID(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid %s %q", name, raw)})
		return 0, false
	}
	return uint(id), true
}

// bindJSON binds the request body, writing a 400 on failure.
func bindJSON(c *gin.Context, out interface{}) bool {
	if err := c.ShouldBindJSON(out); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
