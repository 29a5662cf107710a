package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/phase2"
)

func (h *handlers) addPhase2Item(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := phase2.AddManual(h.db, id, phase2.AddOpts{
		Category:       req.Category,
		Description:    req.Description,
		ExpectedResult: req.ExpectedResult,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

type importRequest struct {
	TemplateID uint `json:"template_id"`
}

func (h *handlers) importPhase2Items(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req importRequest
	if !bindJSON(c, &req) {
		return
	}

	count, err := phase2.ImportFromTemplate(h.db, id, req.TemplateID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"imported": count})
}

func (h *handlers) listPhase2Items(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	items, err := phase2.ListBySession(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *handlers) deletePhase2Item(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := phase2.Delete(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
