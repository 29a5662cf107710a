package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/session"
	"github.com/zulandar/checkgate/internal/validation"
)

type recordValidationRequest struct {
	Phase         int    `json:"phase"`
	ItemID        uint   `json:"item_id"`
	Phase2ItemID  uint   `json:"phase2_item_id"`
	Status        string `json:"status"`
	ActualResult  string `json:"actual_result"`
	Notes         string `json:"notes"`
	ValidatorName string `json:"validator_name"`
}

func (h *handlers) recordValidation(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req recordValidationRequest
	if !bindJSON(c, &req) {
		return
	}

	val, err := validation.Record(h.db, validation.RecordOpts{
		SessionID:     id,
		Phase:         req.Phase,
		ItemID:        req.ItemID,
		Phase2ItemID:  req.Phase2ItemID,
		Status:        req.Status,
		ActualResult:  req.ActualResult,
		Notes:         req.Notes,
		ValidatorName: req.ValidatorName,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	if val.Status == models.StatusFail {
		h.reportFailure(c, val)
	}
	c.JSON(http.StatusCreated, val)
}

// reportFailure files a tracker issue for a failed validation if a reporter
// is configured. Failures to file are logged, not surfaced to the caller.
func (h *handlers) reportFailure(c *gin.Context, val *models.Validation) {
	if h.reporter == nil {
		return
	}
	s, err := session.Get(h.db, val.SessionID)
	if err != nil {
		log.Printf("server: issue report: %v", err)
		return
	}
	details, err := validation.Details(h.db, []models.Validation{*val})
	if err != nil || len(details) == 0 {
		log.Printf("server: issue report: resolving detail: %v", err)
		return
	}
	url, err := h.reporter.ReportFailure(c.Request.Context(), s, details[0])
	if err != nil {
		log.Printf("server: issue report: %v", err)
		return
	}
	log.Printf("server: filed issue for failed validation %d: %s", val.ID, url)
}

func (h *handlers) listSessionValidations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	phase := 0
	if raw := c.Query("phase"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid phase %q", raw)})
			return
		}
		phase = p
	}

	vals, err := validation.BySession(h.db, id, phase)
	if err != nil {
		respondError(c, err)
		return
	}
	details, err := validation.Details(h.db, vals)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, details)
}

func (h *handlers) groupedSessionValidations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	groups, err := validation.BySessionGrouped(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, groups)
}

func (h *handlers) sessionSummary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sum, err := validation.Summarize(h.db, validation.SummaryFilter{SessionID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}

func (h *handlers) listChecklistValidations(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	vals, err := validation.ByChecklist(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, vals)
}

func (h *handlers) sessionTimeline(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	timeline, err := validation.Timeline(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, timeline)
}

func (h *handlers) checklistTimeline(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	history, err := validation.ChecklistHistory(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}

func (h *handlers) checklistSummary(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sum, err := validation.Summarize(h.db, validation.SummaryFilter{ChecklistID: id})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sum)
}
