package server

import (
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/notify"
	"github.com/zulandar/checkgate/internal/session"
)

type createSessionRequest struct {
	ChecklistID uint   `json:"checklist_id"`
	Name        string `json:"name"`
}

func (h *handlers) createSession(c *gin.Context) {
	var req createSessionRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := session.Create(h.db, session.CreateOpts{
		ChecklistID: req.ChecklistID,
		Name:        req.Name,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, s)
}

func (h *handlers) listSessions(c *gin.Context) {
	openOnly := c.Query("open") == "true"
	sessions, err := session.List(h.db, openOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

func (h *handlers) getSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, err := session.Get(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *handlers) deleteSession(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := session.Delete(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *handlers) listChecklistSessions(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	sessions, err := session.GetByChecklist(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, sessions)
}

type completePhaseRequest struct {
	CompletedBy string `json:"completed_by"`
}

func (h *handlers) completePhase1(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req completePhaseRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := session.CompletePhase1(h.db, id, req.CompletedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	h.announce(c, notify.Message{
		Title:    fmt.Sprintf("Phase 1 complete: %s", s.Name),
		Body:     fmt.Sprintf("All checklist items validated. Completed by %s.", req.CompletedBy),
		Severity: notify.SeveritySuccess,
	})
	c.JSON(http.StatusOK, s)
}

func (h *handlers) startPhase2(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	s, err := session.StartPhase2(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	h.announce(c, notify.Message{
		Title:    fmt.Sprintf("Phase 2 started: %s", s.Name),
		Severity: notify.SeverityInfo,
	})
	c.JSON(http.StatusOK, s)
}

func (h *handlers) completePhase2(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req completePhaseRequest
	if !bindJSON(c, &req) {
		return
	}

	s, err := session.CompletePhase2(h.db, id, req.CompletedBy)
	if err != nil {
		respondError(c, err)
		return
	}
	h.announce(c, notify.Message{
		Title:    fmt.Sprintf("Session closed: %s", s.Name),
		Body:     fmt.Sprintf("Phase 2 complete. Completed by %s.", req.CompletedBy),
		Severity: notify.SeveritySuccess,
	})
	c.JSON(http.StatusOK, s)
}

func (h *handlers) canStartPhase2(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	can, reason, err := session.CanStartPhase2(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"can_start_phase2": can, "reason": reason})
}

func (h *handlers) sessionCoverage(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cov, err := session.Phase1Coverage(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"validated": cov.Validated,
		"total":     cov.Total,
		"complete":  cov.Complete(),
	})
}

func (h *handlers) sessionItems(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	phase := models.Phase1
	if raw := c.Query("phase"); raw != "" {
		p, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid phase %q", raw)})
			return
		}
		phase = p
	}

	items, err := session.ItemsForPhase(h.db, id, phase)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

// announce sends a notification if a notifier is configured. Delivery
// failures are logged, not surfaced to the API caller.
func (h *handlers) announce(c *gin.Context, msg notify.Message) {
	if h.notifier == nil {
		return
	}
	if err := h.notifier.Send(c.Request.Context(), msg); err != nil {
		log.Printf("server: notify: %v", err)
	}
}
