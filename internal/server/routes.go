package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// registerRoutes sets up all API routes on the Gin router.
func registerRoutes(router *gin.Engine, h *handlers) {
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")

	// Checklists and their items.
	api.POST("/checklists", h.createChecklist)
	api.GET("/checklists", h.listChecklists)
	api.GET("/checklists/:id", h.getChecklist)
	api.POST("/checklists/:id/publish", h.publishChecklist)
	api.POST("/checklists/:id/unpublish", h.unpublishChecklist)
	api.DELETE("/checklists/:id", h.deleteChecklist)
	api.POST("/checklists/:id/items", h.addChecklistItem)
	api.PATCH("/items/:id", h.updateChecklistItem)
	api.DELETE("/items/:id", h.deleteChecklistItem)

	// Checklist-scoped reporting.
	api.GET("/checklists/:id/sessions", h.listChecklistSessions)
	api.GET("/checklists/:id/validations", h.listChecklistValidations)
	api.GET("/checklists/:id/timeline", h.checklistTimeline)
	api.GET("/checklists/:id/summary", h.checklistSummary)

	// Sessions and phase transitions.
	api.POST("/sessions", h.createSession)
	api.GET("/sessions", h.listSessions)
	api.GET("/sessions/:id", h.getSession)
	api.DELETE("/sessions/:id", h.deleteSession)
	api.POST("/sessions/:id/complete-phase1", h.completePhase1)
	api.POST("/sessions/:id/start-phase2", h.startPhase2)
	api.POST("/sessions/:id/complete-phase2", h.completePhase2)
	api.GET("/sessions/:id/can-start-phase2", h.canStartPhase2)
	api.GET("/sessions/:id/coverage", h.sessionCoverage)
	api.GET("/sessions/:id/items", h.sessionItems)

	// Validation ledger.
	api.POST("/sessions/:id/validations", h.recordValidation)
	api.GET("/sessions/:id/validations", h.listSessionValidations)
	api.GET("/sessions/:id/validations/grouped", h.groupedSessionValidations)
	api.GET("/sessions/:id/timeline", h.sessionTimeline)
	api.GET("/sessions/:id/summary", h.sessionSummary)

	// Phase 2 item registry.
	api.POST("/sessions/:id/phase2-items", h.addPhase2Item)
	api.POST("/sessions/:id/phase2-items/import", h.importPhase2Items)
	api.GET("/sessions/:id/phase2-items", h.listPhase2Items)
	api.DELETE("/phase2-items/:id", h.deletePhase2Item)

	// Templates.
	api.POST("/templates", h.createTemplate)
	api.GET("/templates", h.listTemplates)
	api.GET("/templates/:id", h.getTemplate)
	api.POST("/templates/:id/items", h.addTemplateItem)
	api.POST("/templates/:id/deactivate", h.deactivateTemplate)
	api.POST("/templates/:id/activate", h.activateTemplate)
}
