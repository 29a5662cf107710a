package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/template"
)

type createTemplateRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

func (h *handlers) createTemplate(c *gin.Context) {
	var req createTemplateRequest
	if !bindJSON(c, &req) {
		return
	}

	tpl, err := template.Create(h.db, template.CreateOpts{
		Name:        req.Name,
		Description: req.Description,
		Category:    req.Category,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, tpl)
}

func (h *handlers) listTemplates(c *gin.Context) {
	templates, err := template.List(h.db, template.ListFilters{
		ActiveOnly: c.Query("active") == "true",
		Category:   c.Query("category"),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *handlers) getTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	tpl, err := template.Get(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, tpl)
}

func (h *handlers) addTemplateItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := template.AddItem(h.db, id, template.AddItemOpts{
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

func (h *handlers) deactivateTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := template.Deactivate(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": false})
}

func (h *handlers) activateTemplate(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := template.Activate(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"active": true})
}
