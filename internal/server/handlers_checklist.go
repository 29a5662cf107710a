package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/checkgate/internal/checklist"
)

type createChecklistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

func (h *handlers) createChecklist(c *gin.Context) {
	var req createChecklistRequest
	if !bindJSON(c, &req) {
		return
	}

	cl, err := checklist.Create(h.db, checklist.CreateOpts{
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cl)
}

func (h *handlers) listChecklists(c *gin.Context) {
	publishedOnly := c.Query("published") == "true"
	checklists, err := checklist.List(h.db, publishedOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, checklists)
}

func (h *handlers) getChecklist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	cl, err := checklist.Get(h.db, id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cl)
}

func (h *handlers) publishChecklist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := checklist.Publish(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": true})
}

func (h *handlers) unpublishChecklist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := checklist.Unpublish(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"published": false})
}

func (h *handlers) deleteChecklist(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := checklist.Delete(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type addItemRequest struct {
	Category       string `json:"category"`
	Description    string `json:"description"`
	ExpectedResult string `json:"expected_result"`
	Notes          string `json:"notes"`
}

func (h *handlers) addChecklistItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req addItemRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := checklist.AddItem(h.db, id, checklist.AddItemOpts{
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

type updateItemRequest struct {
	Category       *string `json:"category"`
	Description    *string `json:"description"`
	ExpectedResult *string `json:"expected_result"`
	Notes          *string `json:"notes"`
}

func (h *handlers) updateChecklistItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	var req updateItemRequest
	if !bindJSON(c, &req) {
		return
	}

	err := checklist.UpdateItem(h.db, id, checklist.ItemPatch{
		Category:       req.Category,
		Description:    req.Description,
		ExpectedResult: req.ExpectedResult,
		Notes:          req.Notes,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": true})
}

func (h *handlers) deleteChecklistItem(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	if err := checklist.DeleteItem(h.db, id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
