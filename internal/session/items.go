package session

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// Item source labels for unified phase listings.
const (
	ItemSourceOriginal = "original"
	ItemSourcePhase2   = "phase2"
)

// PhaseItem is a unified view over a checklist item (phase 1) or a phase 2
// item, so callers can render either phase's work list the same way.
type PhaseItem struct {
	ID             uint
	Position       int
	Category       string
	Description    string
	ExpectedResult string
	Notes          string
	Source         string
}

// ItemsForPhase returns the items a session covers in the given phase, in
// position order. Phase 1 yields the checklist's own items; phase 2 yields
// those same items followed by the session's registered phase 2 items.
func ItemsForPhase(db *gorm.DB, sessionID uint, phase int) ([]PhaseItem, error) {
	if phase != models.Phase1 && phase != models.Phase2 {
		return nil, fmt.Errorf("session: unknown phase %d", phase)
	}

	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "session", ID: sessionID}
		}
		return nil, fmt.Errorf("session: fetching session %d: %w", sessionID, err)
	}

	var items []models.ChecklistItem
	err := db.Where("checklist_id = ?", s.ChecklistID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("session: listing checklist items: %w", err)
	}
	out := make([]PhaseItem, 0, len(items))
	for _, item := range items {
		out = append(out, PhaseItem{
			ID:             item.ID,
			Position:       item.Position,
			Category:       item.Category,
			Description:    item.Description,
			ExpectedResult: item.ExpectedResult,
			Notes:          item.Notes,
			Source:         ItemSourceOriginal,
		})
	}
	if phase == models.Phase1 {
		return out, nil
	}

	var extra []models.Phase2Item
	err = db.Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&extra).Error
	if err != nil {
		return nil, fmt.Errorf("session: listing phase 2 items: %w", err)
	}
	for _, item := range extra {
		out = append(out, PhaseItem{
			ID:             item.ID,
			Position:       item.Position,
			Category:       item.Category,
			Description:    item.Description,
			ExpectedResult: item.ExpectedResult,
			Notes:          item.Notes,
			Source:         ItemSourcePhase2,
		})
	}
	return out, nil
}
