// Package phase2 manages the ad-hoc items a session covers in its second
// phase, added one at a time or imported in bulk from a template.
package phase2

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/session"
	"gorm.io/gorm"
)

// ValidationError reports a malformed phase 2 item request.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "phase2: " + e.Reason
}

// fetchOpenSession loads a session and checks it is accepting phase 2 items.
func fetchOpenSession(tx *gorm.DB, sessionID uint) (*models.Session, error) {
	var s models.Session
	if err := tx.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "session", ID: sessionID}
		}
		return nil, fmt.Errorf("phase2: fetching session %d: %w", sessionID, err)
	}
	if s.Phase2StartedAt == nil {
		return nil, &session.PreconditionError{Op: "add phase 2 item", Reason: "phase 2 is not started"}
	}
	if s.Phase2CompletedAt != nil {
		return nil, &session.PreconditionError{Op: "add phase 2 item", Reason: "phase 2 is already complete"}
	}
	return &s, nil
}

func nextPosition(tx *gorm.DB, sessionID uint) (int, error) {
	var maxPos int
	err := tx.Model(&models.Phase2Item{}).
		Where("session_id = ?", sessionID).
		Select("COALESCE(MAX(position), 0)").
		Scan(&maxPos).Error
	if err != nil {
		return 0, fmt.Errorf("phase2: finding max position: %w", err)
	}
	return maxPos + 1, nil
}

// AddOpts holds the fields for manually adding a phase 2 item.
type AddOpts struct {
	Category       string
	Description    string
	ExpectedResult string
	Notes          string
}

// AddManual appends a single item to a session's phase 2 registry. The
// session must have phase 2 open.
func AddManual(db *gorm.DB, sessionID uint, opts AddOpts) (*models.Phase2Item, error) {
	if opts.Description == "" {
		return nil, &ValidationError{Reason: "description is required"}
	}

	var item models.Phase2Item
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := fetchOpenSession(tx, sessionID); err != nil {
			return err
		}
		pos, err := nextPosition(tx, sessionID)
		if err != nil {
			return err
		}

		item = models.Phase2Item{
			SessionID:      sessionID,
			Position:       pos,
			Category:       opts.Category,
			Description:    opts.Description,
			ExpectedResult: opts.ExpectedResult,
			Notes:          opts.Notes,
			Source:         models.SourceManual,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("phase2: creating item: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ImportFromTemplate copies a template's items into a session's phase 2
// registry, continuing the session's position numbering. Importing an empty
// template succeeds with a zero count. Returns the number of items imported.
func ImportFromTemplate(db *gorm.DB, sessionID, templateID uint) (int, error) {
	var imported int
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := fetchOpenSession(tx, sessionID); err != nil {
			return err
		}

		var tpl models.Template
		if err := tx.First(&tpl, templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "template", ID: templateID}
			}
			return fmt.Errorf("phase2: fetching template %d: %w", templateID, err)
		}

		var tplItems []models.TemplateItem
		err := tx.Where("template_id = ?", templateID).
			Order("position ASC").
			Find(&tplItems).Error
		if err != nil {
			return fmt.Errorf("phase2: listing template items: %w", err)
		}
		if len(tplItems) == 0 {
			return nil
		}

		pos, err := nextPosition(tx, sessionID)
		if err != nil {
			return err
		}

		for _, src := range tplItems {
			item := models.Phase2Item{
				SessionID:      sessionID,
				Position:       pos,
				Category:       src.Category,
				Description:    src.Description,
				ExpectedResult: src.ExpectedResult,
				Notes:          src.Notes,
				Source:         models.SourceTemplate,
				TemplateID:     &tpl.ID,
			}
			if err := tx.Create(&item).Error; err != nil {
				return fmt.Errorf("phase2: importing item at position %d: %w", pos, err)
			}
			pos++
			imported++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return imported, nil
}

// ListBySession returns a session's phase 2 items in position order.
func ListBySession(db *gorm.DB, sessionID uint) ([]models.Phase2Item, error) {
	var items []models.Phase2Item
	err := db.Where("session_id = ?", sessionID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("phase2: listing items for session %d: %w", sessionID, err)
	}
	return items, nil
}

// Delete removes a phase 2 item and its validations.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.Phase2Item
		if err := tx.First(&item, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "phase 2 item", ID: id}
			}
			return fmt.Errorf("phase2: fetching item %d: %w", id, err)
		}
		if err := tx.Where("phase2_item_id = ?", id).Delete(&models.Validation{}).Error; err != nil {
			return fmt.Errorf("phase2: deleting validations: %w", err)
		}
		if err := tx.Delete(&item).Error; err != nil {
			return fmt.Errorf("phase2: deleting item %d: %w", id, err)
		}
		return nil
	})
}
