// Package checklist provides checklist and checklist item management.
package checklist

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new checklist.
type CreateOpts struct {
	Name        string
	Description string
}

// Create creates a new unpublished checklist.
func Create(db *gorm.DB, opts CreateOpts) (*models.Checklist, error) {
	if opts.Name == "" {
		return nil, &models.InvalidInputError{Reason: "checklist: name is required"}
	}

	checklist := models.Checklist{
		Name:        opts.Name,
		Description: opts.Description,
	}
	if err := db.Create(&checklist).Error; err != nil {
		return nil, fmt.Errorf("checklist: create: %w", err)
	}
	return &checklist, nil
}

// Get retrieves a checklist by ID with its items preloaded in order.
func Get(db *gorm.DB, id uint) (*models.Checklist, error) {
	var checklist models.Checklist
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&checklist, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "checklist", ID: id}
		}
		return nil, fmt.Errorf("checklist: get %d: %w", id, err)
	}
	return &checklist, nil
}

// List returns checklists ordered by most recently updated. With
// publishedOnly set, drafts are excluded.
func List(db *gorm.DB, publishedOnly bool) ([]models.Checklist, error) {
	q := db.Model(&models.Checklist{})
	if publishedOnly {
		q = q.Where("published = ?", true)
	}

	var checklists []models.Checklist
	if err := q.Order("updated_at DESC").Find(&checklists).Error; err != nil {
		return nil, fmt.Errorf("checklist: list: %w", err)
	}
	return checklists, nil
}

// Publish marks a checklist as published, allowing sessions to run against it.
func Publish(db *gorm.DB, id uint) error {
	return setPublished(db, id, true)
}

// Unpublish reverts a checklist to draft. Existing sessions are unaffected.
func Unpublish(db *gorm.DB, id uint) error {
	return setPublished(db, id, false)
}

func setPublished(db *gorm.DB, id uint, published bool) error {
	result := db.Model(&models.Checklist{}).Where("id = ?", id).Update("published", published)
	if result.Error != nil {
		return fmt.Errorf("checklist: publish %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "checklist", ID: id}
	}
	return nil
}

// Delete removes a checklist and everything hanging off it: items, sessions,
// the sessions' phase-2 items, and all validations.
func Delete(db *gorm.DB, id uint) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		var checklist models.Checklist
		if err := tx.First(&checklist, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "checklist", ID: id}
			}
			return fmt.Errorf("checklist: get %d: %w", id, err)
		}

		sessionIDs := tx.Model(&models.Session{}).Select("id").Where("checklist_id = ?", id)
		if err := tx.Where("session_id IN (?)", sessionIDs).Delete(&models.Phase2Item{}).Error; err != nil {
			return fmt.Errorf("checklist: delete phase-2 items: %w", err)
		}
		if err := tx.Where("checklist_id = ?", id).Delete(&models.Validation{}).Error; err != nil {
			return fmt.Errorf("checklist: delete validations: %w", err)
		}
		if err := tx.Where("checklist_id = ?", id).Delete(&models.Session{}).Error; err != nil {
			return fmt.Errorf("checklist: delete sessions: %w", err)
		}
		if err := tx.Where("checklist_id = ?", id).Delete(&models.ChecklistItem{}).Error; err != nil {
			return fmt.Errorf("checklist: delete items: %w", err)
		}
		if err := tx.Delete(&models.Checklist{}, id).Error; err != nil {
			return fmt.Errorf("checklist: delete %d: %w", id, err)
		}
		return nil
	})
	return err
}
