// Package session manages test run sessions and their two-phase lifecycle.
//
// A session begins in phase 1, which covers the checklist's own items. Phase 1
// can only be completed once every checklist item has at least one recorded
// validation. Phase 2 opens after that and covers ad-hoc items added manually
// or imported from templates.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds the fields for starting a new session.
type CreateOpts struct {
	ChecklistID uint
	Name        string
}

// Create starts a new phase 1 session against a published checklist.
func Create(db *gorm.DB, opts CreateOpts) (*models.Session, error) {
	if opts.Name == "" {
		return nil, &models.InvalidInputError{Reason: "session: name is required"}
	}

	var cl models.Checklist
	if err := db.First(&cl, opts.ChecklistID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "checklist", ID: opts.ChecklistID}
		}
		return nil, fmt.Errorf("session: fetching checklist %d: %w", opts.ChecklistID, err)
	}
	if !cl.Published {
		return nil, &PreconditionError{
			Op:     "create",
			Reason: fmt.Sprintf("checklist %d is not published", opts.ChecklistID),
		}
	}

	now := time.Now()
	s := models.Session{
		ChecklistID:     opts.ChecklistID,
		Name:            opts.Name,
		CurrentPhase:    models.Phase1,
		StartedAt:       now,
		Phase1StartedAt: &now,
	}
	if err := db.Create(&s).Error; err != nil {
		return nil, fmt.Errorf("session: creating session: %w", err)
	}
	return &s, nil
}

// Get returns a session with its phase 2 items preloaded in position order.
func Get(db *gorm.DB, id uint) (*models.Session, error) {
	var s models.Session
	err := db.Preload("Phase2Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "session", ID: id}
		}
		return nil, fmt.Errorf("session: fetching session %d: %w", id, err)
	}
	return &s, nil
}

// GetByChecklist returns a checklist's sessions, newest first.
func GetByChecklist(db *gorm.DB, checklistID uint) ([]models.Session, error) {
	var sessions []models.Session
	err := db.Where("checklist_id = ?", checklistID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("session: listing sessions for checklist %d: %w", checklistID, err)
	}
	return sessions, nil
}

// List returns all sessions, newest first. When openOnly is set, sessions
// that have completed phase 2 are excluded.
func List(db *gorm.DB, openOnly bool) ([]models.Session, error) {
	query := db.Model(&models.Session{})
	if openOnly {
		query = query.Where("completed_at IS NULL")
	}

	var sessions []models.Session
	if err := query.Order("started_at DESC").Find(&sessions).Error; err != nil {
		return nil, fmt.Errorf("session: listing sessions: %w", err)
	}
	return sessions, nil
}

// Delete removes a session along with its phase 2 items and validations.
func Delete(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var s models.Session
		if err := tx.First(&s, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "session", ID: id}
			}
			return fmt.Errorf("session: fetching session %d: %w", id, err)
		}

		if err := tx.Where("session_id = ?", id).Delete(&models.Validation{}).Error; err != nil {
			return fmt.Errorf("session: deleting validations: %w", err)
		}
		if err := tx.Where("session_id = ?", id).Delete(&models.Phase2Item{}).Error; err != nil {
			return fmt.Errorf("session: deleting phase 2 items: %w", err)
		}
		if err := tx.Delete(&s).Error; err != nil {
			return fmt.Errorf("session: deleting session %d: %w", id, err)
		}
		return nil
	})
}
