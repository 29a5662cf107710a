// Package validation records and queries the per-item validation ledger.
//
// Every record ties a status to exactly one item: a checklist item in
// phase 1, and either a checklist item or a session's phase 2 item in
// phase 2. Records are append-only; revalidating an item adds a new row
// rather than rewriting history.
package validation

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

func validStatus(status string) bool {
	switch status {
	case models.StatusPass, models.StatusFail, models.StatusSkip, models.StatusBlocked:
		return true
	}
	return false
}

// RecordOpts holds the fields for recording a validation. Exactly one of
// ItemID or Phase2ItemID must be set; phase 1 only accepts ItemID.
type RecordOpts struct {
	SessionID     uint
	Phase         int
	ItemID        uint
	Phase2ItemID  uint
	Status        string
	ActualResult  string
	Notes         string
	ValidatorName string
}

// Record appends a validation to the ledger. The referenced item must belong
// to the session's checklist (phase 1) or to the session itself (phase 2).
func Record(db *gorm.DB, opts RecordOpts) (*models.Validation, error) {
	if !validStatus(opts.Status) {
		return nil, &InvalidStatusError{Status: opts.Status}
	}

	var s models.Session
	if err := db.First(&s, opts.SessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "session", ID: opts.SessionID}
		}
		return nil, fmt.Errorf("validation: fetching session %d: %w", opts.SessionID, err)
	}

	val := models.Validation{
		ChecklistID:   s.ChecklistID,
		SessionID:     s.ID,
		Phase:         opts.Phase,
		Status:        opts.Status,
		ActualResult:  opts.ActualResult,
		Notes:         opts.Notes,
		ValidatorName: opts.ValidatorName,
		ValidatedAt:   time.Now(),
	}

	if opts.Phase != models.Phase1 && opts.Phase != models.Phase2 {
		return nil, &ValidationError{Reason: fmt.Sprintf("unknown phase %d", opts.Phase)}
	}
	if opts.ItemID != 0 && opts.Phase2ItemID != 0 {
		return nil, &ValidationError{Reason: "a validation references one item, not both"}
	}
	if opts.Phase == models.Phase1 && opts.Phase2ItemID != 0 {
		return nil, &ValidationError{Reason: "phase 1 cannot reference a phase 2 item"}
	}

	switch {
	case opts.ItemID != 0:
		var item models.ChecklistItem
		if err := db.First(&item, opts.ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &models.NotFoundError{Resource: "checklist item", ID: opts.ItemID}
			}
			return nil, fmt.Errorf("validation: fetching checklist item %d: %w", opts.ItemID, err)
		}
		if item.ChecklistID != s.ChecklistID {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("item %d does not belong to checklist %d", opts.ItemID, s.ChecklistID),
			}
		}
		val.ItemID = &item.ID
	case opts.Phase2ItemID != 0:
		var item models.Phase2Item
		if err := db.First(&item, opts.Phase2ItemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, &models.NotFoundError{Resource: "phase 2 item", ID: opts.Phase2ItemID}
			}
			return nil, fmt.Errorf("validation: fetching phase 2 item %d: %w", opts.Phase2ItemID, err)
		}
		if item.SessionID != s.ID {
			return nil, &ValidationError{
				Reason: fmt.Sprintf("phase 2 item %d does not belong to session %d", opts.Phase2ItemID, s.ID),
			}
		}
		val.Phase2ItemID = &item.ID
	default:
		return nil, &ValidationError{Reason: "a validation must reference an item"}
	}

	if err := db.Create(&val).Error; err != nil {
		return nil, fmt.Errorf("validation: recording validation: %w", err)
	}
	return &val, nil
}
