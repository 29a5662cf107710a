package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockSession fetches a session under a row lock so concurrent phase
// transitions serialize against each other.
func lockSession(tx *gorm.DB, id uint) (*models.Session, error) {
	var s models.Session
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "session", ID: id}
		}
		return nil, fmt.Errorf("session: fetching session %d: %w", id, err)
	}
	return &s, nil
}

// Coverage reports how many of a checklist's items have at least one
// phase 1 validation recorded in the session.
type Coverage struct {
	Validated int64
	Total     int64
}

// Complete reports whether every checklist item has been validated.
func (c Coverage) Complete() bool {
	return c.Validated >= c.Total
}

// Phase1Coverage computes phase 1 coverage for a session. Only validations
// that reference an item actually belonging to the session's checklist
// count toward coverage.
func Phase1Coverage(db *gorm.DB, sessionID uint) (Coverage, error) {
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Coverage{}, &models.NotFoundError{Resource: "session", ID: sessionID}
		}
		return Coverage{}, fmt.Errorf("session: fetching session %d: %w", sessionID, err)
	}
	return phase1Coverage(db, &s)
}

func phase1Coverage(tx *gorm.DB, s *models.Session) (Coverage, error) {
	var cov Coverage
	err := tx.Model(&models.ChecklistItem{}).
		Where("checklist_id = ?", s.ChecklistID).
		Count(&cov.Total).Error
	if err != nil {
		return Coverage{}, fmt.Errorf("session: counting checklist items: %w", err)
	}

	err = tx.Model(&models.Validation{}).
		Joins("JOIN checklist_items ON checklist_items.id = validations.item_id").
		Where("validations.session_id = ? AND validations.phase = ?", s.ID, models.Phase1).
		Where("checklist_items.checklist_id = ?", s.ChecklistID).
		Distinct("validations.item_id").
		Count(&cov.Validated).Error
	if err != nil {
		return Coverage{}, fmt.Errorf("session: counting validated items: %w", err)
	}
	return cov, nil
}

// CompletePhase1 marks phase 1 complete once every checklist item has a
// recorded validation. The session stays in phase 1 until StartPhase2 is
// called. Returns IncompleteCoverageError when items remain unvalidated and
// PreconditionError when phase 1 is already complete.
func CompletePhase1(db *gorm.DB, sessionID uint, completedBy string) (*models.Session, error) {
	var out *models.Session
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if s.Phase1CompletedAt != nil {
			return &PreconditionError{Op: "complete phase 1", Reason: "phase 1 is already complete"}
		}

		cov, err := phase1Coverage(tx, s)
		if err != nil {
			return err
		}
		if !cov.Complete() {
			return &IncompleteCoverageError{Validated: cov.Validated, Total: cov.Total}
		}

		now := time.Now()
		s.Phase1CompletedAt = &now
		s.Phase1CompletedBy = completedBy
		if err := tx.Save(s).Error; err != nil {
			return fmt.Errorf("session: saving session %d: %w", sessionID, err)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CanStartPhase2 reports whether phase 2 may be started, with a caller-facing
// reason when it may not. It never mutates state; callers use it to pre-flight
// before attempting StartPhase2.
func CanStartPhase2(db *gorm.DB, sessionID uint) (bool, string, error) {
	var s models.Session
	if err := db.First(&s, sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, "", &models.NotFoundError{Resource: "session", ID: sessionID}
		}
		return false, "", fmt.Errorf("session: fetching session %d: %w", sessionID, err)
	}
	if s.Phase1CompletedAt == nil {
		return false, "phase 1 is not complete", nil
	}
	if s.Phase2StartedAt != nil {
		return false, "phase 2 is already started", nil
	}
	return true, "", nil
}

// StartPhase2 moves a session into phase 2. Phase 1 must be complete and
// phase 2 must not already be started.
func StartPhase2(db *gorm.DB, sessionID uint) (*models.Session, error) {
	var out *models.Session
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if s.Phase1CompletedAt == nil {
			return &PreconditionError{Op: "start phase 2", Reason: "phase 1 is not complete"}
		}
		if s.Phase2StartedAt != nil {
			return &PreconditionError{Op: "start phase 2", Reason: "phase 2 is already started"}
		}

		now := time.Now()
		s.CurrentPhase = models.Phase2
		s.Phase2StartedAt = &now
		if err := tx.Save(s).Error; err != nil {
			return fmt.Errorf("session: saving session %d: %w", sessionID, err)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CompletePhase2 marks phase 2 complete and closes the session. Phase 2
// must be started and not already complete.
func CompletePhase2(db *gorm.DB, sessionID uint, completedBy string) (*models.Session, error) {
	var out *models.Session
	err := db.Transaction(func(tx *gorm.DB) error {
		s, err := lockSession(tx, sessionID)
		if err != nil {
			return err
		}
		if s.Phase2StartedAt == nil {
			return &PreconditionError{Op: "complete phase 2", Reason: "phase 2 is not started"}
		}
		if s.Phase2CompletedAt != nil {
			return &PreconditionError{Op: "complete phase 2", Reason: "phase 2 is already complete"}
		}

		now := time.Now()
		s.Phase2CompletedAt = &now
		s.Phase2CompletedBy = completedBy
		s.CompletedAt = &now
		if err := tx.Save(s).Error; err != nil {
			return fmt.Errorf("session: saving session %d: %w", sessionID, err)
		}
		out = s
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Phase2Open reports whether the session is accepting phase 2 items: phase 2
// has been started and not yet completed.
func Phase2Open(s *models.Session) bool {
	return s.Phase2StartedAt != nil && s.Phase2CompletedAt == nil
}
