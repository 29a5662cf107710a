package validation

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// Summary holds per-status counts over a slice of the ledger.
type Summary struct {
	Total   int64
	Passed  int64
	Failed  int64
	Skipped int64
	Blocked int64
}

// SummaryFilter narrows which validations a Summary covers. Zero fields are
// ignored.
type SummaryFilter struct {
	ChecklistID uint
	SessionID   uint
	Phase       int
}

// Summarize computes status counts in a single aggregate query.
func Summarize(db *gorm.DB, filter SummaryFilter) (Summary, error) {
	query := db.Model(&models.Validation{})
	if filter.ChecklistID != 0 {
		query = query.Where("checklist_id = ?", filter.ChecklistID)
	}
	if filter.SessionID != 0 {
		query = query.Where("session_id = ?", filter.SessionID)
	}
	if filter.Phase != 0 {
		query = query.Where("phase = ?", filter.Phase)
	}

	var sum Summary
	err := query.Select(
		"COUNT(*) AS total, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS passed, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS failed, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS skipped, "+
			"COALESCE(SUM(CASE WHEN status = ? THEN 1 ELSE 0 END), 0) AS blocked",
		models.StatusPass, models.StatusFail, models.StatusSkip, models.StatusBlocked,
	).Scan(&sum).Error
	if err != nil {
		return Summary{}, fmt.Errorf("validation: summarizing: %w", err)
	}
	return sum, nil
}

// ByChecklist returns all validations recorded against a checklist, newest
// first.
func ByChecklist(db *gorm.DB, checklistID uint) ([]models.Validation, error) {
	var vals []models.Validation
	err := db.Where("checklist_id = ?", checklistID).
		Order("validated_at DESC").
		Find(&vals).Error
	if err != nil {
		return nil, fmt.Errorf("validation: listing by checklist %d: %w", checklistID, err)
	}
	return vals, nil
}

// BySession returns a session's validations, newest first. Phase 0 returns
// both phases.
func BySession(db *gorm.DB, sessionID uint, phase int) ([]models.Validation, error) {
	query := db.Where("session_id = ?", sessionID)
	if phase != 0 {
		query = query.Where("phase = ?", phase)
	}

	var vals []models.Validation
	if err := query.Order("validated_at DESC").Find(&vals).Error; err != nil {
		return nil, fmt.Errorf("validation: listing by session %d: %w", sessionID, err)
	}
	return vals, nil
}

// PhaseGroup pairs a phase number with its validations.
type PhaseGroup struct {
	Phase       int
	Validations []models.Validation
}

// BySessionGrouped returns a session's validations split by phase, phase 1
// first, validations newest first within each group.
func BySessionGrouped(db *gorm.DB, sessionID uint) ([]PhaseGroup, error) {
	vals, err := BySession(db, sessionID, 0)
	if err != nil {
		return nil, err
	}

	groups := []PhaseGroup{{Phase: models.Phase1}, {Phase: models.Phase2}}
	for _, v := range vals {
		switch v.Phase {
		case models.Phase1:
			groups[0].Validations = append(groups[0].Validations, v)
		case models.Phase2:
			groups[1].Validations = append(groups[1].Validations, v)
		}
	}
	return groups, nil
}

// Timeline returns every validation a session has recorded across both
// phases, newest first, with item descriptions resolved.
func Timeline(db *gorm.DB, sessionID uint) ([]Detail, error) {
	vals, err := BySession(db, sessionID, 0)
	if err != nil {
		return nil, err
	}
	return Details(db, vals)
}

// SessionTimeline pairs a session with its recorded validations.
type SessionTimeline struct {
	Session     models.Session
	Validations []models.Validation
}

// ChecklistHistory returns a checklist's validation history grouped by
// session, newest session first.
func ChecklistHistory(db *gorm.DB, checklistID uint) ([]SessionTimeline, error) {
	var sessions []models.Session
	err := db.Where("checklist_id = ?", checklistID).
		Order("started_at DESC").
		Find(&sessions).Error
	if err != nil {
		return nil, fmt.Errorf("validation: listing sessions for checklist %d: %w", checklistID, err)
	}

	history := make([]SessionTimeline, 0, len(sessions))
	for _, s := range sessions {
		vals, err := BySession(db, s.ID, 0)
		if err != nil {
			return nil, err
		}
		history = append(history, SessionTimeline{Session: s, Validations: vals})
	}
	return history, nil
}

// DistinctCoverage counts the distinct items a session has validated in a
// phase, regardless of status. Phase 2 counts both item kinds.
func DistinctCoverage(db *gorm.DB, sessionID uint, phase int) (int64, error) {
	distinctColumn := func(column string) (int64, error) {
		var count int64
		err := db.Model(&models.Validation{}).
			Where("session_id = ? AND phase = ?", sessionID, phase).
			Where(column + " IS NOT NULL").
			Distinct(column).
			Count(&count).Error
		if err != nil {
			return 0, fmt.Errorf("validation: counting distinct coverage: %w", err)
		}
		return count, nil
	}

	count, err := distinctColumn("item_id")
	if err != nil {
		return 0, err
	}
	if phase == models.Phase2 {
		extra, err := distinctColumn("phase2_item_id")
		if err != nil {
			return 0, err
		}
		count += extra
	}
	return count, nil
}

// Detail is a validation with its target item's description resolved, for
// display surfaces that show what was validated rather than a bare ID.
type Detail struct {
	models.Validation
	ItemDescription string
}

// Details resolves item descriptions for a slice of validations.
func Details(db *gorm.DB, vals []models.Validation) ([]Detail, error) {
	itemIDs := make([]uint, 0, len(vals))
	phase2IDs := make([]uint, 0, len(vals))
	for _, v := range vals {
		if v.ItemID != nil {
			itemIDs = append(itemIDs, *v.ItemID)
		}
		if v.Phase2ItemID != nil {
			phase2IDs = append(phase2IDs, *v.Phase2ItemID)
		}
	}

	itemDesc := make(map[uint]string, len(itemIDs))
	if len(itemIDs) > 0 {
		var items []models.ChecklistItem
		if err := db.Where("id IN ?", itemIDs).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("validation: resolving checklist items: %w", err)
		}
		for _, item := range items {
			itemDesc[item.ID] = item.Description
		}
	}

	phase2Desc := make(map[uint]string, len(phase2IDs))
	if len(phase2IDs) > 0 {
		var items []models.Phase2Item
		if err := db.Where("id IN ?", phase2IDs).Find(&items).Error; err != nil {
			return nil, fmt.Errorf("validation: resolving phase 2 items: %w", err)
		}
		for _, item := range items {
			phase2Desc[item.ID] = item.Description
		}
	}

	details := make([]Detail, 0, len(vals))
	for _, v := range vals {
		d := Detail{Validation: v}
		if v.ItemID != nil {
			d.ItemDescription = itemDesc[*v.ItemID]
		}
		if v.Phase2ItemID != nil {
			d.ItemDescription = phase2Desc[*v.Phase2ItemID]
		}
		details = append(details, d)
	}
	return details, nil
}

// Failures returns a session's failed validations, newest first.
func Failures(db *gorm.DB, sessionID uint) ([]models.Validation, error) {
	var vals []models.Validation
	err := db.Where("session_id = ? AND status = ?", sessionID, models.StatusFail).
		Order("validated_at DESC").
		Find(&vals).Error
	if err != nil {
		return nil, fmt.Errorf("validation: listing failures for session %d: %w", sessionID, err)
	}
	return vals, nil
}

// Get returns a single validation by ID.
func Get(db *gorm.DB, id uint) (*models.Validation, error) {
	var val models.Validation
	if err := db.First(&val, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "validation", ID: id}
		}
		return nil, fmt.Errorf("validation: fetching validation %d: %w", id, err)
	}
	return &val, nil
}
