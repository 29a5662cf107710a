package checklist

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// AddItemOpts holds parameters for adding an item to a checklist.
type AddItemOpts struct {
	Category       string
	Description    string
	ExpectedResult string
	Notes          string
}

// ItemPatch describes a partial update to a checklist item. Only fields that
// are non-nil are written.
type ItemPatch struct {
	Category       *string
	Description    *string
	ExpectedResult *string
	Notes          *string
}

// AddItem appends an item to a checklist at the next order position and bumps
// the checklist's updated timestamp.
func AddItem(db *gorm.DB, checklistID uint, opts AddItemOpts) (*models.ChecklistItem, error) {
	if opts.Description == "" {
		return nil, &models.InvalidInputError{Reason: "checklist: item description is required"}
	}

	var item models.ChecklistItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Checklist{}).Where("id = ?", checklistID).Count(&count).Error; err != nil {
			return fmt.Errorf("checklist: check %d: %w", checklistID, err)
		}
		if count == 0 {
			return &models.NotFoundError{Resource: "checklist", ID: checklistID}
		}

		var maxPos int
		if err := tx.Model(&models.ChecklistItem{}).
			Where("checklist_id = ?", checklistID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return fmt.Errorf("checklist: next position: %w", err)
		}

		item = models.ChecklistItem{
			ChecklistID:    checklistID,
			Position:       maxPos + 1,
			Category:       opts.Category,
			Description:    opts.Description,
			ExpectedResult: opts.ExpectedResult,
			Notes:          opts.Notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("checklist: add item: %w", err)
		}

		// Touch the parent so list ordering reflects the change.
		if err := tx.Model(&models.Checklist{}).Where("id = ?", checklistID).
			Update("updated_at", tx.NowFunc()).Error; err != nil {
			return fmt.Errorf("checklist: touch %d: %w", checklistID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Items returns all items for a checklist ordered by position.
func Items(db *gorm.DB, checklistID uint) ([]models.ChecklistItem, error) {
	var items []models.ChecklistItem
	if err := db.Where("checklist_id = ?", checklistID).
		Order("position ASC").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("checklist: items of %d: %w", checklistID, err)
	}
	return items, nil
}

// UpdateItem applies a partial update to a checklist item. A patch with no
// fields set is a no-op.
func UpdateItem(db *gorm.DB, itemID uint, patch ItemPatch) error {
	updates := make(map[string]interface{})
	if patch.Category != nil {
		updates["category"] = *patch.Category
	}
	if patch.Description != nil {
		if *patch.Description == "" {
			return &models.InvalidInputError{Reason: "checklist: item description cannot be empty"}
		}
		updates["description"] = *patch.Description
	}
	if patch.ExpectedResult != nil {
		updates["expected_result"] = *patch.ExpectedResult
	}
	if patch.Notes != nil {
		updates["notes"] = *patch.Notes
	}
	if len(updates) == 0 {
		return nil
	}

	var item models.ChecklistItem
	if err := db.First(&item, itemID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.NotFoundError{Resource: "checklist item", ID: itemID}
		}
		return fmt.Errorf("checklist: get item %d: %w", itemID, err)
	}

	if err := db.Model(&models.ChecklistItem{}).Where("id = ?", itemID).Updates(updates).Error; err != nil {
		return fmt.Errorf("checklist: update item %d: %w", itemID, err)
	}
	return nil
}

// DeleteItem removes an item and any validations recorded against it.
func DeleteItem(db *gorm.DB, itemID uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var item models.ChecklistItem
		if err := tx.First(&item, itemID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "checklist item", ID: itemID}
			}
			return fmt.Errorf("checklist: get item %d: %w", itemID, err)
		}
		if err := tx.Where("item_id = ?", itemID).Delete(&models.Validation{}).Error; err != nil {
			return fmt.Errorf("checklist: delete item validations: %w", err)
		}
		if err := tx.Delete(&models.ChecklistItem{}, itemID).Error; err != nil {
			return fmt.Errorf("checklist: delete item %d: %w", itemID, err)
		}
		return nil
	})
}
