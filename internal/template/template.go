// Package template manages reusable banks of checklist items that can be
// imported into a session's second phase.
package template

import (
	"errors"
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// CreateOpts holds the fields for creating a new template.
type CreateOpts struct {
	Name        string
	Description string
	Category    string
}

// Create inserts a new active template.
func Create(db *gorm.DB, opts CreateOpts) (*models.Template, error) {
	if opts.Name == "" {
		return nil, &models.InvalidInputError{Reason: "template: name is required"}
	}

	tpl := models.Template{
		Name:        opts.Name,
		Description: opts.Description,
		Category:    opts.Category,
		Active:      true,
	}
	if err := db.Create(&tpl).Error; err != nil {
		return nil, fmt.Errorf("template: creating template: %w", err)
	}
	return &tpl, nil
}

// Get returns a template with its items ordered by position.
func Get(db *gorm.DB, id uint) (*models.Template, error) {
	var tpl models.Template
	err := db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).First(&tpl, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &models.NotFoundError{Resource: "template", ID: id}
		}
		return nil, fmt.Errorf("template: fetching template %d: %w", id, err)
	}
	return &tpl, nil
}

// ListFilters narrows the set of templates returned by List.
type ListFilters struct {
	ActiveOnly bool
	Category   string
}

// List returns templates matching the filters, ordered by name.
func List(db *gorm.DB, filters ListFilters) ([]models.Template, error) {
	query := db.Model(&models.Template{})
	if filters.ActiveOnly {
		query = query.Where("active = ?", true)
	}
	if filters.Category != "" {
		query = query.Where("category = ?", filters.Category)
	}

	var templates []models.Template
	if err := query.Order("name ASC").Find(&templates).Error; err != nil {
		return nil, fmt.Errorf("template: listing templates: %w", err)
	}
	return templates, nil
}

// AddItemOpts holds the fields for appending an item to a template.
type AddItemOpts struct {
	Category       string
	Description    string
	ExpectedResult string
	Notes          string
}

// AddItem appends an item to the template at the next position.
func AddItem(db *gorm.DB, templateID uint, opts AddItemOpts) (*models.TemplateItem, error) {
	if opts.Description == "" {
		return nil, &models.InvalidInputError{Reason: "template: item description is required"}
	}

	var item models.TemplateItem
	err := db.Transaction(func(tx *gorm.DB) error {
		var tpl models.Template
		if err := tx.First(&tpl, templateID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &models.NotFoundError{Resource: "template", ID: templateID}
			}
			return fmt.Errorf("fetching template %d: %w", templateID, err)
		}

		var maxPos int
		if err := tx.Model(&models.TemplateItem{}).
			Where("template_id = ?", templateID).
			Select("COALESCE(MAX(position), 0)").
			Scan(&maxPos).Error; err != nil {
			return fmt.Errorf("finding max position: %w", err)
		}

		item = models.TemplateItem{
			TemplateID:     templateID,
			Position:       maxPos + 1,
			Category:       opts.Category,
			Description:    opts.Description,
			ExpectedResult: opts.ExpectedResult,
			Notes:          opts.Notes,
		}
		if err := tx.Create(&item).Error; err != nil {
			return fmt.Errorf("creating template item: %w", err)
		}

		return tx.Model(&tpl).Update("updated_at", tx.NowFunc()).Error
	})
	if err != nil {
		return nil, fmt.Errorf("template: %w", err)
	}
	return &item, nil
}

// Items returns the template's items ordered by position.
func Items(db *gorm.DB, templateID uint) ([]models.TemplateItem, error) {
	var items []models.TemplateItem
	err := db.Where("template_id = ?", templateID).
		Order("position ASC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("template: listing items for template %d: %w", templateID, err)
	}
	return items, nil
}

// Deactivate marks a template inactive so it no longer appears in active
// listings. Existing phase-2 items imported from it are unaffected.
func Deactivate(db *gorm.DB, id uint) error {
	result := db.Model(&models.Template{}).Where("id = ?", id).Update("active", false)
	if result.Error != nil {
		return fmt.Errorf("template: deactivating template %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "template", ID: id}
	}
	return nil
}

// Activate marks a template active again.
func Activate(db *gorm.DB, id uint) error {
	result := db.Model(&models.Template{}).Where("id = ?", id).Update("active", true)
	if result.Error != nil {
		return fmt.Errorf("template: activating template %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return &models.NotFoundError{Resource: "template", ID: id}
	}
	return nil
}
