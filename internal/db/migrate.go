package db

import (
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// AllModels returns the list of all GORM models for migration. Order matters:
// referenced tables are created before the tables that reference them.
func AllModels() []interface{} {
	return []interface{}{
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Template{},
		&models.TemplateItem{},
		&models.Session{},
		&models.Phase2Item{},
		&models.Validation{},
	}
}

// AutoMigrate creates or updates all Checkgate tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}
