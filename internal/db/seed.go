package db

import (
	"fmt"

	"github.com/zulandar/checkgate/internal/models"
	"gorm.io/gorm"
)

// Seed populates an empty database with a published demo checklist and a
// reusable regression template, for local development and demos. Seeding a
// non-empty database is a no-op.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Checklist{}).Count(&count).Error; err != nil {
		return fmt.Errorf("db: seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	checklist := models.Checklist{
		Name:        "Customer Data ETL Pipeline QA",
		Description: "Validation checklist for the daily customer data ETL process",
		Published:   true,
		Items: []models.ChecklistItem{
			{
				Position:       1,
				Category:       "Data Extraction",
				Description:    "Verify source database connection and data extraction",
				ExpectedResult: "Customer records from the past 24 hours extracted successfully",
				Notes:          "Expected row count 5000-8000 based on historical averages",
			},
			{
				Position:       2,
				Category:       "Data Transformation",
				Description:    "Validate phone number formatting transformation",
				ExpectedResult: "All phone numbers converted to (XXX) XXX-XXXX format",
			},
			{
				Position:       3,
				Category:       "Data Quality",
				Description:    "Check for duplicate customer IDs",
				ExpectedResult: "Zero duplicate customer_id values in transformed dataset",
			},
			{
				Position:       4,
				Category:       "Data Load",
				Description:    "Confirm successful load to target table",
				ExpectedResult: "Row count in target table matches transformed dataset count",
			},
			{
				Position:       5,
				Category:       "Performance",
				Description:    "Verify pipeline completion time",
				ExpectedResult: "Total pipeline execution time under 30 minutes",
			},
		},
	}
	if err := db.Create(&checklist).Error; err != nil {
		return fmt.Errorf("db: seed checklist: %w", err)
	}

	template := models.Template{
		Name:        "Regression Smoke Checks",
		Description: "Common follow-up checks to run during independent QA",
		Category:    "regression",
		Active:      true,
		Items: []models.TemplateItem{
			{
				Position:       1,
				Category:       "Regression",
				Description:    "Re-run previous release's smoke suite",
				ExpectedResult: "All smoke tests pass against the new build",
			},
			{
				Position:       2,
				Category:       "Regression",
				Description:    "Verify rollback procedure",
				ExpectedResult: "Rollback restores the prior version without data loss",
			},
			{
				Position:       3,
				Category:       "Monitoring",
				Description:    "Check error rates in the first hour after deploy",
				ExpectedResult: "Error rate within normal bounds",
			},
		},
	}
	if err := db.Create(&template).Error; err != nil {
		return fmt.Errorf("db: seed template: %w", err)
	}

	return nil
}
