package phase2

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/zulandar/checkgate/internal/models"
	"github.com/zulandar/checkgate/internal/session"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&models.Checklist{},
		&models.ChecklistItem{},
		&models.Template{},
		&models.TemplateItem{},
		&models.Session{},
		&models.Phase2Item{},
		&models.Validation{},
	); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

// openSession creates a session whose phase 2 is open.
func openSession(t *testing.T, db *gorm.DB) *models.Session {
	t.Helper()
	cl := models.Checklist{Name: "QA", Published: true}
	if err := db.Create(&cl).Error; err != nil {
		t.Fatalf("create checklist: %v", err)
	}
	now := time.Now()
	s := models.Session{
		ChecklistID:       cl.ID,
		Name:              "Run",
		CurrentPhase:      models.Phase2,
		StartedAt:         now,
		Phase1StartedAt:   &now,
		Phase1CompletedAt: &now,
		Phase2StartedAt:   &now,
	}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &s
}

func seedTemplate(t *testing.T, db *gorm.DB, itemCount int) *models.Template {
	t.Helper()
	tpl := models.Template{Name: "Smoke", Active: true}
	if err := db.Create(&tpl).Error; err != nil {
		t.Fatalf("create template: %v", err)
	}
	for i := 1; i <= itemCount; i++ {
		item := models.TemplateItem{TemplateID: tpl.ID, Position: i, Description: "imported check"}
		if err := db.Create(&item).Error; err != nil {
			t.Fatalf("create template item: %v", err)
		}
	}
	return &tpl
}

func TestAddManual(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)

	item, err := AddManual(db, s.ID, AddOpts{Description: "extra check", Category: "edge"})
	if err != nil {
		t.Fatalf("AddManual: %v", err)
	}
	if item.Position != 1 {
		t.Errorf("Position = %d, want 1", item.Position)
	}
	if item.Source != models.SourceManual {
		t.Errorf("Source = %q, want %q", item.Source, models.SourceManual)
	}
	if item.TemplateID != nil {
		t.Error("TemplateID should be nil for manual items")
	}
}

func TestAddManual_MissingDescription(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)

	_, err := AddManual(db, s.ID, AddOpts{Category: "edge"})
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("error = %v, want ValidationError", err)
	}
}

func TestAddManual_Phase2NotStarted(t *testing.T) {
	db := testDB(t)
	cl := models.Checklist{Name: "QA", Published: true}
	if err := db.Create(&cl).Error; err != nil {
		t.Fatalf("create checklist: %v", err)
	}
	s := models.Session{ChecklistID: cl.ID, Name: "Run", CurrentPhase: models.Phase1, StartedAt: time.Now()}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}

	_, err := AddManual(db, s.ID, AddOpts{Description: "too early"})
	var pre *session.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("error = %v, want PreconditionError", err)
	}
}

func TestAddManual_Phase2Complete(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)

	now := time.Now()
	if err := db.Model(s).Updates(map[string]interface{}{
		"phase2_completed_at": now,
		"completed_at":        now,
	}).Error; err != nil {
		t.Fatalf("close session: %v", err)
	}

	_, err := AddManual(db, s.ID, AddOpts{Description: "too late"})
	var pre *session.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("error = %v, want PreconditionError", err)
	}
}

func TestAddManual_SessionNotFound(t *testing.T) {
	db := testDB(t)

	_, err := AddManual(db, 999, AddOpts{Description: "orphan"})
	if err == nil {
		t.Fatal("expected error for non-existent session")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}

func TestImportFromTemplate(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)
	tpl := seedTemplate(t, db, 3)

	count, err := ImportFromTemplate(db, s.ID, tpl.ID)
	if err != nil {
		t.Fatalf("ImportFromTemplate: %v", err)
	}
	if count != 3 {
		t.Errorf("imported = %d, want 3", count)
	}

	items, err := ListBySession(db, s.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, item := range items {
		if item.Position != i+1 {
			t.Errorf("items[%d].Position = %d, want %d", i, item.Position, i+1)
		}
		if item.Source != models.SourceTemplate {
			t.Errorf("items[%d].Source = %q, want %q", i, item.Source, models.SourceTemplate)
		}
		if item.TemplateID == nil || *item.TemplateID != tpl.ID {
			t.Errorf("items[%d].TemplateID = %v, want %d", i, item.TemplateID, tpl.ID)
		}
	}
}

func TestImportFromTemplate_ContinuesNumbering(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)
	tpl := seedTemplate(t, db, 2)

	if _, err := AddManual(db, s.ID, AddOpts{Description: "first"}); err != nil {
		t.Fatalf("AddManual: %v", err)
	}

	if _, err := ImportFromTemplate(db, s.ID, tpl.ID); err != nil {
		t.Fatalf("ImportFromTemplate: %v", err)
	}

	items, err := ListBySession(db, s.ID)
	if err != nil {
		t.Fatalf("ListBySession: %v", err)
	}
	if len(items) != 3 {
		t.Fatalf("got %d items, want 3", len(items))
	}
	for i, item := range items {
		if item.Position != i+1 {
			t.Errorf("items[%d].Position = %d, want %d", i, item.Position, i+1)
		}
	}
	if items[0].Source != models.SourceManual {
		t.Errorf("items[0].Source = %q, want %q", items[0].Source, models.SourceManual)
	}
}

func TestImportFromTemplate_EmptyTemplate(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)
	tpl := seedTemplate(t, db, 0)

	count, err := ImportFromTemplate(db, s.ID, tpl.ID)
	if err != nil {
		t.Fatalf("ImportFromTemplate: %v", err)
	}
	if count != 0 {
		t.Errorf("imported = %d, want 0", count)
	}
}

func TestImportFromTemplate_TemplateNotFound(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)

	_, err := ImportFromTemplate(db, s.ID, 999)
	if err == nil {
		t.Fatal("expected error for non-existent template")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}

func TestImportFromTemplate_Phase2NotOpen(t *testing.T) {
	db := testDB(t)
	cl := models.Checklist{Name: "QA", Published: true}
	if err := db.Create(&cl).Error; err != nil {
		t.Fatalf("create checklist: %v", err)
	}
	s := models.Session{ChecklistID: cl.ID, Name: "Run", CurrentPhase: models.Phase1, StartedAt: time.Now()}
	if err := db.Create(&s).Error; err != nil {
		t.Fatalf("create session: %v", err)
	}
	tpl := seedTemplate(t, db, 1)

	_, err := ImportFromTemplate(db, s.ID, tpl.ID)
	var pre *session.PreconditionError
	if !errors.As(err, &pre) {
		t.Fatalf("error = %v, want PreconditionError", err)
	}
}

func TestDelete_RemovesValidations(t *testing.T) {
	db := testDB(t)
	s := openSession(t, db)

	item, err := AddManual(db, s.ID, AddOpts{Description: "doomed"})
	if err != nil {
		t.Fatalf("AddManual: %v", err)
	}
	val := models.Validation{
		ChecklistID:  s.ChecklistID,
		SessionID:    s.ID,
		Phase:        models.Phase2,
		Phase2ItemID: &item.ID,
		Status:       models.StatusPass,
		ValidatedAt:  time.Now(),
	}
	if err := db.Create(&val).Error; err != nil {
		t.Fatalf("create validation: %v", err)
	}

	if err := Delete(db, item.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	var count int64
	if err := db.Model(&models.Validation{}).Count(&count).Error; err != nil {
		t.Fatalf("count validations: %v", err)
	}
	if count != 0 {
		t.Errorf("validation count = %d, want 0", count)
	}
}
