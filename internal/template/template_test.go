package template

import (
	"strings"
	"testing"

	"github.com/zulandar/checkgate/internal/models"
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
	if err := db.AutoMigrate(&models.Template{}, &models.TemplateItem{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestCreate(t *testing.T) {
	db := testDB(t)

	tpl, err := Create(db, CreateOpts{Name: "Smoke", Category: "regression"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if tpl.ID == 0 {
		t.Error("ID should be assigned")
	}
	if !tpl.Active {
		t.Error("new template should be active")
	}
}

func TestCreate_MissingName(t *testing.T) {
	db := testDB(t)

	_, err := Create(db, CreateOpts{Category: "regression"})
	if err == nil {
		t.Fatal("expected error for missing name")
	}
	if !strings.Contains(err.Error(), "name is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "name is required")
	}
}

func TestGet_PreloadsItemsInOrder(t *testing.T) {
	db := testDB(t)

	tpl, err := Create(db, CreateOpts{Name: "Ordered"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	for _, desc := range []string{"one", "two", "three"} {
		if _, err := AddItem(db, tpl.ID, AddItemOpts{Description: desc}); err != nil {
			t.Fatalf("AddItem %q: %v", desc, err)
		}
	}

	got, err := Get(db, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(got.Items))
	}
	for i, want := range []string{"one", "two", "three"} {
		if got.Items[i].Description != want {
			t.Errorf("Items[%d].Description = %q, want %q", i, got.Items[i].Description, want)
		}
	}
}

func TestGet_NotFound(t *testing.T) {
	db := testDB(t)

	_, err := Get(db, 999)
	if err == nil {
		t.Fatal("expected error for non-existent template")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}

func TestList_Filters(t *testing.T) {
	db := testDB(t)

	active, err := Create(db, CreateOpts{Name: "Active", Category: "smoke"})
	if err != nil {
		t.Fatalf("Create active: %v", err)
	}
	inactive, err := Create(db, CreateOpts{Name: "Retired", Category: "smoke"})
	if err != nil {
		t.Fatalf("Create inactive: %v", err)
	}
	if err := Deactivate(db, inactive.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	if _, err := Create(db, CreateOpts{Name: "Other", Category: "perf"}); err != nil {
		t.Fatalf("Create other: %v", err)
	}

	all, err := List(db, ListFilters{})
	if err != nil {
		t.Fatalf("List all: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("List all: got %d, want 3", len(all))
	}
	if all[0].Name != "Active" || all[1].Name != "Other" || all[2].Name != "Retired" {
		t.Errorf("order = [%s, %s, %s], want alphabetical", all[0].Name, all[1].Name, all[2].Name)
	}

	activeOnly, err := List(db, ListFilters{ActiveOnly: true})
	if err != nil {
		t.Fatalf("List active: %v", err)
	}
	if len(activeOnly) != 2 {
		t.Errorf("List active: got %d, want 2", len(activeOnly))
	}

	smoke, err := List(db, ListFilters{ActiveOnly: true, Category: "smoke"})
	if err != nil {
		t.Fatalf("List smoke: %v", err)
	}
	if len(smoke) != 1 || smoke[0].ID != active.ID {
		t.Errorf("List smoke: got %d templates, want 1 with ID %d", len(smoke), active.ID)
	}
}

func TestAddItem_PositionsIncrease(t *testing.T) {
	db := testDB(t)

	tpl, err := Create(db, CreateOpts{Name: "Positions"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for want := 1; want <= 3; want++ {
		item, err := AddItem(db, tpl.ID, AddItemOpts{Description: "check"})
		if err != nil {
			t.Fatalf("AddItem %d: %v", want, err)
		}
		if item.Position != want {
			t.Errorf("Position = %d, want %d", item.Position, want)
		}
	}
}

func TestAddItem_MissingDescription(t *testing.T) {
	db := testDB(t)

	tpl, err := Create(db, CreateOpts{Name: "Empty"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = AddItem(db, tpl.ID, AddItemOpts{Category: "misc"})
	if err == nil {
		t.Fatal("expected error for missing description")
	}
	if !strings.Contains(err.Error(), "description is required") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "description is required")
	}
}

func TestAddItem_TemplateNotFound(t *testing.T) {
	db := testDB(t)

	_, err := AddItem(db, 999, AddItemOpts{Description: "orphan"})
	if err == nil {
		t.Fatal("expected error for non-existent template")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}

func TestDeactivateActivate(t *testing.T) {
	db := testDB(t)

	tpl, err := Create(db, CreateOpts{Name: "Toggle"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := Deactivate(db, tpl.ID); err != nil {
		t.Fatalf("Deactivate: %v", err)
	}
	got, err := Get(db, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Active {
		t.Error("template should be inactive")
	}

	if err := Activate(db, tpl.ID); err != nil {
		t.Fatalf("Activate: %v", err)
	}
	got, err = Get(db, tpl.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !got.Active {
		t.Error("template should be active")
	}
}

func TestDeactivate_NotFound(t *testing.T) {
	db := testDB(t)

	err := Deactivate(db, 999)
	if err == nil {
		t.Fatal("expected error for non-existent template")
	}
	if !strings.Contains(err.Error(), "not found") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "not found")
	}
}
