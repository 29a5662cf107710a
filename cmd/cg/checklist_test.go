package main

import (
	"strings"
	"testing"
)

func TestChecklistLifecycleCLI(t *testing.T) {
	cfgPath := writeConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}

	out, err := run(t, "checklist", "create", "--name", "Release QA", "--config", cfgPath)
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.Contains(out, "Release QA") {
		t.Errorf("expected checklist name in output, got: %s", out)
	}

	if _, err := run(t, "checklist", "add-item", "1", "--description", "migrate db", "--category", "infra", "--config", cfgPath); err != nil {
		t.Fatalf("add-item failed: %v", err)
	}

	out, err = run(t, "checklist", "show", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "migrate db") {
		t.Errorf("expected item in show output, got: %s", out)
	}

	if _, err := run(t, "checklist", "update-item", "1", "--description", "migrate database", "--config", cfgPath); err != nil {
		t.Fatalf("update-item failed: %v", err)
	}
	out, err = run(t, "checklist", "show", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if !strings.Contains(out, "migrate database") {
		t.Errorf("expected updated description, got: %s", out)
	}
	// Untouched fields survive a partial update.
	if !strings.Contains(out, "infra") {
		t.Errorf("expected category to survive update, got: %s", out)
	}

	if _, err := run(t, "checklist", "delete-item", "1", "--config", cfgPath); err != nil {
		t.Fatalf("delete-item failed: %v", err)
	}
	out, err = run(t, "checklist", "show", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("show failed: %v", err)
	}
	if strings.Contains(out, "migrate database") {
		t.Errorf("expected item gone after delete, got: %s", out)
	}
}

func TestChecklistPublishCLI(t *testing.T) {
	cfgPath := writeConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if _, err := run(t, "checklist", "create", "--name", "Draft", "--config", cfgPath); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	out, err := run(t, "checklist", "list", "--published", "--config", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No checklists found.") {
		t.Errorf("expected no published checklists, got: %s", out)
	}

	if _, err := run(t, "checklist", "publish", "1", "--config", cfgPath); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	out, err = run(t, "checklist", "list", "--published", "--config", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "Draft") {
		t.Errorf("expected published checklist listed, got: %s", out)
	}
}

func TestChecklistDeleteCLI_RequiresConfirmation(t *testing.T) {
	cfgPath := writeConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if _, err := run(t, "checklist", "create", "--name", "Keep", "--config", cfgPath); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if _, err := run(t, "checklist", "delete", "1", "--config", cfgPath); err == nil {
		t.Fatal("expected delete without --yes to fail")
	}
	if _, err := run(t, "checklist", "delete", "1", "--yes", "--config", cfgPath); err != nil {
		t.Fatalf("delete with --yes failed: %v", err)
	}

	out, err := run(t, "checklist", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(out, "No checklists found.") {
		t.Errorf("expected empty list after delete, got: %s", out)
	}
}
