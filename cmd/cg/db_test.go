package main

import (
	"strings"
	"testing"
)

func TestDBCmd_Help(t *testing.T) {
	out, err := run(t, "db", "--help")
	if err != nil {
		t.Fatalf("db --help failed: %v", err)
	}
	if !strings.Contains(out, "Database management") {
		t.Errorf("expected help to mention 'Database management', got: %s", out)
	}
	if !strings.Contains(out, "init") {
		t.Errorf("expected help to list 'init' subcommand, got: %s", out)
	}
}

func TestDBInitCmd_Help(t *testing.T) {
	out, err := run(t, "db", "init", "--help")
	if err != nil {
		t.Fatalf("db init --help failed: %v", err)
	}
	if !strings.Contains(out, "--config") {
		t.Errorf("expected help to mention '--config' flag, got: %s", out)
	}
	if !strings.Contains(out, "checkgate.yaml") {
		t.Errorf("expected default config path 'checkgate.yaml', got: %s", out)
	}
}

func TestDBInitCmd_MissingConfig(t *testing.T) {
	_, err := run(t, "db", "init", "--config", "/nonexistent/checkgate.yaml")
	if err == nil {
		t.Fatal("expected error for missing config file")
	}
	if !strings.Contains(err.Error(), "load config") {
		t.Errorf("error = %q, want to contain %q", err.Error(), "load config")
	}
}

func TestDBInitCmd_MigratesAndSeeds(t *testing.T) {
	cfgPath := writeConfig(t)

	out, err := run(t, "db", "init", "--seed", "--config", cfgPath)
	if err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if !strings.Contains(out, "Migrated") {
		t.Errorf("expected migration output, got: %s", out)
	}
	if !strings.Contains(out, "Sample data loaded") {
		t.Errorf("expected seed output, got: %s", out)
	}

	// The seeded checklist is visible through the CLI.
	out, err = run(t, "checklist", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("checklist list failed: %v", err)
	}
	if !strings.Contains(out, "Customer Data ETL Pipeline QA") {
		t.Errorf("expected seeded checklist in listing, got: %s", out)
	}
}

func TestDBSeedCmd_Idempotent(t *testing.T) {
	cfgPath := writeConfig(t)

	if _, err := run(t, "db", "init", "--seed", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if _, err := run(t, "db", "seed", "--config", cfgPath); err != nil {
		t.Fatalf("db seed failed: %v", err)
	}

	out, err := run(t, "checklist", "list", "--config", cfgPath)
	if err != nil {
		t.Fatalf("checklist list failed: %v", err)
	}
	// One row, not two.
	if got := strings.Count(out, "Customer Data ETL Pipeline QA"); got != 1 {
		t.Errorf("seeded checklist appears %d times, want 1:\n%s", got, out)
	}
}
