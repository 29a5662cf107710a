package main

import (
	"strings"
	"testing"
)

// initWorkspace initializes a sqlite database with one published two-item
// checklist and returns the config path.
func initWorkspace(t *testing.T) string {
	t.Helper()
	cfgPath := writeConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if _, err := run(t, "checklist", "create", "--name", "Release QA", "--config", cfgPath); err != nil {
		t.Fatalf("checklist create failed: %v", err)
	}
	for _, desc := range []string{"migrate db", "smoke test"} {
		if _, err := run(t, "checklist", "add-item", "1", "--description", desc, "--config", cfgPath); err != nil {
			t.Fatalf("add-item failed: %v", err)
		}
	}
	if _, err := run(t, "checklist", "publish", "1", "--config", cfgPath); err != nil {
		t.Fatalf("publish failed: %v", err)
	}
	return cfgPath
}

func TestSessionLifecycleCLI(t *testing.T) {
	cfgPath := initWorkspace(t)

	out, err := run(t, "session", "create", "--checklist", "1", "--name", "Run 1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("session create failed: %v", err)
	}
	if !strings.Contains(out, "phase 1") {
		t.Errorf("expected new session in phase 1, got: %s", out)
	}

	// Incomplete coverage blocks phase 1 completion.
	if _, err := run(t, "validate", "record", "--session", "1", "--phase", "1", "--item", "1", "--status", "pass", "--config", cfgPath); err != nil {
		t.Fatalf("validate record failed: %v", err)
	}
	_, err = run(t, "session", "complete-phase1", "1", "--by", "alice", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected completion to fail with partial coverage")
	}
	if !strings.Contains(err.Error(), "1 of 2 items validated") {
		t.Errorf("error = %q, want coverage counts", err.Error())
	}

	// Full coverage allows the transition chain.
	if _, err := run(t, "validate", "record", "--session", "1", "--phase", "1", "--item", "2", "--status", "fail", "--config", cfgPath); err != nil {
		t.Fatalf("validate record failed: %v", err)
	}
	if _, err := run(t, "session", "complete-phase1", "1", "--by", "alice", "--config", cfgPath); err != nil {
		t.Fatalf("complete-phase1 failed: %v", err)
	}
	if _, err := run(t, "session", "start-phase2", "1", "--config", cfgPath); err != nil {
		t.Fatalf("start-phase2 failed: %v", err)
	}

	// Phase 2 items via both paths.
	if _, err := run(t, "phase2", "add", "--session", "1", "--description", "spot check exports", "--config", cfgPath); err != nil {
		t.Fatalf("phase2 add failed: %v", err)
	}
	out, err = run(t, "phase2", "list", "--session", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("phase2 list failed: %v", err)
	}
	if !strings.Contains(out, "spot check exports") {
		t.Errorf("expected phase 2 item in listing, got: %s", out)
	}

	if _, err := run(t, "validate", "record", "--session", "1", "--phase", "2", "--phase2-item", "1", "--status", "pass", "--config", cfgPath); err != nil {
		t.Fatalf("phase 2 validate failed: %v", err)
	}
	if _, err := run(t, "session", "complete-phase2", "1", "--by", "bob", "--config", cfgPath); err != nil {
		t.Fatalf("complete-phase2 failed: %v", err)
	}

	out, err = run(t, "session", "show", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("session show failed: %v", err)
	}
	if !strings.Contains(out, "by alice") || !strings.Contains(out, "by bob") {
		t.Errorf("expected completion attribution, got: %s", out)
	}

	out, err = run(t, "validate", "summary", "--session", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("validate summary failed: %v", err)
	}
	if !strings.Contains(out, "Total:   3") || !strings.Contains(out, "Failed:  1") {
		t.Errorf("unexpected summary: %s", out)
	}
}

func TestSessionCreateCLI_UnpublishedChecklist(t *testing.T) {
	cfgPath := writeConfig(t)
	if _, err := run(t, "db", "init", "--config", cfgPath); err != nil {
		t.Fatalf("db init failed: %v", err)
	}
	if _, err := run(t, "checklist", "create", "--name", "Draft", "--config", cfgPath); err != nil {
		t.Fatalf("checklist create failed: %v", err)
	}

	_, err := run(t, "session", "create", "--checklist", "1", "--name", "Run", "--config", cfgPath)
	if err == nil {
		t.Fatal("expected error for unpublished checklist")
	}
	if !strings.Contains(err.Error(), "not published") {
		t.Errorf("error = %q, want to mention unpublished", err.Error())
	}
}

func TestTemplateImportCLI(t *testing.T) {
	cfgPath := initWorkspace(t)

	if _, err := run(t, "template", "create", "--name", "Smoke", "--category", "regression", "--config", cfgPath); err != nil {
		t.Fatalf("template create failed: %v", err)
	}
	for _, desc := range []string{"ping health endpoint", "check login"} {
		if _, err := run(t, "template", "add-item", "1", "--description", desc, "--config", cfgPath); err != nil {
			t.Fatalf("template add-item failed: %v", err)
		}
	}

	if _, err := run(t, "session", "create", "--checklist", "1", "--name", "Run", "--config", cfgPath); err != nil {
		t.Fatalf("session create failed: %v", err)
	}
	for _, item := range []string{"1", "2"} {
		if _, err := run(t, "validate", "record", "--session", "1", "--item", item, "--status", "pass", "--config", cfgPath); err != nil {
			t.Fatalf("validate record failed: %v", err)
		}
	}
	if _, err := run(t, "session", "complete-phase1", "1", "--config", cfgPath); err != nil {
		t.Fatalf("complete-phase1 failed: %v", err)
	}
	if _, err := run(t, "session", "start-phase2", "1", "--config", cfgPath); err != nil {
		t.Fatalf("start-phase2 failed: %v", err)
	}

	out, err := run(t, "phase2", "import", "--session", "1", "--template", "1", "--config", cfgPath)
	if err != nil {
		t.Fatalf("phase2 import failed: %v", err)
	}
	if !strings.Contains(out, "Imported 2 items") {
		t.Errorf("unexpected import output: %s", out)
	}

	out, err = run(t, "session", "items", "1", "--phase", "2", "--config", cfgPath)
	if err != nil {
		t.Fatalf("session items failed: %v", err)
	}
	if !strings.Contains(out, "ping health endpoint") || !strings.Contains(out, "template") {
		t.Errorf("expected imported items with template source, got: %s", out)
	}
}
