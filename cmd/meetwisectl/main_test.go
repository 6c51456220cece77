package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestAnalyzeCommandPrintsActionItems(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeFile(t, dir, "transcript.txt",
		"Hello, so we will be starting with our meet now. "+
			"Sneha, you will be doing the documentation and Ria, you will be doing the power point presentation. "+
			"So yeah, that is the end of our meet. Thank you.")
	rosterPath := writeFile(t, dir, "roster.yaml",
		"participants:\n  - name: Sneha\n    email: sneha@example.com\n  - name: Ria\n    email: ria@example.com\n")

	cmd := newAnalyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--transcript", transcriptPath, "--roster", rosterPath})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze failed: %v\n%s", err, out.String())
	}

	got := out.String()
	for _, want := range []string{
		"[Sneha] documentation",
		"[Ria] power point presentation",
		"Action items (2):",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("analyze output missing %q:\n%s", want, got)
		}
	}
}

func TestAnalyzeCommandJSONOutput(t *testing.T) {
	dir := t.TempDir()
	transcriptPath := writeFile(t, dir, "transcript.txt", "Mike will handle the code review.")
	rosterPath := writeFile(t, dir, "roster.yaml", "participants:\n  - name: Mike\n")

	cmd := newAnalyzeCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--transcript", transcriptPath, "--roster", rosterPath, "--json"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("analyze --json failed: %v", err)
	}
	if !strings.Contains(out.String(), `"action_items"`) {
		t.Errorf("JSON output missing action_items:\n%s", out.String())
	}
}

func TestLoadRoster(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid", func(t *testing.T) {
		path := writeFile(t, dir, "ok.yaml", "participants:\n  - name: Sneha\n    email: sneha@example.com\n")
		roster, err := loadRoster(path)
		if err != nil {
			t.Fatal(err)
		}
		if len(roster) != 1 || roster[0].Name != "Sneha" || roster[0].Email != "sneha@example.com" {
			t.Errorf("unexpected roster %+v", roster)
		}
	})

	t.Run("empty", func(t *testing.T) {
		path := writeFile(t, dir, "empty.yaml", "participants: []\n")
		if _, err := loadRoster(path); err == nil {
			t.Error("expected error for empty roster")
		}
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, dir, "bad.yaml", "participants: {broken\n")
		if _, err := loadRoster(path); err == nil {
			t.Error("expected error for malformed yaml")
		}
	})
}
