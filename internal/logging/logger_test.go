package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGet_NoopWhenDisabled(t *testing.T) {
	if err := Initialize(t.TempDir(), Settings{DebugMode: false}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Close()

	l := Get(CategoryRetrieval)
	if l.logger != nil {
		t.Error("expected no-op logger when debug mode is off")
	}
	// Must not panic
	l.Info("ignored %d", 1)
	l.Error("ignored")
}

func TestGet_WritesToCategoryFile(t *testing.T) {
	dir := t.TempDir()
	if err := Initialize(dir, Settings{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Close()

	Retrieval("strategy=%s k=%d", "quickWins", 5)
	Close()

	entries, err := os.ReadDir(filepath.Join(dir, "logs"))
	if err != nil {
		t.Fatalf("logs dir not created: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), "_retrieval.log") {
			found = true
			data, _ := os.ReadFile(filepath.Join(dir, "logs", e.Name()))
			if !strings.Contains(string(data), "strategy=quickWins k=5") {
				t.Errorf("log content missing expected message: %q", string(data))
			}
		}
	}
	if !found {
		t.Error("expected a retrieval category log file")
	}
}

func TestIsCategoryEnabled_Selective(t *testing.T) {
	err := Initialize(t.TempDir(), Settings{
		DebugMode:  true,
		Categories: map[string]bool{"retrieval": false},
	})
	if err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer Close()

	if IsCategoryEnabled(CategoryRetrieval) {
		t.Error("retrieval should be disabled")
	}
	if !IsCategoryEnabled(CategoryChat) {
		t.Error("unspecified categories default to enabled")
	}
}
