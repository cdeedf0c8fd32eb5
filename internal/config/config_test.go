package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := Load(missing)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("missing file reported as existing")
	}
	if resolved != missing {
		t.Fatalf("resolved path = %q, want %q", resolved, missing)
	}
	if cfg.SliceBudget() != 16*time.Millisecond {
		t.Fatalf("SliceBudget = %v", cfg.SliceBudget())
	}
	if cfg.StorageTimeout() != 5*time.Second {
		t.Fatalf("StorageTimeout = %v", cfg.StorageTimeout())
	}
	if !cfg.History.Enabled || cfg.History.Keep != 200 {
		t.Fatalf("history defaults wrong: %+v", cfg.History)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults wrong: %+v", cfg.Logging)
	}
}

func TestLoadParsesAndNormalizes(t *testing.T) {
	path := writeConfig(t, `
[pipeline]
slice_budget_ms = 32

[probes]
exclude = [" storage ", "", "locale"]
storage_timeout_seconds = 2

[history]
enabled = false
keep = 10

[logging]
format = "JSON"
level = " Debug "
`)
	cfg, _, exists, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("file not reported as existing")
	}
	if cfg.SliceBudget() != 32*time.Millisecond {
		t.Fatalf("SliceBudget = %v", cfg.SliceBudget())
	}
	if got := cfg.Probes.Exclude; len(got) != 2 || got[0] != "storage" || got[1] != "locale" {
		t.Fatalf("exclude not normalized: %v", got)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging not lowercased: %+v", cfg.Logging)
	}
	if cfg.History.Enabled {
		t.Fatal("history.enabled should be false")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"bad format": "[logging]\nformat = \"xml\"\n",
		"bad level":  "[logging]\nlevel = \"loud\"\n",
		"big budget": "[pipeline]\nslice_budget_ms = 5000\n",
		"bad toml":   "pipeline = \"not a table",
	}
	for name, contents := range cases {
		path := writeConfig(t, contents)
		if _, _, _, err := Load(path); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestNormalizeRestoresZeroedNumbers(t *testing.T) {
	path := writeConfig(t, "[pipeline]\nslice_budget_ms = -4\n[history]\nkeep = 0\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Pipeline.SliceBudgetMillis != defaultSliceBudgetMillis {
		t.Fatalf("slice budget = %d", cfg.Pipeline.SliceBudgetMillis)
	}
	if cfg.History.Keep != defaultHistoryKeep {
		t.Fatalf("keep = %d", cfg.History.Keep)
	}
}

func TestLoadExpandsHistoryPath(t *testing.T) {
	path := writeConfig(t, "[history]\npath = \"~/fp/history.db\"\n")
	cfg, _, _, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home directory: %v", err)
	}
	want := filepath.Join(home, "fp", "history.db")
	if cfg.History.Path != want {
		t.Fatalf("history path = %q, want %q", cfg.History.Path, want)
	}
}

func TestEnsureDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg := Default()
	cfg.History.Path = filepath.Join(dir, "nested", "deep", "history.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "nested", "deep")); err != nil {
		t.Fatalf("directory not created: %v", err)
	}

	cfg.History.Enabled = false
	cfg.History.Path = filepath.Join("/proc/definitely/not/writable", "h.db")
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("disabled history should skip directory creation: %v", err)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "etc", "config.toml")
	if err := CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[pipeline]") {
		t.Fatalf("sample missing pipeline section:\n%s", data)
	}
	if _, _, _, err := Load(path); err != nil {
		t.Fatalf("sample config does not load: %v", err)
	}
}
