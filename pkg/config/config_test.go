package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsInvalidWithoutCfgPath(t *testing.T) {
	cfg := Default()

	if err := cfg.Validate(); err == nil {
		t.Fatalf("Default() should require --cfg-path")
	}
}

func TestValidateRejectsBadLogFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.txt")
	if err := os.WriteFile(path, []byte("layout\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg := Default()
	cfg.CfgPath = path
	cfg.CorpusPath = path
	cfg.LogFormat = "xml"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("Validate should reject an unknown --log-format")
	}
}

func TestLoadFromFileOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.json")
	if err := os.WriteFile(path, []byte(`{"workers": 4}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if cfg.Workers != 4 {
		t.Fatalf("Workers = %d, want 4", cfg.Workers)
	}

	if cfg.Constants.PopSize != Default().Constants.PopSize {
		t.Fatalf("PopSize = %d, want the default to survive an unrelated override", cfg.Constants.PopSize)
	}
}

func TestLoadFromYAMLFileOverridesOnlyGivenFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "override.yaml")
	content := "workers: 8\nlog_format: json\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	cfg, err := LoadFromYAMLFile(path)
	if err != nil {
		t.Fatalf("LoadFromYAMLFile: %v", err)
	}

	if cfg.Workers != 8 || cfg.LogFormat != "json" {
		t.Fatalf("got Workers=%d LogFormat=%s, want 8/json", cfg.Workers, cfg.LogFormat)
	}
}

func TestSaveToFileRoundTrips(t *testing.T) {
	cfg := Default()
	cfg.CfgPath = "board.txt"
	cfg.Workers = 3

	path := filepath.Join(t.TempDir(), "saved.json")
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	loaded, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}

	if loaded.CfgPath != cfg.CfgPath || loaded.Workers != cfg.Workers {
		t.Fatalf("round trip mismatch: got %+v, want CfgPath=%s Workers=%d", loaded, cfg.CfgPath, cfg.Workers)
	}
}

func TestGetParameterInfoCoversCoreFlags(t *testing.T) {
	params := GetParameterInfo()
	if len(params) == 0 {
		t.Fatalf("GetParameterInfo returned no entries")
	}

	seen := map[string]bool{}
	for _, p := range params {
		seen[p.Name] = true
	}

	for _, name := range []string{"cfg-path", "corpus-path", "pop-size", "runs", "convergence-tolerance"} {
		if !seen[name] {
			t.Fatalf("GetParameterInfo missing %q", name)
		}
	}
}
