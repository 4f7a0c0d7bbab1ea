package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate(): %v", err)
	}
	if cfg.PollInterval().Milliseconds() != 15000 {
		t.Fatalf("PollInterval = %v, want 15s", cfg.PollInterval())
	}
}

func TestLoadFromFileOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratearb.yaml")
	contents := "fetch:\n  api_base_url: http://rates.internal:9000\n  poll_interval_ms: 5000\nprompt: \"arb> \"\n"
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}

	cfg, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if cfg.Fetch.APIBaseURL != "http://rates.internal:9000" {
		t.Errorf("APIBaseURL = %q, want override", cfg.Fetch.APIBaseURL)
	}
	if cfg.Fetch.PollIntervalMs != 5000 {
		t.Errorf("PollIntervalMs = %d, want 5000", cfg.Fetch.PollIntervalMs)
	}
	if cfg.Prompt != "arb> " {
		t.Errorf("Prompt = %q, want overridden prompt", cfg.Prompt)
	}
	// Pruning wasn't set in the file, so it must keep the default.
	if !cfg.Pruning.Enabled {
		t.Errorf("Pruning.Enabled = false, want default true to survive overlay")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("LoadFromFile(missing): want error, got nil")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("RATEARB_API_BASE_URL", "http://env.example:1111")
	t.Setenv("RATEARB_POLL_INTERVAL_MS", "3000")
	t.Setenv("RATEARB_DEBUG", "graph=i")
	t.Setenv("RATEARB_PRUNING_ENABLED", "false")

	cfg := LoadFromEnv()
	if cfg.Fetch.APIBaseURL != "http://env.example:1111" {
		t.Errorf("APIBaseURL = %q, want env override", cfg.Fetch.APIBaseURL)
	}
	if cfg.Fetch.PollIntervalMs != 3000 {
		t.Errorf("PollIntervalMs = %d, want 3000", cfg.Fetch.PollIntervalMs)
	}
	if cfg.Debug != "graph=i" {
		t.Errorf("Debug = %q, want env override", cfg.Debug)
	}
	if cfg.Pruning.Enabled {
		t.Errorf("Pruning.Enabled = true, want env override to disable it")
	}
}

func TestValidateRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Fetch.APIBaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: want error for empty api_base_url")
	}

	cfg = DefaultConfig()
	cfg.Fetch.PollIntervalMs = 10
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: want error for poll interval below 1000ms")
	}

	cfg = DefaultConfig()
	cfg.Prompt = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("Validate: want error for empty prompt")
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ratearb.yaml")

	cfg := DefaultConfig()
	cfg.Fetch.APIBaseURL = "http://roundtrip.example"
	if err := cfg.SaveToFile(path); err != nil {
		t.Fatalf("SaveToFile: %v", err)
	}

	got, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("LoadFromFile: %v", err)
	}
	if got.Fetch.APIBaseURL != cfg.Fetch.APIBaseURL {
		t.Errorf("APIBaseURL = %q, want %q", got.Fetch.APIBaseURL, cfg.Fetch.APIBaseURL)
	}
}

