package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeConfigDir(t *testing.T, settings, topics, keywords string) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"settings.json": settings,
		"topics.json":   topics,
		"keywords.json": keywords,
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", name, err)
		}
	}
	return dir
}

func TestLoadEditorialFilesAppliesDefaults(t *testing.T) {
	dir := writeConfigDir(t,
		`{"autoApproveThreshold": 80}`,
		`[{"id": "t1", "title": "Index Funds", "category": "investing", "priority": "high", "keywords": ["index funds"]}]`,
		`{"investing": ["best index funds"]}`,
	)

	cfg := &Config{}
	if err := cfg.loadEditorialFiles(dir); err != nil {
		t.Fatalf("loadEditorialFiles failed: %v", err)
	}

	if cfg.Settings.AutoApproveThreshold != 80 {
		t.Errorf("Explicit threshold must survive, got %d", cfg.Settings.AutoApproveThreshold)
	}
	if cfg.Settings.TargetWordCount != 2000 {
		t.Errorf("Expected default target word count 2000, got %d", cfg.Settings.TargetWordCount)
	}
	if cfg.Settings.ArchiveAfterDays != 365 {
		t.Errorf("Expected default archive threshold 365, got %d", cfg.Settings.ArchiveAfterDays)
	}
	if len(cfg.Topics) != 1 || cfg.Topics[0].ID != "t1" {
		t.Errorf("Topics not loaded: %+v", cfg.Topics)
	}
	if len(cfg.Keywords["investing"]) != 1 {
		t.Errorf("Keywords not loaded: %+v", cfg.Keywords)
	}
}

func TestLoadEditorialFilesMissingFileIsFatal(t *testing.T) {
	cfg := &Config{}
	err := cfg.loadEditorialFiles(t.TempDir())

	var ce *ConfigError
	if !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigError for missing files, got %v", err)
	}
}

func TestLoadEditorialFilesMalformedJSONIsFatal(t *testing.T) {
	dir := writeConfigDir(t, `{not json`, `[]`, `{}`)

	cfg := &Config{}
	var ce *ConfigError
	if err := cfg.loadEditorialFiles(dir); !errors.As(err, &ce) {
		t.Fatalf("Expected ConfigError for malformed settings, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	base := func() *Config {
		return &Config{
			GenAPIKey:    "key",
			StoreBackend: "file",
			Topics:       []Topic{{ID: "t1", Title: "T"}},
		}
	}

	if err := base().validate(); err != nil {
		t.Errorf("Valid config must pass, got %v", err)
	}

	missingKey := base()
	missingKey.GenAPIKey = ""
	if err := missingKey.validate(); err == nil {
		t.Error("Missing API key must fail validation")
	}

	noTopics := base()
	noTopics.Topics = nil
	if err := noTopics.validate(); err == nil {
		t.Error("Empty topic list must fail validation")
	}

	badBackend := base()
	badBackend.StoreBackend = "redis"
	if err := badBackend.validate(); err == nil {
		t.Error("Unknown store backend must fail validation")
	}

	pgNoDSN := base()
	pgNoDSN.StoreBackend = "postgres"
	if err := pgNoDSN.validate(); err == nil {
		t.Error("Postgres backend without DSN must fail validation")
	}
}
