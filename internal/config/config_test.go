package config_test

import (
	"testing"

	"github.com/agentbazaar/agentbazaar/loader/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"LOADER_VERSION", "DATABASE_URL", "DATABASE_MAX_CONNECTIONS", "OTEL_ENABLED"} {
		t.Setenv(key, "")
	}
	cfg := config.Load()

	if cfg.Version == "" {
		t.Error("Version is empty")
	}
	if cfg.Database.URL != "" {
		t.Errorf("Database.URL = %q, want empty (memory store)", cfg.Database.URL)
	}
	if cfg.Database.MaxConnections != 5 {
		t.Errorf("Database.MaxConnections = %d, want 5", cfg.Database.MaxConnections)
	}
	if cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = true, want false by default")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("LOADER_VERSION", "9.9.9")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/catalog.db")
	t.Setenv("DATABASE_MAX_CONNECTIONS", "12")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := config.Load()

	if cfg.Version != "9.9.9" {
		t.Errorf("Version = %q, want 9.9.9", cfg.Version)
	}
	if cfg.Database.URL != "sqlite:/tmp/catalog.db" {
		t.Errorf("Database.URL = %q", cfg.Database.URL)
	}
	if cfg.Database.MaxConnections != 12 {
		t.Errorf("Database.MaxConnections = %d, want 12", cfg.Database.MaxConnections)
	}
	if !cfg.Telemetry.Enabled {
		t.Error("Telemetry.Enabled = false, want true")
	}
}
