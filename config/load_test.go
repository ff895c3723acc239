package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaultsFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORTAL_DB_PATH", "custom.db")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.DBDriver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %q", cfg.DBDriver)
	}
	if cfg.DBPath != "custom.db" {
		t.Fatalf("expected env override, got %q", cfg.DBPath)
	}
	if cfg.ListenAddr != "0.0.0.0:3001" {
		t.Fatalf("unexpected listen addr %q", cfg.ListenAddr)
	}
	if cfg.Maintenance.Schedule != "30 3 * * *" {
		t.Fatalf("unexpected schedule %q", cfg.Maintenance.Schedule)
	}
	if cfg.Client.Timeout != 10*time.Second {
		t.Fatalf("unexpected client timeout %v", cfg.Client.Timeout)
	}
}

func TestLoadPortEnvOverridesListenAddr(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "8088")
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.ListenAddr != ":8088" {
		t.Fatalf("expected :8088, got %q", cfg.ListenAddr)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "portal.yaml")
	body := "db_path: " + filepath.Join(dir, "x.db") + "\ntimezone: Asia/Tokyo\nmaintenance:\n  keep: 3\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Maintenance.Keep != 3 {
		t.Fatalf("expected keep 3, got %d", cfg.Maintenance.Keep)
	}
	if cfg.Location().String() != "Asia/Tokyo" {
		t.Fatalf("expected Asia/Tokyo, got %s", cfg.Location())
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing explicit config")
	}
}

func TestValidateRejectsUnknownDriver(t *testing.T) {
	cfg := &AppConfig{DBDriver: "oracle", DBPath: "x.db"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected unsupported driver error")
	}
	cfg = &AppConfig{DBDriver: "postgres"}
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected db_url error")
	}
}

func TestLocationFallsBackToLocal(t *testing.T) {
	cfg := &AppConfig{Timezone: "Nowhere/Invalid"}
	if cfg.Location() != time.Local {
		t.Fatalf("expected local fallback")
	}
}
