package config_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/Julian-Alberts/mc-map-reader/internal/config"
)

func TestDefaults(t *testing.T) {
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != runtime.NumCPU() || cfg.Cache.Regions != 16 || cfg.Log.Level != "info" || cfg.Log.File != "" {
		t.Fatalf("defaults %+v", cfg)
	}
}

func TestFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mcmap.yaml")
	data := "workers: 3\ncache:\n  regions: 4\nlog:\n  level: debug\n  file: /tmp/mcmap.log\n"
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("MCMAP_CACHE_REGIONS", "64")
	t.Setenv("MCMAP_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Workers != 3 {
		t.Errorf("workers = %d", cfg.Workers)
	}
	if cfg.Cache.Regions != 64 {
		t.Errorf("cache.regions = %d", cfg.Cache.Regions)
	}
	if cfg.Log.Level != "warn" || cfg.Log.File != "/tmp/mcmap.log" || cfg.Log.MaxBackups != 3 {
		t.Errorf("log = %+v", cfg.Log)
	}
}

func TestMissingFile(t *testing.T) {
	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected an error")
	}
}
