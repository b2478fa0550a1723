package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		_ = os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "PORT", "DUEL_DB_PATH", "DUEL_READ_HEADER_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("port = %d, want 8080", cfg.Port)
	}
	if cfg.DBPath != "data/duel.db" {
		t.Fatalf("db path = %q", cfg.DBPath)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second {
		t.Fatalf("read header timeout = %s", cfg.ReadHeaderTimeout)
	}
	if cfg.Addr() != ":8080" {
		t.Fatalf("addr = %q", cfg.Addr())
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DUEL_DB_PATH", "/tmp/x.db")
	t.Setenv("DUEL_CATALOG_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != 9090 || cfg.DBPath != "/tmp/x.db" || cfg.CatalogTimeout != 2*time.Second {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	t.Setenv("PORT", "not-an-int")
	_, err := Load()
	if err == nil || !strings.Contains(err.Error(), "parse env:") {
		t.Fatalf("err = %v, want parse env prefix", err)
	}

	t.Setenv("PORT", "70000")
	if _, err := Load(); err == nil {
		t.Fatal("expected out-of-range port error")
	}
}
