package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DB_DRIVER", "JWT_TTL_MINUTES", "CHAT_RATE_LIMIT", "EXPIRY_INTERVAL_HOURS", "ADMIN_PASSWORD"} {
		t.Setenv(k, "")
	}
	cfg := Load()
	if cfg.Port != "8083" || cfg.DBDriver != "sqlite" || cfg.AdminPassword != "admin123" {
		t.Fatalf("defaults = %+v", cfg)
	}
	if cfg.JWTTTL != 24*time.Hour || cfg.ExpiryInterval != 24*time.Hour || cfg.ChatRateLimit != 30 {
		t.Fatalf("durations = %+v", cfg)
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("CORALBAY_TEST_PORT=9090\n"), 0o600); err != nil {
		t.Fatalf("write env: %v", err)
	}
	t.Cleanup(func() { os.Unsetenv("CORALBAY_TEST_PORT") })
	if err := LoadEnv(path); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if os.Getenv("CORALBAY_TEST_PORT") != "9090" {
		t.Fatalf("env file not loaded")
	}
	if err := LoadEnv(filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("missing file should be ignored: %v", err)
	}
}

func TestLoadOverridesAndBadNumbers(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CHAT_RATE_LIMIT", "abc")
	t.Setenv("EXPIRY_INTERVAL_HOURS", "6")
	cfg := Load()
	if cfg.Port != "9000" || cfg.ChatRateLimit != 30 || cfg.ExpiryInterval != 6*time.Hour {
		t.Fatalf("cfg = %+v", cfg)
	}
}

func TestNewLoggerLevel(t *testing.T) {
	if NewLogger("debug").GetLevel() != logrus.DebugLevel {
		t.Fatalf("debug level not applied")
	}
	if NewLogger("nonsense").GetLevel() != logrus.InfoLevel {
		t.Fatalf("bad level should fall back to info")
	}
}
