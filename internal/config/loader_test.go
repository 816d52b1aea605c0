package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoader_ParseEnvironment(t *testing.T) {

	clearEnv := func(t *testing.T) {
		t.Helper()
		for _, key := range []string{
			"WORKINGHOURS_CONFIG_FILE",
			"WORKINGHOURS_HTTP_PORT",
			"WORKINGHOURS_SQLITE_DSN",
			"WORKINGHOURS_TIMEZONE",
			"WORKINGHOURS_UTC_OFFSET_MINUTES",
			"WORKINGHOURS_REGION",
			"WORKINGHOURS_LOG_LEVEL",
		} {
			if err := os.Unsetenv(key); err != nil {
				t.Fatalf("failed to unset %s: %v", key, err)
			}
		}
	}

	t.Run("applies defaults when variables are missing", func(t *testing.T) {
		clearEnv(t)

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 8080 {
			t.Fatalf("expected default HTTP port 8080, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:workinghours.db?_foreign_keys=on" {
			t.Fatalf("unexpected default DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.Timezone != "UTC" || cfg.UTCOffsetMinutes != 0 {
			t.Fatalf("unexpected default timezone: %q %d", cfg.Timezone, cfg.UTCOffsetMinutes)
		}
		if cfg.LogLevel != "info" {
			t.Fatalf("unexpected default log level: %q", cfg.LogLevel)
		}
	})

	t.Run("parses numeric and string fields", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WORKINGHOURS_HTTP_PORT", "9090")
		t.Setenv("WORKINGHOURS_SQLITE_DSN", "file:/tmp/workinghours.db")
		t.Setenv("WORKINGHOURS_TIMEZONE", "Asia/Shanghai")
		t.Setenv("WORKINGHOURS_UTC_OFFSET_MINUTES", "480")
		t.Setenv("WORKINGHOURS_REGION", "cn")
		t.Setenv("WORKINGHOURS_LOG_LEVEL", "debug")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9090 {
			t.Fatalf("expected HTTP port 9090, got %d", cfg.HTTPPort)
		}
		if cfg.SQLiteDSN != "file:/tmp/workinghours.db" {
			t.Fatalf("unexpected DSN: %q", cfg.SQLiteDSN)
		}
		if cfg.Timezone != "Asia/Shanghai" || cfg.UTCOffsetMinutes != 480 {
			t.Fatalf("unexpected timezone values: %q %d", cfg.Timezone, cfg.UTCOffsetMinutes)
		}
		if cfg.Region != "CN" {
			t.Fatalf("expected region upper-cased, got %q", cfg.Region)
		}
		if cfg.LogLevel != "debug" {
			t.Fatalf("unexpected log level: %q", cfg.LogLevel)
		}
	})

	t.Run("errors on out-of-range values", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WORKINGHOURS_HTTP_PORT", "not-a-port")
		t.Setenv("WORKINGHOURS_UTC_OFFSET_MINUTES", "1200")

		_, err := Load()
		if err == nil {
			t.Fatal("expected error for invalid values")
		}
		expected := "invalid environment values: WORKINGHOURS_HTTP_PORT, WORKINGHOURS_UTC_OFFSET_MINUTES"
		if err.Error() != expected {
			t.Fatalf("unexpected error message: %q", err.Error())
		}
	})

	t.Run("reads the file layer and lets environment win", func(t *testing.T) {
		clearEnv(t)

		path := filepath.Join(t.TempDir(), "config.yaml")
		content := "http_port: 7070\ntimezone: America/New_York\nutc_offset_minutes: -300\nlog_level: warn\n"
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("failed to write config file: %v", err)
		}
		t.Setenv("WORKINGHOURS_CONFIG_FILE", path)
		t.Setenv("WORKINGHOURS_HTTP_PORT", "9999")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("Load returned error: %v", err)
		}

		if cfg.HTTPPort != 9999 {
			t.Fatalf("environment should override the file, got %d", cfg.HTTPPort)
		}
		if cfg.Timezone != "America/New_York" || cfg.UTCOffsetMinutes != -300 {
			t.Fatalf("file values not applied: %q %d", cfg.Timezone, cfg.UTCOffsetMinutes)
		}
		if cfg.LogLevel != "warn" {
			t.Fatalf("file log level not applied: %q", cfg.LogLevel)
		}
	})

	t.Run("errors when the named file is unreadable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("WORKINGHOURS_CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

		if _, err := Load(); err == nil {
			t.Fatal("expected error for missing config file")
		}
	})
}
