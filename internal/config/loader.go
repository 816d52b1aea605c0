package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config captures process configuration for the working-hours service.
//
// Values are resolved in two layers: an optional YAML file named by
// WORKINGHOURS_CONFIG_FILE, then WORKINGHOURS_* environment variables
// on top. Environment always wins.
type Config struct {
	HTTPPort         int    `yaml:"http_port"`
	SQLiteDSN        string `yaml:"sqlite_dsn"`
	Timezone         string `yaml:"timezone"`
	UTCOffsetMinutes int    `yaml:"utc_offset_minutes"`
	Region           string `yaml:"region"`
	LogLevel         string `yaml:"log_level"`
}

// Load resolves configuration from the optional file layer and the
// current process environment.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:  8080,
		SQLiteDSN: "file:workinghours.db?_foreign_keys=on",
		Timezone:  "UTC",
		LogLevel:  "info",
	}

	if path := strings.TrimSpace(os.Getenv("WORKINGHOURS_CONFIG_FILE")); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}

	invalid := make([]string, 0, 2)

	if portValue := strings.TrimSpace(os.Getenv("WORKINGHOURS_HTTP_PORT")); portValue != "" {
		port, err := strconv.Atoi(portValue)
		if err != nil || port <= 0 {
			invalid = append(invalid, "WORKINGHOURS_HTTP_PORT")
		} else {
			cfg.HTTPPort = port
		}
	}

	if dsn := strings.TrimSpace(os.Getenv("WORKINGHOURS_SQLITE_DSN")); dsn != "" {
		cfg.SQLiteDSN = dsn
	}

	if tz := strings.TrimSpace(os.Getenv("WORKINGHOURS_TIMEZONE")); tz != "" {
		cfg.Timezone = tz
	}

	if offsetValue := strings.TrimSpace(os.Getenv("WORKINGHOURS_UTC_OFFSET_MINUTES")); offsetValue != "" {
		offset, err := strconv.Atoi(offsetValue)
		if err != nil || offset < -18*60 || offset > 18*60 {
			invalid = append(invalid, "WORKINGHOURS_UTC_OFFSET_MINUTES")
		} else {
			cfg.UTCOffsetMinutes = offset
		}
	}

	if region := strings.TrimSpace(os.Getenv("WORKINGHOURS_REGION")); region != "" {
		cfg.Region = strings.ToUpper(region)
	}

	if level := strings.TrimSpace(os.Getenv("WORKINGHOURS_LOG_LEVEL")); level != "" {
		cfg.LogLevel = level
	}

	if len(invalid) > 0 {
		return Config{}, fmt.Errorf("invalid environment values: %s", strings.Join(invalid, ", "))
	}

	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}
