package config

import (
	"testing"
	"time"

	"github.com/signcast/signcast/internal/bytesize"
	"github.com/signcast/signcast/pkg/signage/store"
)

func TestApplyDefaults_EmptyConfig(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "INFO" {
		t.Errorf("Expected level INFO, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "text" {
		t.Errorf("Expected format text, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Output != "stdout" {
		t.Errorf("Expected output stdout, got %q", cfg.Logging.Output)
	}
	if cfg.ShutdownTimeout != 30*time.Second {
		t.Errorf("Expected shutdown timeout 30s, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Database.Type != store.DatabaseTypeSQLite {
		t.Errorf("Expected database type sqlite, got %q", cfg.Database.Type)
	}
	if cfg.Media.Type != "fs" {
		t.Errorf("Expected media type fs, got %q", cfg.Media.Type)
	}
	if cfg.Media.FS.Path == "" {
		t.Error("Expected a default media fs path")
	}
	if cfg.DeviceState.Path == "" {
		t.Error("Expected a default device state path")
	}
	if cfg.DeviceState.TTL != 24*time.Hour {
		t.Errorf("Expected device state TTL 24h, got %v", cfg.DeviceState.TTL)
	}
	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
	if cfg.API.MaxUploadSize != 4*bytesize.GiB {
		t.Errorf("Expected max upload size 4Gi, got %v", cfg.API.MaxUploadSize)
	}
	if cfg.Admin.Username != "admin" {
		t.Errorf("Expected admin username admin, got %q", cfg.Admin.Username)
	}
}

func TestApplyDefaults_PreservesExplicitValues(t *testing.T) {
	cfg := &Config{
		Logging: LoggingConfig{
			Level:  "DEBUG",
			Format: "json",
			Output: "stderr",
		},
		ShutdownTimeout: 5 * time.Second,
		Media: MediaConfig{
			Type: "s3",
			S3:   MediaS3Config{Bucket: "media"},
		},
		DeviceState: DeviceStateConfig{
			Path: "/data/devicestate",
			TTL:  time.Hour,
		},
	}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected level DEBUG to be preserved, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Format != "json" {
		t.Errorf("Expected format json to be preserved, got %q", cfg.Logging.Format)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("Expected shutdown timeout 5s to be preserved, got %v", cfg.ShutdownTimeout)
	}
	if cfg.Media.Type != "s3" {
		t.Errorf("Expected media type s3 to be preserved, got %q", cfg.Media.Type)
	}
	// The fs default path must not be forced onto a non-fs backend
	if cfg.Media.FS.Path != "" {
		t.Errorf("Expected no fs path for s3 backend, got %q", cfg.Media.FS.Path)
	}
	if cfg.DeviceState.TTL != time.Hour {
		t.Errorf("Expected device state TTL 1h to be preserved, got %v", cfg.DeviceState.TTL)
	}
}

func TestApplyDefaults_NormalizesLogLevel(t *testing.T) {
	cfg := &Config{Logging: LoggingConfig{Level: "debug"}}
	ApplyDefaults(cfg)

	if cfg.Logging.Level != "DEBUG" {
		t.Errorf("Expected lowercase level to be normalized to DEBUG, got %q", cfg.Logging.Level)
	}
}

func TestApplyDefaults_MetricsPortOnlyWhenEnabled(t *testing.T) {
	cfg := &Config{}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 0 {
		t.Errorf("Expected no metrics port when disabled, got %d", cfg.Metrics.Port)
	}

	cfg = &Config{Metrics: MetricsConfig{Enabled: true}}
	ApplyDefaults(cfg)
	if cfg.Metrics.Port != 9090 {
		t.Errorf("Expected metrics port 9090 when enabled, got %d", cfg.Metrics.Port)
	}
}

func TestGetDefaultConfig_IsValid(t *testing.T) {
	cfg := GetDefaultConfig()

	if err := Validate(cfg); err != nil {
		t.Errorf("Expected default config to validate, got: %v", err)
	}
}
