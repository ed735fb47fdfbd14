package config

import (
	"os"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

// withTempConfigDir points getConfigDir() at a temp directory for the test.
// Using HOME doesn't work on Windows where os.UserHomeDir() reads USERPROFILE,
// so XDG_CONFIG_HOME is overridden instead.
func withTempConfigDir(t *testing.T) string {
	t.Helper()
	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	return tmpDir
}

func TestInitConfig_Success(t *testing.T) {
	withTempConfigDir(t)

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Fatalf("Config file was not created at %s", configPath)
	}

	content, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	contentStr := string(content)
	expectedSections := []string{
		"# SignCast Configuration File",
		"logging:",
		"database:",
		"media:",
		"device_state:",
		"api:",
		"admin:",
	}

	for _, section := range expectedSections {
		if !strings.Contains(contentStr, section) {
			t.Errorf("Config file missing section: %s", section)
		}
	}

	// Verify the generated file is valid YAML
	var cfg Config
	if err := yaml.Unmarshal(content, &cfg); err != nil {
		t.Fatalf("Generated config is not valid YAML: %v", err)
	}

	// The generated JWT secret must satisfy the API server's minimum length
	if len(cfg.API.JWT.Secret) < 32 {
		t.Errorf("Expected generated JWT secret of at least 32 chars, got %d", len(cfg.API.JWT.Secret))
	}
}

func TestInitConfig_AlreadyExists(t *testing.T) {
	withTempConfigDir(t)

	if _, err := InitConfig(false); err != nil {
		t.Fatalf("First InitConfig failed: %v", err)
	}

	_, err := InitConfig(false)
	if err == nil {
		t.Fatal("Expected error when config file already exists")
	}
	if !strings.Contains(err.Error(), "already exists") {
		t.Errorf("Expected 'already exists' error, got: %v", err)
	}
}

func TestInitConfig_Force(t *testing.T) {
	withTempConfigDir(t)

	first, err := InitConfig(false)
	if err != nil {
		t.Fatalf("First InitConfig failed: %v", err)
	}
	firstContent, err := os.ReadFile(first)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	second, err := InitConfig(true)
	if err != nil {
		t.Fatalf("InitConfig with force failed: %v", err)
	}
	secondContent, err := os.ReadFile(second)
	if err != nil {
		t.Fatalf("Failed to read config file: %v", err)
	}

	// Regeneration produces a fresh JWT secret
	if string(firstContent) == string(secondContent) {
		t.Error("Expected forced regeneration to produce different content")
	}
}

func TestInitConfig_GeneratedConfigLoads(t *testing.T) {
	withTempConfigDir(t)

	configPath, err := InitConfig(false)
	if err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}

	cfg, err := Load(configPath)
	if err != nil {
		t.Fatalf("Failed to load generated config: %v", err)
	}

	if cfg.API.Port != 8080 {
		t.Errorf("Expected API port 8080, got %d", cfg.API.Port)
	}
	if !cfg.API.HasJWTSecret() {
		t.Error("Expected generated config to carry a JWT secret")
	}
}
