package config

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileHeader is prepended to generated configuration files.
const configFileHeader = `# SignCast Configuration File
#
# This file was generated by 'signcast init'.
# Values can be overridden with SIGNCAST_* environment variables,
# e.g. SIGNCAST_LOGGING_LEVEL=DEBUG or SIGNCAST_API_SECRET=<secret>.

`

// InitConfig creates a configuration file at the default location with
// sensible defaults and a freshly generated JWT signing secret.
//
// Returns the path of the created file. If a config file already exists,
// InitConfig refuses to overwrite it unless force is true.
func InitConfig(force bool) (string, error) {
	configPath := GetDefaultConfigPath()
	if err := InitConfigToPath(configPath, force); err != nil {
		return "", err
	}
	return configPath, nil
}

// InitConfigToPath creates a configuration file at the given path. See
// InitConfig for the generated contents.
func InitConfigToPath(configPath string, force bool) error {
	if !force {
		if _, err := os.Stat(configPath); err == nil {
			return fmt.Errorf("configuration file already exists: %s\n\n"+
				"Use --force to overwrite it", configPath)
		}
	}

	cfg := GetDefaultConfig()

	secret, err := generateSecret()
	if err != nil {
		return fmt.Errorf("failed to generate JWT secret: %w", err)
	}
	cfg.API.JWT.Secret = secret

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// 0600: the file carries the JWT signing secret.
	content := append([]byte(configFileHeader), data...)
	if err := os.WriteFile(configPath, content, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// generateSecret returns a 64-character hex string from a CSPRNG,
// comfortably above the 32-character minimum the API server enforces.
func generateSecret() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
