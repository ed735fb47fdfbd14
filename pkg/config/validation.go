package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

// validate is the shared validator instance. validator.Validate caches
// struct metadata, so a single instance is reused for all validations.
var validate = validator.New()

// Validate checks the configuration for invalid or inconsistent values.
//
// Struct-tag validation covers field-level rules (log level enums, port
// ranges, sample rate bounds). Cross-field rules that tags cannot express
// are checked explicitly afterwards.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("configuration is nil")
	}

	if err := validate.Struct(cfg); err != nil {
		return err
	}

	// Telemetry requires a collector endpoint when enabled.
	if cfg.Telemetry.Enabled && cfg.Telemetry.Endpoint == "" {
		return fmt.Errorf("telemetry is enabled but no endpoint is configured")
	}

	// Media backend requirements depend on the selected type.
	switch cfg.Media.Type {
	case "fs":
		if cfg.Media.FS.Path == "" {
			return fmt.Errorf("media type %q requires media.fs.path to be set", cfg.Media.Type)
		}
	case "s3":
		if cfg.Media.S3.Bucket == "" {
			return fmt.Errorf("media type %q requires media.s3.bucket to be set", cfg.Media.Type)
		}
	}

	return nil
}
