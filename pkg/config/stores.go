package config

import (
	"context"
	"fmt"

	"github.com/signcast/signcast/internal/telemetry"
	"github.com/signcast/signcast/pkg/devicestate"
	"github.com/signcast/signcast/pkg/media"
	mediafs "github.com/signcast/signcast/pkg/media/fs"
	mediamemory "github.com/signcast/signcast/pkg/media/memory"
	medias3 "github.com/signcast/signcast/pkg/media/s3"
	"github.com/signcast/signcast/pkg/signage/store"
)

// CreateStore creates the platform database store from configuration.
func CreateStore(cfg store.Config) (*store.GORMStore, error) {
	return store.New(&cfg)
}

// CreateMediaStore creates a media blob store instance from configuration.
func CreateMediaStore(ctx context.Context, cfg MediaConfig) (media.Store, error) {
	switch cfg.Type {
	case "fs", "":
		return createFSMediaStore(cfg.FS)
	case "s3":
		return createS3MediaStore(ctx, cfg.S3)
	case "memory":
		return mediamemory.New(), nil
	default:
		return nil, fmt.Errorf("unknown media store type: %q", cfg.Type)
	}
}

// createFSMediaStore creates a filesystem-backed media store.
func createFSMediaStore(cfg MediaFSConfig) (media.Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("filesystem media store requires path to be set")
	}

	return mediafs.New(mediafs.DefaultConfig(cfg.Path))
}

// createS3MediaStore creates an S3-backed media store.
func createS3MediaStore(ctx context.Context, cfg MediaS3Config) (media.Store, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("S3 media store requires bucket to be set")
	}

	s3Cfg := medias3.Config{
		Bucket:          cfg.Bucket,
		Region:          cfg.Region,
		Endpoint:        cfg.Endpoint,
		KeyPrefix:       cfg.KeyPrefix,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		ForcePathStyle:  cfg.ForcePathStyle,
	}

	return medias3.NewFromConfig(ctx, s3Cfg)
}

// CreateDeviceState creates the device heartbeat state store from configuration.
func CreateDeviceState(cfg DeviceStateConfig) (*devicestate.Store, error) {
	return devicestate.New(devicestate.Config{
		Path: cfg.Path,
		TTL:  cfg.TTL,
	})
}

// TelemetryConfig builds the telemetry package configuration from the
// loaded server configuration.
func (c *Config) TelemetryConfig(serviceVersion string) telemetry.Config {
	return telemetry.Config{
		Enabled:        c.Telemetry.Enabled,
		ServiceName:    "signcast",
		ServiceVersion: serviceVersion,
		Endpoint:       c.Telemetry.Endpoint,
		Insecure:       c.Telemetry.Insecure,
		SampleRate:     c.Telemetry.SampleRate,
	}
}

// ProfilingConfig builds the profiling package configuration from the
// loaded server configuration.
func (c *Config) ProfilingConfig(serviceVersion string) telemetry.ProfilingConfig {
	return telemetry.ProfilingConfig{
		Enabled:        c.Telemetry.Profiling.Enabled,
		ServiceName:    "signcast",
		ServiceVersion: serviceVersion,
		Endpoint:       c.Telemetry.Profiling.Endpoint,
		ProfileTypes:   c.Telemetry.Profiling.ProfileTypes,
	}
}
