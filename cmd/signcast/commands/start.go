package commands

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"os/signal"
	"syscall"

	"github.com/signcast/signcast/internal/api"
	"github.com/signcast/signcast/internal/logger"
	"github.com/signcast/signcast/internal/telemetry"
	"github.com/signcast/signcast/pkg/config"
	"github.com/signcast/signcast/pkg/metrics"
	"github.com/signcast/signcast/pkg/quota"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

var (
	foreground bool
	pidFile    string
	logFile    string
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the SignCast server",
	Long: `Start the SignCast server with the specified configuration.

By default, the server runs in the background (daemon mode). Use --foreground
to run in the foreground for debugging or when managed by a process supervisor.

Use --config to specify a custom configuration file, or it will use the
default location at $XDG_CONFIG_HOME/signcast/config.yaml.

Examples:
  # Start in background (default)
  signcast start

  # Start in foreground
  signcast start --foreground

  # Start with custom config file
  signcast start --config /etc/signcast/config.yaml

  # Start with environment variable overrides
  SIGNCAST_LOGGING_LEVEL=DEBUG signcast start --foreground`,
	RunE: runStart,
}

func init() {
	startCmd.Flags().BoolVarP(&foreground, "foreground", "f", false, "Run in foreground (default: background/daemon mode)")
	startCmd.Flags().StringVar(&pidFile, "pid-file", "", "Path to PID file (default: $XDG_STATE_HOME/signcast/signcast.pid)")
	startCmd.Flags().StringVar(&logFile, "log-file", "", "Path to log file for daemon mode (default: $XDG_STATE_HOME/signcast/signcast.log)")
}

func runStart(cmd *cobra.Command, args []string) error {
	// Handle daemon mode (background)
	if !foreground {
		return startDaemon()
	}

	cfg, err := config.MustLoad(GetConfigFile())
	if err != nil {
		return err
	}

	// Initialize the structured logger
	if err := InitLogger(cfg); err != nil {
		return err
	}

	// Create cancellable context for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize OpenTelemetry (if enabled)
	telemetryShutdown, err := telemetry.Init(ctx, cfg.TelemetryConfig(Version))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}
	defer func() {
		if err := telemetryShutdown(ctx); err != nil {
			logger.Error("telemetry shutdown error", "error", err)
		}
	}()

	// Initialize Pyroscope profiling (if enabled)
	profilingShutdown, err := telemetry.InitProfiling(cfg.ProfilingConfig(Version))
	if err != nil {
		return fmt.Errorf("failed to initialize profiling: %w", err)
	}
	defer func() {
		if err := profilingShutdown(); err != nil {
			logger.Error("profiling shutdown error", "error", err)
		}
	}()

	fmt.Println("SignCast - Multi-tenant digital signage server")
	logger.Info("Log level", "level", cfg.Logging.Level, "format", cfg.Logging.Format)
	logger.Info("Configuration loaded", "source", getConfigSource(GetConfigFile()))
	if telemetry.IsEnabled() {
		logger.Info("Telemetry enabled", "endpoint", cfg.Telemetry.Endpoint, "sample_rate", cfg.Telemetry.SampleRate)
	} else {
		logger.Info("Telemetry disabled")
	}
	if telemetry.IsProfilingEnabled() {
		logger.Info("Profiling enabled", "endpoint", cfg.Telemetry.Profiling.Endpoint, "profile_types", cfg.Telemetry.Profiling.ProfileTypes)
	} else {
		logger.Info("Profiling disabled")
	}

	// Initialize metrics FIRST (before creating stores and the quota engine)
	// so metrics.IsEnabled() is true when instruments are constructed.
	var metricsServer *metrics.Server
	if cfg.Metrics.Enabled {
		metrics.InitRegistry()
		metricsServer = metrics.NewServer(cfg.Metrics.Port)
	}

	// Initialize the signage database store (runs auto-migration)
	st, err := config.CreateStore(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to initialize database store: %w", err)
	}
	defer func() { _ = st.Close() }()
	logger.Info("Database store initialized", "type", cfg.Database.Type)

	// Initialize the media blob store
	blobs, err := config.CreateMediaStore(ctx, cfg.Media)
	if err != nil {
		return fmt.Errorf("failed to initialize media store: %w", err)
	}
	logger.Info("Media store initialized", "type", cfg.Media.Type)

	// Initialize the device state store
	state, err := config.CreateDeviceState(cfg.DeviceState)
	if err != nil {
		return fmt.Errorf("failed to initialize device state store: %w", err)
	}
	defer func() { _ = state.Close() }()

	// Ensure admin user exists (generates random password on first run)
	adminPassword, err := ensureAdminUser(ctx, st, cfg)
	if err != nil {
		return fmt.Errorf("failed to ensure admin user: %w", err)
	}
	if adminPassword != "" {
		logger.Info("Admin user created", "username", cfg.Admin.Username)
		fmt.Printf("\n*** IMPORTANT: Admin user created with password: %s ***\n", adminPassword)
		fmt.Println("Please save this password. It will not be shown again.")
		fmt.Println()
	}

	// Quota engine shares the store for tenant and content lookups
	signageMetrics := metrics.NewSignageMetrics()
	engine := quota.NewEngine(st, st, blobs, quota.WithRecorder(signageMetrics))

	apiServer, err := api.NewServer(cfg.API, api.Deps{
		Store:   st,
		Blobs:   blobs,
		Engine:  engine,
		State:   state,
		Metrics: signageMetrics,
	})
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}
	logger.Info("API server configured", "port", cfg.API.Port)

	// Write PID file if specified
	if pidFile != "" {
		if err := os.WriteFile(pidFile, []byte(fmt.Sprintf("%d", os.Getpid())), 0644); err != nil {
			return fmt.Errorf("failed to write PID file: %w", err)
		}
		defer func() { _ = os.Remove(pidFile) }()
	}

	// Start metrics server in background (if enabled)
	if metricsServer != nil {
		logger.Info("Metrics enabled", "port", cfg.Metrics.Port)
		go func() {
			if err := metricsServer.Start(); err != nil {
				logger.Error("metrics server error", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
			defer shutdownCancel()
			if err := metricsServer.Shutdown(shutdownCtx); err != nil {
				logger.Error("metrics server shutdown error", "error", err)
			}
		}()
	} else {
		logger.Info("Metrics collection disabled")
	}

	// Start API server in background
	serverDone := make(chan error, 1)
	go func() {
		serverDone <- apiServer.Start(ctx)
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Server is running. Press Ctrl+C to stop.")

	select {
	case <-sigChan:
		signal.Stop(sigChan)
		logger.Info("Shutdown signal received, initiating graceful shutdown")
		cancel()

		// Wait for server to shut down gracefully
		if err := <-serverDone; err != nil {
			logger.Error("Server shutdown error", "error", err)
			return err
		}
		logger.Info("Server stopped gracefully")

	case err := <-serverDone:
		signal.Stop(sigChan)
		if err != nil {
			logger.Error("Server error", "error", err)
			return err
		}
		logger.Info("Server stopped")
	}

	return nil
}

// adminBootstrapper creates the initial admin account when the user table
// is empty. Satisfied by the GORM store.
type adminBootstrapper interface {
	EnsureAdminUser(ctx context.Context, username, passwordHash string) (bool, error)
}

// ensureAdminUser bootstraps the initial admin account. Returns the
// generated plaintext password when one was created without a configured
// hash, so it can be shown exactly once.
func ensureAdminUser(ctx context.Context, st adminBootstrapper, cfg *config.Config) (string, error) {
	passwordHash := cfg.Admin.PasswordHash
	var generated string

	if passwordHash == "" {
		buf := make([]byte, 16)
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("failed to generate admin password: %w", err)
		}
		generated = hex.EncodeToString(buf)

		hash, err := bcrypt.GenerateFromPassword([]byte(generated), bcrypt.DefaultCost)
		if err != nil {
			return "", fmt.Errorf("failed to hash admin password: %w", err)
		}
		passwordHash = string(hash)
	}

	created, err := st.EnsureAdminUser(ctx, cfg.Admin.Username, passwordHash)
	if err != nil {
		return "", err
	}
	if !created || cfg.Admin.PasswordHash != "" {
		return "", nil
	}
	return generated, nil
}

// getConfigSource returns a description of where the config was loaded from.
func getConfigSource(configFile string) string {
	if configFile != "" {
		return configFile
	}
	if config.DefaultConfigExists() {
		return config.GetDefaultConfigPath()
	}
	return "defaults"
}

// startDaemon starts the server as a background daemon process.
func startDaemon() error {
	stateDir := GetDefaultStateDir()

	// Create state directory if it doesn't exist
	if err := os.MkdirAll(stateDir, 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	// Set default PID file if not specified
	pidPath := pidFile
	if pidPath == "" {
		pidPath = GetDefaultPidFile()
	}

	// Check if already running
	if _, err := os.Stat(pidPath); err == nil {
		pidData, err := os.ReadFile(pidPath)
		if err == nil {
			var pid int
			if _, err := fmt.Sscanf(string(pidData), "%d", &pid); err == nil {
				// Check if process is still running
				if process, err := os.FindProcess(pid); err == nil {
					if err := process.Signal(syscall.Signal(0)); err == nil {
						return fmt.Errorf("SignCast is already running (PID %d)\nUse 'signcast stop' to stop the running instance", pid)
					}
				}
			}
		}
		// Stale PID file, remove it
		_ = os.Remove(pidPath)
	}

	// Set default log file if not specified
	logPath := logFile
	if logPath == "" {
		logPath = GetDefaultLogFile()
	}

	// Get the executable path
	executable, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	// Build arguments for the daemon process
	daemonArgs := []string{"start", "--foreground", "--pid-file", pidPath}
	if GetConfigFile() != "" {
		daemonArgs = append(daemonArgs, "--config", GetConfigFile())
	}

	// Create the daemon process
	cmd := exec.Command(executable, daemonArgs...)

	// Open log file for stdout/stderr
	logFileHandle, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}

	cmd.Stdout = logFileHandle
	cmd.Stderr = logFileHandle

	// Detach from parent process
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid: true,
	}

	// Start the daemon
	if err := cmd.Start(); err != nil {
		_ = logFileHandle.Close()
		return fmt.Errorf("failed to start daemon: %w", err)
	}

	_ = logFileHandle.Close()

	fmt.Printf("SignCast started in background (PID %d)\n", cmd.Process.Pid)
	fmt.Printf("  PID file: %s\n", pidPath)
	fmt.Printf("  Log file: %s\n", logPath)
	fmt.Println("\nUse 'signcast stop' to stop the server")
	fmt.Println("Use 'signcast status' to check server status")

	return nil
}
