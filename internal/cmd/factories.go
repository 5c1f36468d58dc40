package cmd

import (
	"os"

	"github.com/vanshika-srivastava/coretest/internal/adapters/configfile"
	"github.com/vanshika-srivastava/coretest/internal/adapters/diagnostics"
	"github.com/vanshika-srivastava/coretest/internal/adapters/filelock"
	"github.com/vanshika-srivastava/coretest/internal/adapters/process"
	adapterstorage "github.com/vanshika-srivastava/coretest/internal/adapters/storage"
	"github.com/vanshika-srivastava/coretest/internal/config"
	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/ports"
	"github.com/vanshika-srivastava/coretest/internal/services"
)

// Container holds all dependencies for the application
type Container struct {
	// Adapters
	ConfigFile *configfile.Mutator
	Processes  *process.Manager

	// Services
	ResetService *services.ResetService

	Settings *config.Resolved

	// Internal - for cleanup only
	capture  *diagnostics.StderrCapture
	registry ports.Registry
}

// NewContainer creates a new Container with all dependencies wired
func NewContainer(settings *config.Resolved) (*Container, error) {
	registry, err := adapterstorage.NewSQLiteRepository(settings.DBPath)
	if err != nil {
		return nil, err
	}

	configFile := configfile.NewMutator(settings.ConfigPath)
	processes := process.NewManager(registry, process.NewOSProcessInspector(), process.Options{
		ArtifactDirs:      settings.ArtifactDirs,
		DeleteAttempts:    settings.DeleteAttempts,
		KillGrace:         settings.KillGrace,
		PollInterval:      settings.PollInterval,
		QuiescenceTimeout: settings.QuiescenceTimeout,
	})
	capture := diagnostics.NewStderrCapture(os.Stdout)

	resetService := services.NewResetService(configFile, processes, capture, services.ResetOptions{
		ArtifactDirs: settings.ArtifactDirs,
		Flags:        domain.DefaultTestFlags(settings.SilentConsole),
		Lock:         filelock.New(settings.LockPath),
		TelemetryKey: settings.TelemetryKey,
		TemplatePath: settings.TemplatePath,
	})

	return &Container{
		ConfigFile:   configFile,
		Processes:    processes,
		ResetService: resetService,
		Settings:     settings,
		capture:      capture,
		registry:     registry,
	}, nil
}

// Close gives stderr back if a reset captured it and closes the registry
func (c *Container) Close() error {
	c.capture.Restore()
	if c.registry != nil {
		return c.registry.Close()
	}
	return nil
}
