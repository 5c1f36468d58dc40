// Package testenv is what test code calls: it owns one harness environment
// and hooks the reset and failure dump into the testing package.
package testenv

import (
	"context"
	"fmt"
	"io"
	"os"
	"testing"

	"github.com/vanshika-srivastava/coretest/internal/adapters/configfile"
	"github.com/vanshika-srivastava/coretest/internal/adapters/diagnostics"
	"github.com/vanshika-srivastava/coretest/internal/adapters/filelock"
	"github.com/vanshika-srivastava/coretest/internal/adapters/process"
	"github.com/vanshika-srivastava/coretest/internal/adapters/storage"
	"github.com/vanshika-srivastava/coretest/internal/config"
	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/httpclient"
	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/services"
)

// Environment is a wired harness for one install dir
type Environment struct {
	Capture   *diagnostics.StderrCapture
	Config    *configfile.Mutator
	HTTP      *httpclient.Client
	Processes *process.Manager
	Reset     *services.ResetService
	Settings  *config.Resolved

	registry *storage.SQLiteRepository
}

// Option customizes Open
type Option func(*options)

type options struct {
	diagnostics io.Writer
}

// WithDiagnosticsOutput sends the failure dump to w instead of stdout
func WithDiagnosticsOutput(w io.Writer) Option {
	return func(o *options) {
		o.diagnostics = w
	}
}

// Open wires every component from resolved settings
func Open(settings *config.Resolved, opts ...Option) (*Environment, error) {
	o := options{diagnostics: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}

	registry, err := storage.NewSQLiteRepository(settings.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open registry: %w", err)
	}

	mutator := configfile.NewMutator(settings.ConfigPath)
	manager := process.NewManager(registry, process.NewOSProcessInspector(), process.Options{
		ArtifactDirs:      settings.ArtifactDirs,
		DeleteAttempts:    settings.DeleteAttempts,
		KillGrace:         settings.KillGrace,
		PollInterval:      settings.PollInterval,
		QuiescenceTimeout: settings.QuiescenceTimeout,
	})
	capture := diagnostics.NewStderrCapture(o.diagnostics)
	reset := services.NewResetService(mutator, manager, capture, services.ResetOptions{
		ArtifactDirs: settings.ArtifactDirs,
		Flags:        domain.DefaultTestFlags(settings.SilentConsole),
		Lock:         filelock.New(settings.LockPath),
		TelemetryKey: settings.TelemetryKey,
		TemplatePath: settings.TemplatePath,
	})

	logging.Logger.Debug("Test environment opened",
		"install_dir", settings.InstallDir,
		"config", settings.ConfigPath,
		"db", settings.DBPath)

	return &Environment{
		Capture:   capture,
		Config:    mutator,
		HTTP:      httpclient.New(settings.ServerURL),
		Processes: manager,
		Reset:     reset,
		Settings:  settings,
		registry:  registry,
	}, nil
}

// OpenDefault loads settings.yaml from CORETEST_HOME and opens an environment
func OpenDefault() (*Environment, error) {
	settings, err := config.LoadSettings()
	if err != nil {
		return nil, err
	}
	resolved, err := settings.Resolve()
	if err != nil {
		return nil, err
	}
	return Open(resolved)
}

// Setup resets the environment before a test and dumps captured stderr to
// stdout if the test fails
func (e *Environment) Setup(tb testing.TB) {
	tb.Helper()

	if err := e.Reset.Reset(context.Background()); err != nil {
		tb.Fatalf("environment reset failed: %v", err)
	}

	tb.Cleanup(func() {
		if tb.Failed() {
			e.Reset.DumpDiagnostics()
		}
	})
}

// SetValue sets a key in the live config
func (e *Environment) SetValue(key, value string) error {
	return e.Config.SetValue(key, value)
}

// CommentOut comments a key out of the live config
func (e *Environment) CommentOut(key string) error {
	return e.Config.CommentOut(key)
}

// Spawn starts command in the install dir
func (e *Environment) Spawn(ctx context.Context, command ...string) (domain.ProcessHandle, error) {
	return e.Processes.Spawn(ctx, command, e.Settings.InstallDir)
}

// Teardown kills what is still running and removes config and artifact dirs
func (e *Environment) Teardown(ctx context.Context) {
	if err := e.Processes.KillAll(ctx); err != nil {
		logging.Logger.Warn("KillAll during teardown failed", "error", err)
	}
	e.Reset.Teardown(ctx)
}

// Close restores stderr and closes the registry
func (e *Environment) Close() error {
	e.Capture.Restore()
	return e.registry.Close()
}

// Main opens an environment, hands it to ready, runs the package's tests and
// tears the environment down afterwards. Use it from TestMain:
//
//	func TestMain(m *testing.M) {
//		os.Exit(testenv.Main(m, settings, func(e *testenv.Environment) { env = e }))
//	}
func Main(m *testing.M, settings *config.Resolved, ready func(*Environment)) int {
	env, err := Open(settings)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open test environment: %v\n", err)
		return 1
	}
	if ready != nil {
		ready(env)
	}

	code := m.Run()

	env.Teardown(context.Background())
	if err := env.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "failed to close test environment: %v\n", err)
	}
	return code
}
