package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// ResetOptions are the fixed inputs of every reset cycle
type ResetOptions struct {
	ArtifactDirs []string
	Flags        domain.TestFlags
	// Lock is held for the whole reset when set
	Lock         ports.ResetLock
	TelemetryKey string
	TemplatePath string
}

// ResetService puts the server's install dir back into a known state
// before each test and cleans it up after the run.
type ResetService struct {
	capture   ports.DiagnosticCapture
	config    ports.ConfigEditor
	opts      ResetOptions
	processes ports.ProcessLifecycle
}

// NewResetService creates a new ResetService
func NewResetService(
	config ports.ConfigEditor,
	processes ports.ProcessLifecycle,
	capture ports.DiagnosticCapture,
	opts ResetOptions,
) *ResetService {
	return &ResetService{
		capture:   capture,
		config:    config,
		opts:      opts,
		processes: processes,
	}
}

// Reset runs the reset sequence. Config errors abort and are returned;
// process and artifact cleanup is best effort.
func (s *ResetService) Reset(ctx context.Context) error {
	logging.Logger.Info("Resetting environment", "config", s.config.Path())

	if s.opts.Lock != nil {
		unlock, err := s.opts.Lock.Lock()
		if err != nil {
			return fmt.Errorf("failed to lock install dir: %w", err)
		}
		defer func() {
			if err := unlock(); err != nil {
				logging.Logger.Warn("Failed to release reset lock", "error", err)
			}
		}()
	}

	s.processes.SetTestFlags(s.opts.Flags)

	if err := s.config.CopyFrom(s.opts.TemplatePath); err != nil {
		logging.Logger.Error("Failed to restore config from template", "template", s.opts.TemplatePath, "error", err)
		return fmt.Errorf("failed to restore config: %w", err)
	}

	if s.opts.TelemetryKey != "" {
		if err := s.config.CommentOut(s.opts.TelemetryKey); err != nil {
			logging.Logger.Error("Failed to comment out telemetry key", "key", s.opts.TelemetryKey, "error", err)
			return fmt.Errorf("failed to comment out %s: %w", s.opts.TelemetryKey, err)
		}
	}

	s.cleanup(ctx)

	if err := s.capture.Install(); err != nil {
		logging.Logger.Error("Failed to install diagnostic buffer", "error", err)
		return fmt.Errorf("failed to install diagnostic buffer: %w", err)
	}

	logging.Logger.Info("Environment reset complete")
	return nil
}

// cleanup kills every managed process, waits for the artifact set to settle
// and deletes it. Failures are logged and swallowed.
func (s *ResetService) cleanup(ctx context.Context) {
	if err := s.processes.KillAll(ctx); err != nil {
		logging.Logger.Warn("KillAll did not complete", "error", err)
	}

	if err := s.processes.WaitForQuiescence(ctx); err != nil {
		logging.Logger.Warn("Artifacts still changing before delete", "error", err)
	}

	if err := s.processes.DeleteAllInformation(ctx); err != nil {
		logging.Logger.Warn("Artifacts left behind", "error", err)
	}
}

// Teardown removes the live config and the fixed artifact dirs after the
// whole run. Every error is logged and swallowed.
func (s *ResetService) Teardown(ctx context.Context) {
	logging.Logger.Info("Tearing down environment", "config", s.config.Path())

	if err := os.Remove(s.config.Path()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logging.Logger.Warn("Failed to delete config", "path", s.config.Path(), "error", err)
	}

	for _, dir := range s.opts.ArtifactDirs {
		if ctx.Err() != nil {
			logging.Logger.Warn("Teardown interrupted", "error", ctx.Err())
			return
		}
		if err := os.RemoveAll(dir); err != nil {
			logging.Logger.Warn("Failed to delete artifact dir", "path", dir, "error", err)
		}
	}
}

// DumpDiagnostics writes what was captured since the last reset to the
// operator channel
func (s *ResetService) DumpDiagnostics() {
	s.capture.Dump()
}
