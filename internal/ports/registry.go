package ports

import (
	"context"

	"github.com/vanshika-srivastava/coretest/internal/domain"
)

// ProcessReader reads the managed process set
type ProcessReader interface {
	ListProcesses(ctx context.Context) ([]domain.ProcessRecord, error)
}

// ProcessWriter adds and removes members of the managed process set
type ProcessWriter interface {
	AddProcess(ctx context.Context, record domain.ProcessRecord) error
	RemoveProcess(ctx context.Context, id domain.ProcessID) error
}

// ArtifactStore persists paths registered at runtime
type ArtifactStore interface {
	AddArtifact(ctx context.Context, path string) error
	ListArtifacts(ctx context.Context) ([]domain.Artifact, error)
	RemoveArtifact(ctx context.Context, path string) error
}

// Registry is the full persistence interface
type Registry interface {
	ProcessReader
	ProcessWriter
	ArtifactStore
	Close() error
}
