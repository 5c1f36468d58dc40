package ports

import (
	"context"

	"github.com/vanshika-srivastava/coretest/internal/domain"
)

// ProcessLifecycle spawns, waits on and tears down external processes
type ProcessLifecycle interface {
	// DeleteAllInformation removes every path in the artifact set
	DeleteAllInformation(ctx context.Context) error
	// KillAll terminates every managed process and waits for each to exit
	KillAll(ctx context.Context) error
	// SetTestFlags sets the flags exported to processes spawned afterwards
	SetTestFlags(flags domain.TestFlags)
	// Spawn starts command in dir and returns immediately
	Spawn(ctx context.Context, command []string, dir string) (domain.ProcessHandle, error)
	// TrackArtifact adds path to the artifact set
	TrackArtifact(ctx context.Context, path string) error
	// WaitAndDiscard blocks until the process exits; its exit status is ignored
	WaitAndDiscard(ctx context.Context, handle domain.ProcessHandle) error
	// WaitForQuiescence blocks until the artifact set stops changing
	WaitForQuiescence(ctx context.Context) error
}

// ProcessInspector reports OS-level process state
type ProcessInspector interface {
	IsAlive(pid int) bool
}
