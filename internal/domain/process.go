package domain

import (
	"strings"
	"time"
)

// ProcessID is an opaque identifier for a process spawned by the harness
type ProcessID string

// ProcessHandle is returned by Spawn and passed back to wait on the process
type ProcessHandle struct {
	ID  ProcessID
	PID int
}

// ProcessRecord is a member of the managed process set
type ProcessRecord struct {
	Command   []string
	Dir       string
	ID        ProcessID
	PGID      int
	PID       int
	StartedAt time.Time
}

// Handle returns the handle identifying this record
func (r ProcessRecord) Handle() ProcessHandle {
	return ProcessHandle{ID: r.ID, PID: r.PID}
}

// CommandLine renders the argv for display
func (r ProcessRecord) CommandLine() string {
	return strings.Join(r.Command, " ")
}

// Artifact is a filesystem path produced as a side effect of a running process
type Artifact struct {
	CreatedAt time.Time
	Path      string
}
