package process

import (
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

// OSProcessInspector implements ProcessInspector using OS primitives
type OSProcessInspector struct{}

// Compile-time interface verification
var _ ports.ProcessInspector = (*OSProcessInspector)(nil)

// NewOSProcessInspector creates a new OS process inspector
func NewOSProcessInspector() *OSProcessInspector {
	return &OSProcessInspector{}
}

// IsAlive reports whether pid names a live (non-zombie) process
func (i *OSProcessInspector) IsAlive(pid int) bool {
	if pid <= 0 {
		return false
	}
	return isAlive(pid)
}
