package domain

import "errors"

var (
	ErrArtifactsRemain = errors.New("artifacts still present after cleanup")
	ErrEmptyCommand    = errors.New("command must name a program")
	ErrInvalidKey      = errors.New("config key must be non-empty and single-line")
	ErrInvalidValue    = errors.New("config value must be single-line")
	ErrNotQuiescent    = errors.New("artifacts did not stabilize")
	ErrProcessNotFound = errors.New("process not found")
	ErrProcessesRemain = errors.New("processes still running after kill")
)
