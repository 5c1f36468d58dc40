package ports

// ConfigEditor rewrites single keys of the live config file
type ConfigEditor interface {
	CommentOut(key string) error
	CopyFrom(templatePath string) error
	Path() string
	SetValue(key, value string) error
}

// DiagnosticCapture owns the process-wide stderr redirection
type DiagnosticCapture interface {
	// Install replaces stderr with a fresh, empty buffer
	Install() error
	// Dump writes everything captured so far to the operator channel
	Dump()
}

// ResetLock keeps two processes from resetting the same install dir at once
type ResetLock interface {
	// Lock blocks until the lock is held and returns the function releasing it
	Lock() (func() error, error)
}
