package harness

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
	"time"
)

// Reset kills processes and waits for artifacts to settle, so allow more
// than a plain command would need.
const defaultTimeout = 45 * time.Second

var (
	binary    string
	buildOnce sync.Once
	buildErr  error
)

// CommandResult is what one coretest invocation produced
type CommandResult struct {
	Duration time.Duration
	ExitCode int
	Stderr   string
	Stdout   string
}

// TimedOut reports whether the command was killed by its deadline
func (r CommandResult) TimedOut() bool {
	return r.ExitCode == -1
}

// BuildBinary compiles coretest into a temp dir, once per test binary.
// TestMain calls it before m.Run.
func BuildBinary() (string, error) {
	buildOnce.Do(func() {
		root, err := moduleRoot()
		if err != nil {
			buildErr = err
			return
		}

		dir, err := os.MkdirTemp("", "coretest-integration-*")
		if err != nil {
			buildErr = err
			return
		}

		name := "coretest"
		if runtime.GOOS == "windows" {
			name += ".exe"
		}
		out := filepath.Join(dir, name)

		build := exec.Command("go", "build", "-o", out, ".")
		build.Dir = root
		build.Stdout = os.Stdout
		build.Stderr = os.Stderr
		if err := build.Run(); err != nil {
			buildErr = fmt.Errorf("go build in %s: %w", root, err)
			return
		}
		binary = out
	})

	return binary, buildErr
}

// CleanupBinary deletes what BuildBinary produced
func CleanupBinary() {
	if binary == "" {
		return
	}
	if err := os.RemoveAll(filepath.Dir(binary)); err != nil {
		log.Printf("Warning: failed to remove %s: %v", filepath.Dir(binary), err)
	}
}

// RunCommand runs coretest with args inside env
func RunCommand(tb testing.TB, env *TestEnvironment, args ...string) CommandResult {
	tb.Helper()
	return RunCommandWithTimeout(tb, env, defaultTimeout, args...)
}

// RunCommandWithTimeout runs coretest with args inside env and kills it after
// timeout. A killed or unstartable command reports exit code -1.
func RunCommandWithTimeout(tb testing.TB, env *TestEnvironment, timeout time.Duration, args ...string) CommandResult {
	tb.Helper()

	if binary == "" {
		tb.Fatal("coretest binary not built; call harness.BuildBinary from TestMain")
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, binary, args...)
	cmd.Dir = env.InstallDir
	cmd.Env = env.Environ()
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	result := CommandResult{
		Duration: time.Since(start),
		Stderr:   stderr.String(),
		Stdout:   stdout.String(),
	}

	var exitErr *exec.ExitError
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		tb.Logf("coretest %v timed out after %v", args, timeout)
		result.ExitCode = -1
	case errors.As(err, &exitErr):
		result.ExitCode = exitErr.ExitCode()
	case err != nil:
		tb.Logf("coretest %v could not run: %v", args, err)
		result.ExitCode = -1
	}

	return result
}

// moduleRoot walks up from the working directory to the dir holding go.mod
func moduleRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", errors.New("go.mod not found above working directory")
		}
		dir = parent
	}
}
