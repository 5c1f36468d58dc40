package process

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/vanshika-srivastava/coretest/internal/domain"
	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/ports"
)

type signal int

const (
	sigTerm signal = iota
	sigKill
)

const (
	defaultKillGrace    = 5 * time.Second
	defaultPollInterval = 100 * time.Millisecond
)

// Options tune how long the manager waits before escalating or giving up
type Options struct {
	ArtifactDirs      []string
	DeleteAttempts    int
	KillGrace         time.Duration
	PollInterval      time.Duration
	QuiescenceTimeout time.Duration
}

// Status pairs a managed process with whether it is still running
type Status struct {
	Alive  bool
	Record domain.ProcessRecord
}

// Manager spawns external processes, tracks them in the registry and tears
// them down together with the artifacts they leave behind.
type Manager struct {
	children  map[domain.ProcessID]*child
	env       []string
	inspector ports.ProcessInspector
	mu        sync.Mutex
	opts      Options
	registry  ports.Registry
}

// child is a process started by this Manager; done closes once it is reaped
type child struct {
	done   chan struct{}
	record domain.ProcessRecord
}

// target is a process KillAll has to bring down
type target struct {
	child  *child
	record domain.ProcessRecord
}

// Compile-time interface verification
var _ ports.ProcessLifecycle = (*Manager)(nil)

// NewManager creates a Manager backed by registry
func NewManager(registry ports.Registry, inspector ports.ProcessInspector, opts Options) *Manager {
	if opts.DeleteAttempts < 1 {
		opts.DeleteAttempts = 1
	}
	if opts.KillGrace <= 0 {
		opts.KillGrace = defaultKillGrace
	}
	if opts.PollInterval <= 0 {
		opts.PollInterval = defaultPollInterval
	}
	return &Manager{
		children:  make(map[domain.ProcessID]*child),
		inspector: inspector,
		opts:      opts,
		registry:  registry,
	}
}

// SetTestFlags sets the flags exported to processes spawned afterwards
func (m *Manager) SetTestFlags(flags domain.TestFlags) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.env = flags.Environ()
	logging.Logger.Debug("Test flags applied", "env", m.env)
}

// Spawn starts command in dir in its own process group and returns at once.
// The child's stdout and stderr are not captured.
func (m *Manager) Spawn(ctx context.Context, command []string, dir string) (domain.ProcessHandle, error) {
	if len(command) == 0 || command[0] == "" {
		return domain.ProcessHandle{}, domain.ErrEmptyCommand
	}

	m.mu.Lock()
	env := append(os.Environ(), m.env...)
	m.mu.Unlock()

	cmd := exec.Command(command[0], command[1:]...)
	cmd.Dir = dir
	cmd.Env = env
	setProcessGroup(cmd)

	if err := cmd.Start(); err != nil {
		return domain.ProcessHandle{}, fmt.Errorf("failed to start %s: %w", command[0], err)
	}

	pid := cmd.Process.Pid
	record := domain.ProcessRecord{
		Command:   slices.Clone(command),
		Dir:       dir,
		ID:        domain.ProcessID(uuid.New().String()),
		PGID:      processGroup(pid),
		PID:       pid,
		StartedAt: time.Now().UTC(),
	}

	c := &child{done: make(chan struct{}), record: record}
	go func() {
		_ = cmd.Wait()
		close(c.done)
	}()

	m.mu.Lock()
	m.children[record.ID] = c
	m.mu.Unlock()

	if err := m.registry.AddProcess(ctx, record); err != nil {
		logging.Logger.Warn("Failed to persist spawned process", "id", record.ID, "pid", pid, "error", err)
	}

	logging.Logger.Info("Process spawned",
		"id", record.ID,
		"pid", pid,
		"command", record.CommandLine(),
		"dir", dir)
	return record.Handle(), nil
}

// WaitAndDiscard blocks until the process exits or ctx is done.
// The exit status is deliberately ignored.
func (m *Manager) WaitAndDiscard(ctx context.Context, handle domain.ProcessHandle) error {
	m.mu.Lock()
	c, ok := m.children[handle.ID]
	m.mu.Unlock()

	if ok {
		select {
		case <-c.done:
		case <-ctx.Done():
			return ctx.Err()
		}
	} else if err := m.pollUntilDead(ctx, handle.PID, 0); err != nil {
		return err
	}

	m.forget(ctx, handle.ID)
	return nil
}

// Run spawns command and waits for it, ignoring its exit status
func (m *Manager) Run(ctx context.Context, command []string, dir string) error {
	handle, err := m.Spawn(ctx, command, dir)
	if err != nil {
		return err
	}
	return m.WaitAndDiscard(ctx, handle)
}

// KillAll terminates every managed process, including ones recorded by an
// earlier harness run, and blocks until each has exited. Members that cannot
// be confirmed dead stay in the set and are reported in the error.
func (m *Manager) KillAll(ctx context.Context) error {
	targets := m.collectTargets(ctx)
	if len(targets) == 0 {
		logging.Logger.Debug("KillAll: no managed processes")
		return nil
	}

	logging.Logger.Info("Killing managed processes", "count", len(targets))

	var g errgroup.Group
	for _, t := range targets {
		g.Go(func() error {
			return m.terminate(ctx, t)
		})
	}
	return g.Wait()
}

// Status lists every process in the managed set with its liveness
func (m *Manager) Status(ctx context.Context) ([]Status, error) {
	records, err := m.registry.ListProcesses(ctx)
	if err != nil {
		return nil, err
	}

	statuses := make([]Status, 0, len(records))
	for _, r := range records {
		statuses = append(statuses, Status{
			Alive:  m.inspector.IsAlive(r.PID) && sameProcessGroup(r.PID, r.PGID),
			Record: r,
		})
	}
	return statuses, nil
}

// TrackArtifact adds path to the artifact set
func (m *Manager) TrackArtifact(ctx context.Context, path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to resolve artifact path %s: %w", path, err)
	}
	if err := m.registry.AddArtifact(ctx, abs); err != nil {
		return fmt.Errorf("failed to track artifact %s: %w", abs, err)
	}
	logging.Logger.Debug("Tracking artifact", "path", abs)
	return nil
}

// ArtifactPaths returns the fixed artifact dirs plus every tracked path, sorted
func (m *Manager) ArtifactPaths(ctx context.Context) []string {
	seen := make(map[string]bool)
	var paths []string
	add := func(p string) {
		if p != "" && !seen[p] {
			seen[p] = true
			paths = append(paths, p)
		}
	}

	for _, d := range m.opts.ArtifactDirs {
		add(filepath.Clean(d))
	}

	artifacts, err := m.registry.ListArtifacts(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to list tracked artifacts", "error", err)
	}
	for _, a := range artifacts {
		add(filepath.Clean(a.Path))
	}

	sort.Strings(paths)
	return paths
}

// WaitForQuiescence blocks until two consecutive snapshots of the artifact set
// are identical, so nothing is still being flushed when deletion starts.
func (m *Manager) WaitForQuiescence(ctx context.Context) error {
	if m.opts.QuiescenceTimeout <= 0 {
		return nil
	}
	paths := m.ArtifactPaths(ctx)
	if len(paths) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, m.opts.QuiescenceTimeout)
	defer cancel()

	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	prev := fingerprint(paths)
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("%w within %s", domain.ErrNotQuiescent, m.opts.QuiescenceTimeout)
		case <-ticker.C:
			cur := fingerprint(paths)
			if slices.Equal(prev, cur) {
				logging.Logger.Debug("Artifacts are quiescent", "paths", len(paths))
				return nil
			}
			prev = cur
		}
	}
}

// DeleteAllInformation removes every artifact path. Individual failures are
// logged and retried up to DeleteAttempts times; only paths that survive
// every attempt are reported.
func (m *Manager) DeleteAllInformation(ctx context.Context) error {
	paths := m.ArtifactPaths(ctx)
	pending := paths

	for attempt := 1; attempt <= m.opts.DeleteAttempts && len(pending) > 0; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				attempt = m.opts.DeleteAttempts
				continue
			case <-time.After(m.opts.PollInterval):
			}
		}

		var remaining []string
		for _, p := range pending {
			if err := os.RemoveAll(p); err != nil {
				logging.Logger.Warn("Failed to delete artifact", "path", p, "attempt", attempt, "error", err)
			}
			if exists(p) {
				remaining = append(remaining, p)
			}
		}
		pending = remaining
	}

	m.untrackDeleted(ctx, pending)

	if len(pending) > 0 {
		return fmt.Errorf("%w: %s", domain.ErrArtifactsRemain, strings.Join(pending, ", "))
	}
	logging.Logger.Info("Artifacts deleted", "count", len(paths))
	return nil
}

// untrackDeleted drops registry entries for tracked artifacts that are gone
func (m *Manager) untrackDeleted(ctx context.Context, remaining []string) {
	artifacts, err := m.registry.ListArtifacts(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to list tracked artifacts", "error", err)
		return
	}
	for _, a := range artifacts {
		if slices.Contains(remaining, filepath.Clean(a.Path)) {
			continue
		}
		if err := m.registry.RemoveArtifact(ctx, a.Path); err != nil {
			logging.Logger.Warn("Failed to untrack artifact", "path", a.Path, "error", err)
		}
	}
}

// collectTargets merges in-memory children with the persisted set
func (m *Manager) collectTargets(ctx context.Context) []target {
	byID := make(map[domain.ProcessID]target)

	records, err := m.registry.ListProcesses(ctx)
	if err != nil {
		logging.Logger.Warn("Failed to list persisted processes", "error", err)
	}
	for _, r := range records {
		byID[r.ID] = target{record: r}
	}

	m.mu.Lock()
	for id, c := range m.children {
		byID[id] = target{child: c, record: c.record}
	}
	m.mu.Unlock()

	targets := make([]target, 0, len(byID))
	for _, t := range byID {
		targets = append(targets, t)
	}
	return targets
}

// terminate sends SIGTERM to the target's group, escalates to SIGKILL after
// the grace period and waits for the leader and the rest of its group to exit.
func (m *Manager) terminate(ctx context.Context, t target) error {
	r := t.record

	if t.child == nil && !(m.inspector.IsAlive(r.PID) && sameProcessGroup(r.PID, r.PGID)) {
		logging.Logger.Debug("Persisted process already gone", "id", r.ID, "pid", r.PID)
		m.forget(ctx, r.ID)
		return nil
	}

	for _, sig := range []signal{sigTerm, sigKill} {
		if err := signalGroup(r.PID, r.PGID, sig); err != nil {
			logging.Logger.Warn("Failed to signal process", "id", r.ID, "pid", r.PID, "error", err)
		}
		if m.awaitExit(ctx, t) {
			if err := m.reapGroup(ctx, r); err != nil {
				return err
			}
			logging.Logger.Info("Process terminated", "id", r.ID, "pid", r.PID, "forced", sig == sigKill)
			m.forget(ctx, r.ID)
			return nil
		}
		if ctx.Err() != nil {
			break
		}
		logging.Logger.Warn("Process ignored signal, escalating", "id", r.ID, "pid", r.PID)
	}

	return fmt.Errorf("process %s (pid %d): %w", r.ID, r.PID, domain.ErrProcessesRemain)
}

// awaitExit reports whether the target exited within the kill grace
func (m *Manager) awaitExit(ctx context.Context, t target) bool {
	if t.child != nil {
		timer := time.NewTimer(m.opts.KillGrace)
		defer timer.Stop()
		select {
		case <-t.child.done:
			return true
		case <-timer.C:
			return false
		case <-ctx.Done():
			return false
		}
	}
	return m.pollUntilDead(ctx, t.record.PID, m.opts.KillGrace) == nil
}

// reapGroup kills whatever is left of the leader's group once the leader is
// gone. Members that ignored SIGTERM get SIGKILL.
func (m *Manager) reapGroup(ctx context.Context, r domain.ProcessRecord) error {
	if r.PGID <= 0 || !groupAlive(r.PGID) {
		return nil
	}

	logging.Logger.Warn("Process group outlived its leader, killing", "id", r.ID, "pgid", r.PGID)
	if err := signalGroup(r.PID, r.PGID, sigKill); err != nil {
		logging.Logger.Warn("Failed to signal process group", "id", r.ID, "pgid", r.PGID, "error", err)
	}

	if err := m.pollUntil(ctx, m.opts.KillGrace, func() bool { return !groupAlive(r.PGID) }); err != nil {
		return fmt.Errorf("process group %d of %s: %w", r.PGID, r.ID, domain.ErrProcessesRemain)
	}
	return nil
}

// pollUntilDead waits for a process this Manager did not start.
// A zero timeout waits until ctx is done.
func (m *Manager) pollUntilDead(ctx context.Context, pid int, timeout time.Duration) error {
	return m.pollUntil(ctx, timeout, func() bool { return !m.inspector.IsAlive(pid) })
}

// pollUntil checks done every poll interval until it holds or ctx is done.
// A positive timeout bounds the wait.
func (m *Manager) pollUntil(ctx context.Context, timeout time.Duration, done func() bool) error {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	ticker := time.NewTicker(m.opts.PollInterval)
	defer ticker.Stop()

	for !done() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
	return nil
}

// forget removes a process from both the in-memory and the persisted set
func (m *Manager) forget(ctx context.Context, id domain.ProcessID) {
	m.mu.Lock()
	delete(m.children, id)
	m.mu.Unlock()

	if err := m.registry.RemoveProcess(context.WithoutCancel(ctx), id); err != nil && !errors.Is(err, domain.ErrProcessNotFound) {
		logging.Logger.Warn("Failed to remove process from registry", "id", id, "error", err)
	}
}

// pathState is one path's contribution to an artifact-set fingerprint
type pathState struct {
	entries int
	exists  bool
	newest  int64
	size    int64
}

func fingerprint(paths []string) []pathState {
	states := make([]pathState, len(paths))
	for i, p := range paths {
		st := &states[i]
		_ = filepath.WalkDir(p, func(_ string, d fs.DirEntry, err error) error {
			if err != nil {
				return nil
			}
			st.exists = true
			st.entries++
			if info, err := d.Info(); err == nil {
				st.size += info.Size()
				if mt := info.ModTime().UnixNano(); mt > st.newest {
					st.newest = mt
				}
			}
			return nil
		})
	}
	return states
}

func exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil || !errors.Is(err, fs.ErrNotExist)
}
