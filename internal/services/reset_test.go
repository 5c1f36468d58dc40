package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vanshika-srivastava/coretest/internal/adapters/configfile"
	"github.com/vanshika-srivastava/coretest/internal/domain"
	portsmocks "github.com/vanshika-srivastava/coretest/internal/ports/mocks"
)

type resetMocks struct {
	capture   *portsmocks.MockDiagnosticCapture
	config    *portsmocks.MockConfigEditor
	processes *portsmocks.MockProcessLifecycle
}

func newResetMocks(t *testing.T) resetMocks {
	return resetMocks{
		capture:   portsmocks.NewMockDiagnosticCapture(t),
		config:    portsmocks.NewMockConfigEditor(t),
		processes: portsmocks.NewMockProcessLifecycle(t),
	}
}

func testResetOptions() ResetOptions {
	return ResetOptions{
		Flags:        domain.DefaultTestFlags(true),
		TelemetryKey: "disable_telemetry",
		TemplatePath: "/install/temp/config.yaml",
	}
}

func TestReset_RunsStepsInOrder(t *testing.T) {
	m := newResetMocks(t)
	var steps []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { steps = append(steps, step) }
	}

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(domain.DefaultTestFlags(true)).Run(record("flags")).Return()
	m.config.EXPECT().CopyFrom("/install/temp/config.yaml").
		Run(func(string) { steps = append(steps, "copy") }).Return(nil)
	m.config.EXPECT().CommentOut("disable_telemetry").
		Run(func(string) { steps = append(steps, "comment") }).Return(nil)
	m.processes.EXPECT().KillAll(mock.Anything).Run(record("kill")).Return(nil).Once()
	m.processes.EXPECT().WaitForQuiescence(mock.Anything).Run(record("quiesce")).Return(nil)
	m.processes.EXPECT().DeleteAllInformation(mock.Anything).Run(record("delete")).Return(nil)
	m.capture.EXPECT().Install().Run(record("install")).Return(nil)

	service := NewResetService(m.config, m.processes, m.capture, testResetOptions())

	require.NoError(t, service.Reset(context.Background()))
	assert.Equal(t, []string{"flags", "copy", "comment", "kill", "quiesce", "delete", "install"}, steps)
}

func TestReset_CopyFailureAborts(t *testing.T) {
	m := newResetMocks(t)
	copyErr := errors.New("disk full")

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(mock.Anything).Return()
	m.config.EXPECT().CopyFrom(mock.Anything).Return(copyErr)

	service := NewResetService(m.config, m.processes, m.capture, testResetOptions())

	err := service.Reset(context.Background())

	require.Error(t, err)
	assert.ErrorIs(t, err, copyErr)
	m.processes.AssertNotCalled(t, "KillAll", mock.Anything)
	m.capture.AssertNotCalled(t, "Install")
}

func TestReset_CommentOutFailureAborts(t *testing.T) {
	m := newResetMocks(t)
	ioErr := errors.New("read-only file system")

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(mock.Anything).Return()
	m.config.EXPECT().CopyFrom(mock.Anything).Return(nil)
	m.config.EXPECT().CommentOut("disable_telemetry").Return(ioErr)

	service := NewResetService(m.config, m.processes, m.capture, testResetOptions())

	err := service.Reset(context.Background())

	assert.ErrorIs(t, err, ioErr)
	m.processes.AssertNotCalled(t, "DeleteAllInformation", mock.Anything)
}

func TestReset_CleanupErrorsDoNotAbort(t *testing.T) {
	m := newResetMocks(t)

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(mock.Anything).Return()
	m.config.EXPECT().CopyFrom(mock.Anything).Return(nil)
	m.config.EXPECT().CommentOut(mock.Anything).Return(nil)
	m.processes.EXPECT().KillAll(mock.Anything).Return(domain.ErrProcessesRemain)
	m.processes.EXPECT().WaitForQuiescence(mock.Anything).Return(domain.ErrNotQuiescent)
	m.processes.EXPECT().DeleteAllInformation(mock.Anything).Return(domain.ErrArtifactsRemain)
	m.capture.EXPECT().Install().Return(nil)

	service := NewResetService(m.config, m.processes, m.capture, testResetOptions())

	assert.NoError(t, service.Reset(context.Background()))
}

func TestReset_WithoutTelemetryKeySkipsCommentOut(t *testing.T) {
	m := newResetMocks(t)
	opts := testResetOptions()
	opts.TelemetryKey = ""

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(mock.Anything).Return()
	m.config.EXPECT().CopyFrom(mock.Anything).Return(nil)
	m.processes.EXPECT().KillAll(mock.Anything).Return(nil)
	m.processes.EXPECT().WaitForQuiescence(mock.Anything).Return(nil)
	m.processes.EXPECT().DeleteAllInformation(mock.Anything).Return(nil)
	m.capture.EXPECT().Install().Return(nil)

	service := NewResetService(m.config, m.processes, m.capture, opts)

	require.NoError(t, service.Reset(context.Background()))
	m.config.AssertNotCalled(t, "CommentOut", mock.Anything)
}

func TestDumpDiagnostics_DelegatesToCapture(t *testing.T) {
	m := newResetMocks(t)
	m.capture.EXPECT().Dump().Return()

	NewResetService(m.config, m.processes, m.capture, testResetOptions()).DumpDiagnostics()
}

func TestTeardown_RemovesConfigAndArtifactDirs(t *testing.T) {
	m := newResetMocks(t)
	install := t.TempDir()
	live := filepath.Join(install, "config.yaml")
	webserverTemp := filepath.Join(install, "webserver-temp")
	require.NoError(t, os.WriteFile(live, []byte("a: 1\n"), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(webserverTemp, "x"), 0755))

	m.config.EXPECT().Path().Return(live)
	opts := testResetOptions()
	opts.ArtifactDirs = []string{webserverTemp, filepath.Join(install, ".started")}

	service := NewResetService(m.config, m.processes, m.capture, opts)
	service.Teardown(context.Background())
	// Second call must tolerate everything already being gone
	service.Teardown(context.Background())

	assert.NoFileExists(t, live)
	assert.NoDirExists(t, webserverTemp)
}

// TestReset_TelemetryKeyOnlyLineChanged uses the real config mutator so the
// template-to-live transformation is checked byte for byte.
func TestReset_TelemetryKeyOnlyLineChanged(t *testing.T) {
	install := t.TempDir()
	template := "core_config_version: 0\n# port: 3567\ndisable_telemetry: false\nhost: localhost\n"
	templatePath := filepath.Join(install, "temp", "config.yaml")
	require.NoError(t, os.MkdirAll(filepath.Dir(templatePath), 0755))
	require.NoError(t, os.WriteFile(templatePath, []byte(template), 0644))
	live := filepath.Join(install, "config.yaml")
	require.NoError(t, os.WriteFile(live, []byte("leftover: from-previous-test\n"), 0644))

	processes := portsmocks.NewMockProcessLifecycle(t)
	capture := portsmocks.NewMockDiagnosticCapture(t)
	processes.EXPECT().SetTestFlags(mock.Anything).Return()
	processes.EXPECT().KillAll(mock.Anything).Return(nil)
	processes.EXPECT().WaitForQuiescence(mock.Anything).Return(nil)
	processes.EXPECT().DeleteAllInformation(mock.Anything).Return(nil)
	capture.EXPECT().Install().Return(nil)

	opts := testResetOptions()
	opts.TemplatePath = templatePath
	service := NewResetService(configfile.NewMutator(live), processes, capture, opts)

	require.NoError(t, service.Reset(context.Background()))

	data, err := os.ReadFile(live)
	require.NoError(t, err)
	want := strings.Replace(template, "disable_telemetry: false", "# disable_telemetry:", 1)
	assert.Equal(t, want, string(data))
}

// stepLock records lock and unlock into the shared step log
type stepLock struct {
	err   error
	steps *[]string
}

func (l *stepLock) Lock() (func() error, error) {
	if l.err != nil {
		return nil, l.err
	}
	*l.steps = append(*l.steps, "lock")
	return func() error {
		*l.steps = append(*l.steps, "unlock")
		return nil
	}, nil
}

func TestReset_HoldsLockForWholeSequence(t *testing.T) {
	m := newResetMocks(t)
	var steps []string
	record := func(step string) func(mock.Arguments) {
		return func(mock.Arguments) { steps = append(steps, step) }
	}

	m.config.EXPECT().Path().Return("/install/config.yaml")
	m.processes.EXPECT().SetTestFlags(mock.Anything).Run(record("flags")).Return()
	m.config.EXPECT().CopyFrom(mock.Anything).Return(nil)
	m.config.EXPECT().CommentOut(mock.Anything).Return(nil)
	m.processes.EXPECT().KillAll(mock.Anything).Return(nil)
	m.processes.EXPECT().WaitForQuiescence(mock.Anything).Return(nil)
	m.processes.EXPECT().DeleteAllInformation(mock.Anything).Return(nil)
	m.capture.EXPECT().Install().Run(record("install")).Return(nil)

	opts := testResetOptions()
	opts.Lock = &stepLock{steps: &steps}
	service := NewResetService(m.config, m.processes, m.capture, opts)

	require.NoError(t, service.Reset(context.Background()))
	assert.Equal(t, []string{"lock", "flags", "install", "unlock"}, steps)
}

func TestReset_LockFailureAborts(t *testing.T) {
	m := newResetMocks(t)
	lockErr := errors.New("permission denied")

	m.config.EXPECT().Path().Return("/install/config.yaml")

	opts := testResetOptions()
	opts.Lock = &stepLock{err: lockErr}
	service := NewResetService(m.config, m.processes, m.capture, opts)

	err := service.Reset(context.Background())

	assert.ErrorIs(t, err, lockErr)
	m.processes.AssertNotCalled(t, "SetTestFlags", mock.Anything)
	m.config.AssertNotCalled(t, "CopyFrom", mock.Anything)
}
