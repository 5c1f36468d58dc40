//go:build !windows

package integration_test

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vanshika-srivastava/coretest/test/integration/harness"
)

type processEntry struct {
	Alive bool   `json:"alive"`
	ID    string `json:"id"`
	PID   int    `json:"pid"`
}

func listProcesses(t *testing.T, env *harness.TestEnvironment) []processEntry {
	t.Helper()
	result := harness.RunCommand(t, env, "processes", "--format", "json")
	harness.AssertSuccess(t, result)
	var entries []processEntry
	harness.AssertValidJSON(t, result, &entries)
	return entries
}

// pidAlive treats zombies as dead: an orphaned child may not be reaped
// promptly when PID 1 is not an init
func pidAlive(pid int) bool {
	if syscall.Kill(pid, 0) != nil {
		return false
	}
	stat, err := os.ReadFile("/proc/" + strconv.Itoa(pid) + "/stat")
	if err != nil {
		return true
	}
	fields := strings.Fields(string(stat[strings.LastIndexByte(string(stat), ')')+1:]))
	return len(fields) == 0 || fields[0] != "Z"
}

func TestSpawnThenKillAcrossInvocations(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "spawn", "--", "sleep", "60")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Spawned")

	entries := listProcesses(t, env)
	require.Len(t, entries, 1)
	assert.True(t, entries[0].Alive)
	pid := entries[0].PID

	harness.AssertSuccess(t, harness.RunCommand(t, env, "kill"))

	assert.Eventually(t, func() bool { return !pidAlive(pid) }, 5*time.Second, 20*time.Millisecond)
	assert.Empty(t, listProcesses(t, env))
}

func TestSpawnWaitExportsTestFlags(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	harness.AssertSuccess(t, harness.RunCommand(t, env, "reset"))

	result := harness.RunCommand(t, env, "spawn", "--wait", "--",
		"sh", "-c", `echo "$CORE_TESTING,$CORE_PLUGIN_TESTING,$CORE_SILENT_CONSOLE" > flags.txt; exit 7`)

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "exited")
	data, err := os.ReadFile(filepath.Join(env.InstallDir, "flags.txt"))
	require.NoError(t, err)
	assert.Equal(t, "true,true,true\n", string(data))
}

func TestSpawnEmptyCommandFails(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "spawn", "--", "")

	harness.AssertFailure(t, result)
}

func TestResetKillsLeakedProcesses(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	harness.AssertSuccess(t, harness.RunCommand(t, env, "spawn", "--", "sleep", "60"))
	entries := listProcesses(t, env)
	require.Len(t, entries, 1)

	harness.AssertSuccess(t, harness.RunCommand(t, env, "reset"))

	assert.Eventually(t, func() bool { return !pidAlive(entries[0].PID) }, 5*time.Second, 20*time.Millisecond)
	assert.Empty(t, listProcesses(t, env))
}

func TestTrackThenClean(t *testing.T) {
	env := harness.NewTestEnvironment(t)
	extra := env.MakeArtifactDir("logs")

	harness.AssertSuccess(t, harness.RunCommand(t, env, "track", extra))
	result := harness.RunCommand(t, env, "clean")

	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Removed 1 artifact path(s)")
	harness.AssertPathGone(t, extra)
}

func TestClean_CountsOnlyPathsThatExisted(t *testing.T) {
	env := harness.NewTestEnvironment(t)

	result := harness.RunCommand(t, env, "clean", "--no-wait")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Removed 0 artifact path(s)")

	started := env.MakeArtifactDir(".started")
	result = harness.RunCommand(t, env, "clean", "--no-wait")
	harness.AssertSuccess(t, result)
	harness.AssertStdoutContains(t, result, "Removed 1 artifact path(s)")
	harness.AssertPathGone(t, started)
}
