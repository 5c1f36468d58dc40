package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettings_MissingFileReturnsEmpty(t *testing.T) {
	t.Setenv("CORETEST_HOME", t.TempDir())

	settings, err := LoadSettings()

	require.NoError(t, err)
	assert.Equal(t, &Settings{}, settings)
}

func TestLoadSettings_ParsesYAML(t *testing.T) {
	home := t.TempDir()
	t.Setenv("CORETEST_HOME", home)
	content := `install_dir: /opt/core
artifact_dirs: "webserver-temp, .started, logs"
kill_grace: 750ms
delete_attempts: 3
silent_console: false
`
	require.NoError(t, os.WriteFile(filepath.Join(home, "settings.yaml"), []byte(content), 0644))

	settings, err := LoadSettings()
	require.NoError(t, err)

	assert.Equal(t, "/opt/core", settings.InstallDir)
	assert.Equal(t, StringArray{"webserver-temp", ".started", "logs"}, settings.ArtifactDirs)
	require.NotNil(t, settings.KillGrace)
	assert.Equal(t, 750*time.Millisecond, *settings.KillGrace)
	require.NotNil(t, settings.DeleteAttempts)
	assert.Equal(t, 3, *settings.DeleteAttempts)
	require.NotNil(t, settings.SilentConsole)
	assert.False(t, *settings.SilentConsole)
}

func TestLoadSettings_ArtifactDirsAsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("artifact_dirs:\n  - a\n  - b\n"), 0644))

	settings, err := LoadSettingsFrom(path)

	require.NoError(t, err)
	assert.Equal(t, StringArray{"a", "b"}, settings.ArtifactDirs)
}

func TestLoadSettings_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kill_grace: [unterminated\n"), 0644))

	_, err := LoadSettingsFrom(path)

	assert.Error(t, err)
}

func TestResolve_Defaults(t *testing.T) {
	install := t.TempDir()

	r, err := (&Settings{InstallDir: install}).Resolve()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(install, "config.yaml"), r.ConfigPath)
	assert.Equal(t, filepath.Join(install, "temp", "config.yaml"), r.TemplatePath)
	assert.Equal(t, []string{
		filepath.Join(install, "webserver-temp"),
		filepath.Join(install, ".started"),
	}, r.ArtifactDirs)
	assert.Equal(t, DefaultTelemetryKey, r.TelemetryKey)
	assert.Equal(t, DefaultKillGrace, r.KillGrace)
	assert.Equal(t, DefaultDeleteAttempts, r.DeleteAttempts)
	assert.True(t, r.SilentConsole)
}

func TestResolve_AbsolutePathsKept(t *testing.T) {
	install := t.TempDir()
	other := t.TempDir()

	r, err := (&Settings{
		InstallDir:   install,
		ConfigPath:   filepath.Join(other, "live.yaml"),
		ArtifactDirs: StringArray{filepath.Join(other, "tmp")},
	}).Resolve()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(other, "live.yaml"), r.ConfigPath)
	assert.Equal(t, []string{filepath.Join(other, "tmp")}, r.ArtifactDirs)
}

func TestResolve_RejectsBadValues(t *testing.T) {
	zero := 0
	_, err := (&Settings{DeleteAttempts: &zero}).Resolve()
	assert.Error(t, err)

	negative := -time.Second
	_, err = (&Settings{PollInterval: &negative}).Resolve()
	assert.Error(t, err)

	_, err = (&Settings{KillGrace: &negative}).Resolve()
	assert.ErrorContains(t, err, "kill_grace")

	var none time.Duration
	_, err = (&Settings{KillGrace: &none}).Resolve()
	assert.ErrorContains(t, err, "kill_grace")
}

func TestGetSettingsExampleYAML_RoundTripsThroughLoader(t *testing.T) {
	doc, err := GetSettingsExampleYAML()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc), 0644))

	loaded, err := LoadSettingsFrom(path)
	require.NoError(t, err)
	assert.Equal(t, GetSettingsExample(), loaded)
}

func TestGetSettingsKeys(t *testing.T) {
	keys := GetSettingsKeys()

	assert.Contains(t, keys, "install_dir")
	assert.Contains(t, keys, "telemetry_key")
	assert.Len(t, keys, 13)
}

func TestSaveSettings_LoadsBack(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested")
	t.Setenv("CORETEST_HOME", home)
	grace := 2 * time.Second

	require.NoError(t, SaveSettings(&Settings{InstallDir: "/opt/core", KillGrace: &grace}))

	loaded, err := LoadSettings()
	require.NoError(t, err)
	assert.Equal(t, "/opt/core", loaded.InstallDir)
	require.NotNil(t, loaded.KillGrace)
	assert.Equal(t, grace, *loaded.KillGrace)
}
