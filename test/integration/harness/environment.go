package harness

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TemplateConfig is written to temp/config.yaml of every fixture install dir
const TemplateConfig = `# core config
core_config_version: 0

# port: 3567
host: "localhost"
disable_telemetry: false
# access_token_validity: 3600
`

// TestEnvironment provides an isolated test environment with its own
// CORETEST_HOME and a fixture install dir.
type TestEnvironment struct {
	CoretestHome string
	InstallDir   string
	extraEnv     map[string]string
	tb           testing.TB
}

// NewTestEnvironment creates an isolated test environment. The install dir
// holds temp/config.yaml and nothing else. Both temp directories are removed
// when the test completes.
func NewTestEnvironment(tb testing.TB) *TestEnvironment {
	tb.Helper()

	home := tb.TempDir()
	installDir := tb.TempDir()

	if err := os.MkdirAll(filepath.Join(installDir, "temp"), 0755); err != nil {
		tb.Fatalf("Failed to create template directory: %v", err)
	}
	if err := os.WriteFile(filepath.Join(installDir, "temp", "config.yaml"), []byte(TemplateConfig), 0644); err != nil {
		tb.Fatalf("Failed to write template config: %v", err)
	}

	return &TestEnvironment{
		CoretestHome: home,
		InstallDir:   installDir,
		extraEnv:     make(map[string]string),
		tb:           tb,
	}
}

// Environ returns environment variables configured for test isolation.
// It filters out CORETEST_* variables and sets:
//   - CORETEST_HOME to the temp home directory
//   - CORETEST_INSTALL_DIR to the fixture install dir
//   - CORETEST_DEBUG to empty string (disables debug logging)
func (e *TestEnvironment) Environ() []string {
	env := make([]string, 0, len(os.Environ())+3+len(e.extraEnv))

	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(key, "CORETEST_") {
			continue
		}
		if _, overridden := e.extraEnv[key]; overridden {
			continue
		}
		env = append(env, kv)
	}

	env = append(env,
		"CORETEST_HOME="+e.CoretestHome,
		"CORETEST_INSTALL_DIR="+e.InstallDir,
		"CORETEST_DEBUG=",
	)

	for k, v := range e.extraEnv {
		env = append(env, k+"="+v)
	}

	return env
}

// ConfigPath returns the live config path inside the install dir.
func (e *TestEnvironment) ConfigPath() string {
	return filepath.Join(e.InstallDir, "config.yaml")
}

// DBPath returns the path to the test registry database.
func (e *TestEnvironment) DBPath() string {
	return filepath.Join(e.CoretestHome, "state.db")
}

// ReadConfig returns the live config content, failing the test if it is missing.
func (e *TestEnvironment) ReadConfig() string {
	e.tb.Helper()
	data, err := os.ReadFile(e.ConfigPath())
	if err != nil {
		e.tb.Fatalf("Failed to read live config: %v", err)
	}
	return string(data)
}

// MakeArtifactDir creates a directory (with a file inside) under the install dir
// and returns its path.
func (e *TestEnvironment) MakeArtifactDir(name string) string {
	e.tb.Helper()
	dir := filepath.Join(e.InstallDir, name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		e.tb.Fatalf("Failed to create artifact dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "data"), []byte("x"), 0644); err != nil {
		e.tb.Fatalf("Failed to write artifact file: %v", err)
	}
	return dir
}

// SetEnv sets an additional environment variable for this test environment.
func (e *TestEnvironment) SetEnv(key, value string) {
	if e.extraEnv == nil {
		e.extraEnv = make(map[string]string)
	}
	e.extraEnv[key] = value
}

// WriteSettings writes settings.yaml into CORETEST_HOME.
func (e *TestEnvironment) WriteSettings(content string) {
	e.tb.Helper()
	if err := os.WriteFile(filepath.Join(e.CoretestHome, "settings.yaml"), []byte(content), 0644); err != nil {
		e.tb.Fatalf("Failed to write settings: %v", err)
	}
}
