package domain

// TestFlags are the test-mode switches consumed by the server under test.
// They are handed to whatever spawns the server instead of living in globals.
type TestFlags struct {
	PluginTesting bool
	SilentConsole bool
	Testing       bool
}

// Environment variable names carrying TestFlags into child processes
const (
	EnvPluginTesting = "CORE_PLUGIN_TESTING"
	EnvSilentConsole = "CORE_SILENT_CONSOLE"
	EnvTesting       = "CORE_TESTING"
)

// DefaultTestFlags returns the flags every reset applies
func DefaultTestFlags(silentConsole bool) TestFlags {
	return TestFlags{
		PluginTesting: true,
		SilentConsole: silentConsole,
		Testing:       true,
	}
}

// Environ renders the flags as KEY=VALUE entries
func (f TestFlags) Environ() []string {
	return []string{
		EnvTesting + "=" + boolString(f.Testing),
		EnvPluginTesting + "=" + boolString(f.PluginTesting),
		EnvSilentConsole + "=" + boolString(f.SilentConsole),
	}
}

func boolString(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
