package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults used when neither flags, env nor settings.yaml provide a value
const (
	DefaultConfigPath        = "config.yaml"
	DefaultDeleteAttempts    = 5
	DefaultInstallDir        = "."
	DefaultKillGrace         = 5 * time.Second
	DefaultPollInterval      = 100 * time.Millisecond
	DefaultQuiescenceTimeout = 2 * time.Second
	DefaultServerURL         = "http://localhost:3567"
	DefaultTelemetryKey      = "disable_telemetry"
	DefaultTemplatePath      = "temp/config.yaml"
)

// DefaultArtifactDirs are the directories the server leaves behind in the install dir
var DefaultArtifactDirs = []string{"webserver-temp", ".started"}

// Settings represents the structure of $CORETEST_HOME/settings.yaml.
// Every field is optional; Resolve fills in defaults.
type Settings struct {
	ArtifactDirs      StringArray    `yaml:"artifact_dirs,omitempty"`
	ConfigPath        string         `yaml:"config_path,omitempty"`
	Debug             *bool          `yaml:"debug,omitempty"`
	DeleteAttempts    *int           `yaml:"delete_attempts,omitempty"`
	InstallDir        string         `yaml:"install_dir,omitempty"`
	KillGrace         *time.Duration `yaml:"kill_grace,omitempty"`
	MaxLogFiles       *int           `yaml:"max_log_files,omitempty"`
	PollInterval      *time.Duration `yaml:"poll_interval,omitempty"`
	QuiescenceTimeout *time.Duration `yaml:"quiescence_timeout,omitempty"`
	ServerURL         string         `yaml:"server_url,omitempty"`
	SilentConsole     *bool          `yaml:"silent_console,omitempty"`
	TelemetryKey      string         `yaml:"telemetry_key,omitempty"`
	TemplatePath      string         `yaml:"template_path,omitempty"`
}

// Resolved holds concrete values with every path made absolute-or-rooted under InstallDir
type Resolved struct {
	ArtifactDirs      []string
	ConfigPath        string
	DBPath            string
	DeleteAttempts    int
	InstallDir        string
	KillGrace         time.Duration
	LockPath          string
	PollInterval      time.Duration
	QuiescenceTimeout time.Duration
	ServerURL         string
	SilentConsole     bool
	TelemetryKey      string
	TemplatePath      string
}

// StringArray supports both YAML sequences and comma-separated strings
type StringArray []string

// UnmarshalYAML implements custom unmarshaling for StringArray
func (sa *StringArray) UnmarshalYAML(value *yaml.Node) error {
	// Try sequence format first
	var arr []string
	if err := value.Decode(&arr); err == nil {
		*sa = arr
		return nil
	}

	// Fall back to comma-separated string
	var str string
	if err := value.Decode(&str); err != nil {
		return err
	}
	*sa = parseCommaSeparated(str)
	return nil
}

// parseCommaSeparated splits comma-separated string and trims whitespace
func parseCommaSeparated(s string) []string {
	if s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// LoadSettings loads settings from $CORETEST_HOME/settings.yaml.
// Returns empty Settings if file doesn't exist (not an error)
func LoadSettings() (*Settings, error) {
	return LoadSettingsFrom(GetSettingsPath())
}

// LoadSettingsFrom loads settings from an explicit path
func LoadSettingsFrom(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings.yaml: %w", err)
	}

	return &settings, nil
}

// SaveSettings saves settings to $CORETEST_HOME/settings.yaml
func SaveSettings(settings *Settings) error {
	path := GetSettingsPath()
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write settings file: %w", err)
	}

	return nil
}

// Resolve applies defaults and roots relative paths under the install dir
func (s *Settings) Resolve() (*Resolved, error) {
	if s == nil {
		s = &Settings{}
	}

	installDir := s.InstallDir
	if installDir == "" {
		installDir = DefaultInstallDir
	}
	installDir, err := filepath.Abs(ExpandPath(installDir))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve install dir: %w", err)
	}

	r := &Resolved{
		ConfigPath:        resolveUnder(installDir, orDefault(s.ConfigPath, DefaultConfigPath)),
		DBPath:            GetDBPath(),
		DeleteAttempts:    DefaultDeleteAttempts,
		InstallDir:        installDir,
		KillGrace:         DefaultKillGrace,
		LockPath:          GetLockPath(),
		PollInterval:      DefaultPollInterval,
		QuiescenceTimeout: DefaultQuiescenceTimeout,
		ServerURL:         orDefault(s.ServerURL, DefaultServerURL),
		SilentConsole:     true,
		TelemetryKey:      orDefault(s.TelemetryKey, DefaultTelemetryKey),
		TemplatePath:      resolveUnder(installDir, orDefault(s.TemplatePath, DefaultTemplatePath)),
	}

	dirs := []string(s.ArtifactDirs)
	if dirs == nil {
		dirs = DefaultArtifactDirs
	}
	for _, d := range dirs {
		r.ArtifactDirs = append(r.ArtifactDirs, resolveUnder(installDir, d))
	}

	if s.DeleteAttempts != nil {
		if *s.DeleteAttempts < 1 {
			return nil, fmt.Errorf("delete_attempts must be at least 1, got %d", *s.DeleteAttempts)
		}
		r.DeleteAttempts = *s.DeleteAttempts
	}
	if s.KillGrace != nil {
		if *s.KillGrace <= 0 {
			return nil, fmt.Errorf("kill_grace must be positive, got %s", *s.KillGrace)
		}
		r.KillGrace = *s.KillGrace
	}
	if s.PollInterval != nil {
		if *s.PollInterval <= 0 {
			return nil, fmt.Errorf("poll_interval must be positive, got %s", *s.PollInterval)
		}
		r.PollInterval = *s.PollInterval
	}
	if s.QuiescenceTimeout != nil {
		r.QuiescenceTimeout = *s.QuiescenceTimeout
	}
	if s.SilentConsole != nil {
		r.SilentConsole = *s.SilentConsole
	}

	return r, nil
}

func orDefault(value, def string) string {
	if value == "" {
		return def
	}
	return value
}
