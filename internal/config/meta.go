package config

import (
	"fmt"
	"reflect"
	"strings"

	"gopkg.in/yaml.v3"
)

// GetSettingsFilePath returns the path to the settings file
func GetSettingsFilePath() string {
	return GetSettingsPath()
}

// GetSettingsExample returns settings populated with every default.
// The result stays in sync with Settings because it is built from the same constants.
func GetSettingsExample() *Settings {
	debug := false
	silent := true
	deleteAttempts := DefaultDeleteAttempts
	maxLogFiles := 1000
	killGrace := DefaultKillGrace
	pollInterval := DefaultPollInterval
	quiescence := DefaultQuiescenceTimeout

	return &Settings{
		ArtifactDirs:      StringArray(DefaultArtifactDirs),
		ConfigPath:        DefaultConfigPath,
		Debug:             &debug,
		DeleteAttempts:    &deleteAttempts,
		InstallDir:        DefaultInstallDir,
		KillGrace:         &killGrace,
		MaxLogFiles:       &maxLogFiles,
		PollInterval:      &pollInterval,
		QuiescenceTimeout: &quiescence,
		ServerURL:         DefaultServerURL,
		SilentConsole:     &silent,
		TelemetryKey:      DefaultTelemetryKey,
		TemplatePath:      DefaultTemplatePath,
	}
}

// GetSettingsExampleYAML renders GetSettingsExample as a settings.yaml document
func GetSettingsExampleYAML() (string, error) {
	data, err := yaml.Marshal(GetSettingsExample())
	if err != nil {
		return "", fmt.Errorf("failed to marshal example settings: %w", err)
	}
	return string(data), nil
}

// GetSettingsKeys lists the YAML keys accepted in settings.yaml, in declaration order
func GetSettingsKeys() []string {
	t := reflect.TypeOf(Settings{})
	keys := make([]string, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		keys = append(keys, strings.Split(tag, ",")[0])
	}
	return keys
}
