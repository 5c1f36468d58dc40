package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/vanshika-srivastava/coretest/internal/config"
	"github.com/vanshika-srivastava/coretest/internal/theme"
)

// SettingsCmd manages settings
type SettingsCmd struct {
	Init SettingsInitCmd `cmd:"init" help:"Write settings.yaml populated with every default"`
	Keys SettingsKeysCmd `cmd:"keys" help:"List the keys accepted in settings.yaml"`
	Meta SettingsMetaCmd `cmd:"meta" help:"Show settings file location and an example" default:"1"`
	Show SettingsShowCmd `cmd:"show" help:"Show the effective values after flags, env and defaults"`
}

// SettingsMetaCmd displays settings metadata
type SettingsMetaCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// SettingsInitCmd writes a default settings file
type SettingsInitCmd struct {
	Force bool `help:"Overwrite an existing settings.yaml"`
}

// SettingsKeysCmd lists settings keys
type SettingsKeysCmd struct{}

// SettingsShowCmd displays resolved settings
type SettingsShowCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

// Run executes the meta command
func (s *SettingsMetaCmd) Run(cli *CLI) error {
	settingsFile := config.GetSettingsFilePath()

	if s.Format == "json" {
		output := map[string]any{
			"settings_file": settingsFile,
			"format":        config.GetSettingsExample(),
		}
		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	example, err := config.GetSettingsExampleYAML()
	if err != nil {
		return err
	}

	fmt.Printf("Settings file: %s\n\n", settingsFile)
	fmt.Println("Example settings.yaml:")
	fmt.Println()
	fmt.Print(example)
	fmt.Println()
	fmt.Println("Create or edit this file to configure coretest.")
	fmt.Println("All settings are optional and have sensible defaults.")

	return nil
}

// Run executes the init command
func (s *SettingsInitCmd) Run(cli *CLI) error {
	path := config.GetSettingsFilePath()
	if _, err := os.Stat(path); err == nil && !s.Force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	if err := config.SaveSettings(config.GetSettingsExample()); err != nil {
		return err
	}
	fmt.Printf("Wrote %s\n", path)
	return nil
}

// Run executes the keys command
func (s *SettingsKeysCmd) Run(cli *CLI) error {
	for _, key := range config.GetSettingsKeys() {
		fmt.Println(key)
	}
	return nil
}

// Run executes the show command
func (s *SettingsShowCmd) Run(cli *CLI) error {
	r := cli.Container.Settings

	if s.Format == "json" {
		data, err := json.MarshalIndent(r, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	rows := [][2]string{
		{"install_dir", r.InstallDir},
		{"config_path", r.ConfigPath},
		{"template_path", r.TemplatePath},
		{"artifact_dirs", strings.Join(r.ArtifactDirs, ", ")},
		{"telemetry_key", r.TelemetryKey},
		{"kill_grace", r.KillGrace.String()},
		{"poll_interval", r.PollInterval.String()},
		{"quiescence_timeout", r.QuiescenceTimeout.String()},
		{"delete_attempts", fmt.Sprintf("%d", r.DeleteAttempts)},
		{"silent_console", fmt.Sprintf("%t", r.SilentConsole)},
		{"server_url", r.ServerURL},
		{"db", r.DBPath},
	}
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\n", theme.HeaderStyle.Render(row[0]), row[1])
	}
	return w.Flush()
}
