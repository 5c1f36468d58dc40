package cmd

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vanshika-srivastava/coretest/internal/config"
	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// CLI represents the command-line interface structure
type CLI struct {
	Version     kong.VersionFlag `help:"Show version information"`
	Debug       bool             `help:"Enable debug logging to file" short:"d"`
	DebugFile   string           `help:"Custom path for debug log file (disables automatic cleanup)"`
	InstallDir  string           `help:"Server install dir holding config.yaml and the artifact dirs" env:"CORETEST_INSTALL_DIR" type:"path"`
	MaxLogFiles int              `help:"Maximum number of log files to keep (0 = unlimited)" default:"1000"`

	Clean     CleanCmd     `cmd:"clean" help:"Wait for artifacts to settle, then delete them"`
	Config    ConfigCmd    `cmd:"config" help:"Read or rewrite keys of the live config"`
	Kill      KillCmd      `cmd:"kill" help:"Terminate every managed process"`
	Processes ProcessesCmd `cmd:"processes" aliases:"ps" help:"List managed processes"`
	Request   RequestCmd   `cmd:"request" help:"Send a JSON request to the running server"`
	Reset     ResetCmd     `cmd:"reset" help:"Restore the config from the template and clean up processes and artifacts"`
	Settings  SettingsCmd  `cmd:"settings" help:"Show settings file location and available options"`
	Spawn     SpawnCmd     `cmd:"spawn" help:"Start a managed process"`
	Teardown  TeardownCmd  `cmd:"teardown" help:"Delete the live config and artifact dirs after a test run"`
	Track     TrackCmd     `cmd:"track" help:"Add a path to the artifact set"`

	// Internal fields (not flags)
	Container *Container       `kong:"-"`
	settings  *config.Settings `kong:"-"`
}

// SetSettings sets the settings on the CLI struct
func (c *CLI) SetSettings(settings *config.Settings) {
	c.settings = settings
}

// AfterApply initializes logging after CLI parsing and applies settings
func (c *CLI) AfterApply() error {
	// CLI flags > env vars > settings.yaml > defaults.
	// A settings value only applies while the flag is at its default and no env var is set.
	if c.settings == nil {
		c.settings = &config.Settings{}
	}

	if c.MaxLogFiles == logging.DefaultMaxLogFiles {
		if _, hasEnv := os.LookupEnv("CORETEST_MAX_LOG_FILES"); !hasEnv {
			if c.settings.MaxLogFiles != nil {
				c.MaxLogFiles = *c.settings.MaxLogFiles
			}
		}
	}

	if !c.Debug {
		if _, hasEnv := os.LookupEnv("CORETEST_DEBUG"); !hasEnv {
			if c.settings.Debug != nil && *c.settings.Debug {
				c.Debug = true
			}
		}
	}

	// kong already resolved the flag against CORETEST_INSTALL_DIR
	if c.InstallDir != "" {
		c.settings.InstallDir = c.InstallDir
	}

	logFilePath, err := logging.Initialize(c.Debug, c.DebugFile, c.MaxLogFiles)
	if err != nil {
		return err
	}

	// Children spawned through the CLI append to the same log file
	if c.Debug || c.DebugFile != "" {
		os.Setenv("CORETEST_DEBUG", "1")
		if logFilePath != "" {
			os.Setenv("CORETEST_DEBUG_FILE", logFilePath)
		}
	}
	if c.MaxLogFiles != logging.DefaultMaxLogFiles {
		os.Setenv("CORETEST_MAX_LOG_FILES", fmt.Sprintf("%d", c.MaxLogFiles))
	}

	resolved, err := c.settings.Resolve()
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	// Container is created after logging so the gorm logger bridge has a target
	container, err := NewContainer(resolved)
	if err != nil {
		return fmt.Errorf("failed to initialize container: %w", err)
	}
	c.Container = container

	return nil
}

// Close closes all resources held by the CLI
func (c *CLI) Close() error {
	if c.Container != nil {
		return c.Container.Close()
	}
	return nil
}
