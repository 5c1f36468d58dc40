package cmd

import (
	"context"
	"fmt"

	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// ResetCmd runs the reset sequence once
type ResetCmd struct{}

// Run executes the reset command
func (r *ResetCmd) Run(cli *CLI) error {
	logging.Logger.Debug("Executing reset command", "install_dir", cli.Container.Settings.InstallDir)

	if err := cli.Container.ResetService.Reset(context.Background()); err != nil {
		return fmt.Errorf("reset failed: %w", err)
	}

	fmt.Printf("Environment reset (config: %s)\n", cli.Container.ConfigFile.Path())
	return nil
}
