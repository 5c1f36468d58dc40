package cmd

import (
	"context"
	"fmt"

	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// TeardownCmd kills what is left and removes the live config and artifact dirs
type TeardownCmd struct{}

// Run executes the teardown command
func (t *TeardownCmd) Run(cli *CLI) error {
	ctx := context.Background()

	if err := cli.Container.Processes.KillAll(ctx); err != nil {
		logging.Logger.Warn("KillAll during teardown failed", "error", err)
	}
	cli.Container.ResetService.Teardown(ctx)

	fmt.Println("Environment torn down")
	return nil
}
