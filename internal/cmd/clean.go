package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// CleanCmd deletes every path in the artifact set
type CleanCmd struct {
	NoWait bool `help:"Delete without waiting for the artifact set to stop changing"`
}

// Run executes the clean command
func (c *CleanCmd) Run(cli *CLI) error {
	ctx := context.Background()
	processes := cli.Container.Processes

	if !c.NoWait {
		if err := processes.WaitForQuiescence(ctx); err != nil {
			logging.Logger.Warn("Artifacts still changing before delete", "error", err)
		}
	}

	present := 0
	for _, p := range processes.ArtifactPaths(ctx) {
		if _, err := os.Lstat(p); err == nil {
			present++
		}
	}
	if err := processes.DeleteAllInformation(ctx); err != nil {
		return err
	}

	fmt.Printf("Removed %d artifact path(s)\n", present)
	return nil
}
