package cmd

import (
	"context"
	"fmt"
)

// TrackCmd registers a path so later cleanups delete it
type TrackCmd struct {
	Path string `arg:"" help:"File or directory to delete on cleanup" type:"path"`
}

// Run executes the track command
func (t *TrackCmd) Run(cli *CLI) error {
	if err := cli.Container.Processes.TrackArtifact(context.Background(), t.Path); err != nil {
		return fmt.Errorf("failed to track %s: %w", t.Path, err)
	}
	fmt.Printf("Tracking %s\n", t.Path)
	return nil
}
