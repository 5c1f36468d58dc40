package cmd

import (
	"context"
	"fmt"
)

// KillCmd terminates every managed process, including ones left by earlier runs
type KillCmd struct{}

// Run executes the kill command
func (k *KillCmd) Run(cli *CLI) error {
	if err := cli.Container.Processes.KillAll(context.Background()); err != nil {
		return err
	}
	fmt.Println("All managed processes terminated")
	return nil
}
