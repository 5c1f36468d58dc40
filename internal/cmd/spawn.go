package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/vanshika-srivastava/coretest/internal/logging"
)

// SpawnCmd starts a process that later kill, reset and teardown calls will reap
type SpawnCmd struct {
	Command []string      `arg:"" passthrough:"" help:"Program and arguments to run"`
	Dir     string        `help:"Working directory (defaults to the install dir)" type:"path"`
	Timeout time.Duration `help:"Give up waiting after this long (0 = no limit)" default:"0s"`
	Wait    bool          `help:"Wait for the process to exit; its exit status is ignored" short:"w"`
}

// Run executes the spawn command
func (s *SpawnCmd) Run(cli *CLI) error {
	dir := s.Dir
	if dir == "" {
		dir = cli.Container.Settings.InstallDir
	}

	ctx := context.Background()
	handle, err := cli.Container.Processes.Spawn(ctx, s.Command, dir)
	if err != nil {
		return err
	}
	fmt.Printf("Spawned %s (pid %d)\n", handle.ID, handle.PID)

	if !s.Wait {
		return nil
	}

	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	logging.Logger.Debug("Waiting for spawned process", "id", handle.ID, "timeout", s.Timeout)
	if err := cli.Container.Processes.WaitAndDiscard(ctx, handle); err != nil {
		return fmt.Errorf("process %s still running: %w", handle.ID, err)
	}
	fmt.Printf("Process %s exited\n", handle.ID)
	return nil
}
