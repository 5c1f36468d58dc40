package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"

	"github.com/vanshika-srivastava/coretest/internal/cmd"
	"github.com/vanshika-srivastava/coretest/internal/config"
	"github.com/vanshika-srivastava/coretest/version"
)

func main() {
	// Settings must be in place before parsing, AfterApply reads them
	settings, err := config.LoadSettings()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		settings = &config.Settings{}
	}

	var cli cmd.CLI
	cli.SetSettings(settings)

	ctx := kong.Parse(&cli,
		kong.Name("coretest"),
		kong.Description(version.Tagline),
		kong.UsageOnError(),
		kong.Vars{"version": version.Info()},
	)

	runErr := ctx.Run()
	// Close first so a captured stderr is restored before reporting
	if err := cli.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
