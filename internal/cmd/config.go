package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/vanshika-srivastava/coretest/internal/logging"
	"github.com/vanshika-srivastava/coretest/internal/theme"
)

// ConfigCmd reads and rewrites single keys of the live config
type ConfigCmd struct {
	Comment ConfigCommentCmd `cmd:"comment" help:"Comment a key out (key line becomes '# key:')"`
	Get     ConfigGetCmd     `cmd:"get" help:"Show a key's value and whether it is active or commented"`
	Set     ConfigSetCmd     `cmd:"set" help:"Set a key (key line becomes 'key: value')"`
}

// ConfigGetCmd shows one key
type ConfigGetCmd struct {
	Format string `help:"Output format: text or json" enum:"text,json" default:"text"`
	Key    string `arg:"" help:"Config key"`
}

// ConfigSetCmd sets one key
type ConfigSetCmd struct {
	Key   string `arg:"" help:"Config key"`
	Value string `arg:"" help:"Value written after 'key: '"`
}

// ConfigCommentCmd comments one key out
type ConfigCommentCmd struct {
	Key string `arg:"" help:"Config key"`
}

// Run executes the get command
func (c *ConfigGetCmd) Run(cli *CLI) error {
	value, state, err := cli.Container.ConfigFile.Lookup(c.Key)
	if err != nil {
		return err
	}

	if c.Format == "json" {
		data, err := json.MarshalIndent(map[string]string{
			"key":   c.Key,
			"state": state.String(),
			"value": value,
		}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal JSON: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Printf("%s: %s (%s)\n", c.Key, theme.ValueStyle.Render(value), theme.LineState(state.String()))
	return nil
}

// Run executes the set command
func (c *ConfigSetCmd) Run(cli *CLI) error {
	logging.Logger.Debug("Executing config set command", "key", c.Key, "value", c.Value)

	if err := cli.Container.ConfigFile.SetValue(c.Key, c.Value); err != nil {
		return fmt.Errorf("failed to set %s: %w", c.Key, err)
	}
	fmt.Printf("%s: %s\n", c.Key, c.Value)
	return nil
}

// Run executes the comment command
func (c *ConfigCommentCmd) Run(cli *CLI) error {
	logging.Logger.Debug("Executing config comment command", "key", c.Key)

	if err := cli.Container.ConfigFile.CommentOut(c.Key); err != nil {
		return fmt.Errorf("failed to comment out %s: %w", c.Key, err)
	}
	fmt.Printf("# %s:\n", c.Key)
	return nil
}
