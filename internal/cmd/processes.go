package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/vanshika-srivastava/coretest/internal/adapters/process"
	"github.com/vanshika-srivastava/coretest/internal/theme"
)

// ProcessesCmd lists the managed process set
type ProcessesCmd struct {
	Format string `help:"Output format: table or json" enum:"table,json" default:"table"`
}

type processOutput struct {
	Alive     bool      `json:"alive"`
	Command   []string  `json:"command"`
	Dir       string    `json:"dir"`
	ID        string    `json:"id"`
	PGID      int       `json:"pgid"`
	PID       int       `json:"pid"`
	StartedAt time.Time `json:"started_at"`
}

// Run executes the processes command
func (p *ProcessesCmd) Run(cli *CLI) error {
	statuses, err := cli.Container.Processes.Status(context.Background())
	if err != nil {
		return fmt.Errorf("failed to list processes: %w", err)
	}

	if p.Format == "json" {
		return p.outputJSON(statuses)
	}
	return p.outputTable(statuses)
}

func (p *ProcessesCmd) outputJSON(statuses []process.Status) error {
	output := make([]processOutput, 0, len(statuses))
	for _, s := range statuses {
		output = append(output, processOutput{
			Alive:     s.Alive,
			Command:   s.Record.Command,
			Dir:       s.Record.Dir,
			ID:        string(s.Record.ID),
			PGID:      s.Record.PGID,
			PID:       s.Record.PID,
			StartedAt: s.Record.StartedAt,
		})
	}

	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func (p *ProcessesCmd) outputTable(statuses []process.Status) error {
	if len(statuses) == 0 {
		fmt.Println(theme.MutedStyle.Render("No managed processes"))
		return nil
	}

	fmt.Println(theme.TitleStyle.Render(fmt.Sprintf("Managed processes (%d)", len(statuses))))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, theme.HeaderStyle.Render("ID")+"\t"+
		theme.HeaderStyle.Render("PID")+"\t"+
		theme.HeaderStyle.Render("State")+"\t"+
		theme.HeaderStyle.Render("Started")+"\t"+
		theme.HeaderStyle.Render("Command"))

	for _, s := range statuses {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\t%s\n",
			s.Record.ID,
			s.Record.PID,
			theme.ProcessState(s.Alive),
			s.Record.StartedAt.Local().Format(time.DateTime),
			s.Record.CommandLine())
	}

	return w.Flush()
}
