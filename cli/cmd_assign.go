package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (app *App) assignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "assign <manifest>",
		Short: "Assign ids for a binding manifest",
		Long: `Assign ids for every declaration in a binding manifest.

The manifest's declarations are replayed in document order through one
registry, and each receives the attribute value a host binding layer would
write. The run fails on the first malformed declaration, overrun request
budget, or duplicate id claim.

Tokens are random per run; pass --seed (or PAIRID_SEED) to make runs
reproducible.

Output format:
  - Table format (default): human-readable table
  - JSON format (--json): machine-readable JSON output

Examples:
  # Assign ids and print the table
  pairid assign form.yaml

  # Reproducible assignments for a committed template
  pairid assign form.yaml --seed 42 --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}

			m, err := LoadManifest(args[0])
			if err != nil {
				return err
			}

			assignments, failures := replayManifest(m, app.newRegistry())
			if len(failures) > 0 {
				f := failures[0]
				return fmt.Errorf("control %d (%s): %s", f.Index, f.Element, f.Err)
			}

			if app.config.JSON {
				return app.outputAssignJSON(assignments)
			}
			return app.outputAssignTable(assignments)
		},
	}
}

func (app *App) outputAssignTable(assignments []Assignment) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Element", "Attr", "Value"})

	for _, a := range assignments {
		if err := table.Append([]string{a.Element, a.Attr, a.Value}); err != nil {
			return err
		}
	}

	if err := table.Render(); err != nil {
		return err
	}

	fmt.Printf("\nSummary: %d assignments\n", len(assignments))
	return nil
}

func (app *App) outputAssignJSON(assignments []Assignment) error {
	output := struct {
		Assignments []Assignment `json:"assignments"`
		Summary     struct {
			Total int `json:"total"`
		} `json:"summary"`
	}{
		Assignments: assignments,
	}

	output.Summary.Total = len(assignments)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
