package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/calque-ui/pairid"
)

// UnusedBudget reports a prefixed entry whose declared count was not fully
// consumed by the manifest.
type UnusedBudget struct {
	Prefix    string `json:"prefix"`
	Remaining int    `json:"remaining"`
}

// checkReport is everything one dry run of a manifest turns up.
type checkReport struct {
	Controls int            `json:"controls"`
	Assigned int            `json:"assigned"`
	Failures []ControlError `json:"failures,omitempty"`
	Unused   []UnusedBudget `json:"unused,omitempty"`
}

func (app *App) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <manifest>",
		Short: "Validate a binding manifest",
		Long: `Validate a binding manifest without emitting assignments (dry-run mode).

Unlike assign, check keeps going past failing declarations so a single run
reports every problem: malformed declarations, overrun request budgets, and
duplicate id claims. It also flags prefixes whose declared count the manifest
never fully consumes, which usually means a label is missing.

The command exits non-zero when any declaration fails.

Examples:
  # Validate a manifest
  pairid check form.yaml

  # JSON report for CI
  pairid check form.yaml --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.loadConfig(); err != nil {
				return err
			}

			m, err := LoadManifest(args[0])
			if err != nil {
				return err
			}

			reg := app.newRegistry()
			assignments, failures := replayManifest(m, reg)

			report := checkReport{
				Controls: len(m.Controls),
				Assigned: len(assignments),
				Failures: failures,
				Unused:   unusedBudgets(reg),
			}

			if app.config.JSON {
				if err := app.outputCheckJSON(report); err != nil {
					return err
				}
			} else {
				app.outputCheckText(report)
			}

			if len(report.Failures) > 0 {
				return fmt.Errorf("%d of %d controls failed", len(report.Failures), report.Controls)
			}
			return nil
		},
	}
}

// unusedBudgets collects prefixed entries with budget left after the replay.
// The default slot is skipped: it never declared a count to hold it to.
func unusedBudgets(reg *pairid.Registry) []UnusedBudget {
	var unused []UnusedBudget
	for _, s := range reg.Snapshot() {
		if s.Prefix == "" || s.Remaining <= 0 {
			continue
		}
		unused = append(unused, UnusedBudget{Prefix: s.Prefix, Remaining: s.Remaining})
	}
	return unused
}

func (app *App) outputCheckText(report checkReport) {
	for _, f := range report.Failures {
		fmt.Printf("✗ control %d (%s): %s\n", f.Index, f.Element, f.Err)
	}
	for _, u := range report.Unused {
		fmt.Printf("⚠ prefix %q has %d unused requests\n", u.Prefix, u.Remaining)
	}

	fmt.Printf("Checked %d controls: %d assigned, %d failed", report.Controls, report.Assigned, len(report.Failures))
	if len(report.Unused) > 0 {
		fmt.Printf(", %d prefixes with unused budget", len(report.Unused))
	}
	fmt.Println()
}

func (app *App) outputCheckJSON(report checkReport) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
