// Package cli provides a command-line interface for pairid binding
// manifests.
//
// The CLI replays a YAML manifest of form-control binding declarations
// through one registry, so authors of server-rendered forms can precompute
// the id/for attribute pairs their templates need. Users create their own
// binary and call cli.Run():
//
//	// cmd/pairid/main.go
//	package main
//
//	import "github.com/calque-ui/pairid/cli"
//
//	func main() {
//	    cli.Run()
//	}
//
// The CLI supports configuration through flags, environment variables,
// and an optional .pairid.yaml config file.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/calque-ui/pairid"
	"github.com/calque-ui/pairid/internal/token"
)

// App holds the CLI application state.
type App struct {
	config  *Config
	rootCmd *cobra.Command
}

// Run starts the CLI. This is the main entry point for users.
//
// Configuration priority:
//  1. Command-line flags (highest)
//  2. Environment variables (PAIRID_TOKEN_LENGTH, PAIRID_SEED)
//  3. Config file .pairid.yaml (lowest, requires --use-config)
func Run() {
	app := newApp()

	if err := app.rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *App {
	app := &App{
		config: &Config{},
	}

	app.rootCmd = &cobra.Command{
		Use:   "pairid",
		Short: "pairid manifest CLI",
		Long: `pairid manifest CLI - Precompute label/control id pairs.

Replays a YAML binding manifest through one id registry and reports the
attribute values each declaration receives.

Configuration priority:
  1. Command-line flags (highest)
  2. Environment variables (PAIRID_TOKEN_LENGTH, PAIRID_SEED)
  3. Config file .pairid.yaml (lowest, requires --use-config)

Examples:
  # Assign ids for every declaration in a manifest
  pairid assign form.yaml

  # Same assignments on every run
  pairid assign form.yaml --seed 42

  # Validate a manifest without emitting assignments
  pairid check form.yaml`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	app.addGlobalFlags()
	app.addCommands()

	return app
}

// addGlobalFlags adds flags that are available to all commands.
func (app *App) addGlobalFlags() {
	flags := app.rootCmd.PersistentFlags()

	flags.IntVar(&app.config.TokenLength, "token-length", DefaultTokenLength, "Length of generated tokens")
	flags.Uint64Var(&app.config.Seed, "seed", 0, "Token source seed for reproducible runs (0 = random)")
	flags.BoolVar(&app.config.UseConfig, "use-config", false, "Enable config file (.pairid.yaml)")
	flags.BoolVar(&app.config.JSON, "json", false, "Output in JSON format")
	flags.BoolVar(&app.config.Verbose, "verbose", false, "Log registry events to stderr")
}

// addCommands registers all CLI commands.
func (app *App) addCommands() {
	app.rootCmd.AddCommand(
		app.assignCmd(),
		app.checkCmd(),
		app.versionCmd(),
	)
}

// newRegistry creates a registry configured from the current settings.
func (app *App) newRegistry() *pairid.Registry {
	opts := []pairid.Option{
		pairid.WithTokenLength(app.config.TokenLength),
	}

	if app.config.Seed != 0 {
		opts = append(opts, pairid.WithTokenSource(token.Seeded(app.config.Seed)))
	}

	if app.config.Verbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
		opts = append(opts, pairid.WithLogger(logger))
	}

	return pairid.New(opts...)
}
