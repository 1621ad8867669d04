package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is the CLI version. Overridable at build time:
//
//	go build -ldflags "-X github.com/calque-ui/pairid/cli.Version=v1.2.3"
var Version = "dev"

func (app *App) versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the CLI version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("pairid version %s\n", Version)
			return nil
		},
	}
}
