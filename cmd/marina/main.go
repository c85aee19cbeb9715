package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/marina/internal/cli"
	"github.com/example/marina/internal/version"
)

func main() {
	rootCmd := &cobra.Command{
		Use:     "marina",
		Short:   "Ada - marina operations console",
		Version: version.String(),
		Long: `Ada is an operator console for a yacht marina. Natural-language commands
are classified, checked against the access policy and dispatched to the
finance, fleet, legal, technical, security and customer skills.`,
		SilenceUsage: true,
	}
	cli.AddGlobalFlags(rootCmd)

	// Console
	rootCmd.AddCommand(cli.AskCmd())
	rootCmd.AddCommand(cli.ConsoleCmd())
	rootCmd.AddCommand(cli.SettleCmd())

	// State views
	rootCmd.AddCommand(cli.FleetCmd())
	rootCmd.AddCommand(cli.LedgerCmd())
	rootCmd.AddCommand(cli.JobsCmd())
	rootCmd.AddCommand(cli.LogCmd())
	rootCmd.AddCommand(cli.PolicyCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
