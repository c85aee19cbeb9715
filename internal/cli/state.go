package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/example/marina/internal/core/access"
	"github.com/example/marina/internal/wire"
)

// FleetCmd returns the fleet listing command.
func FleetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fleet",
		Short: "List registered vessels",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.StateAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			minLOA, _ := cmd.Flags().GetFloat64("min-loa")
			return adapter.Fleet(cmd.Context(), minLOA)
		},
	}
	cmd.Flags().Float64("min-loa", 0, "only vessels longer than this (meters)")
	return cmd
}

// LedgerCmd returns the ledger listing command.
func LedgerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ledger",
		Short: "Show vessel balances, debtors first",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.StateAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Ledger(cmd.Context())
		},
	}
}

// JobsCmd returns the maintenance job listing command.
func JobsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jobs",
		Short: "List maintenance jobs",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.StateAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			return adapter.Jobs(cmd.Context())
		},
	}
}

// LogCmd returns the audit log command.
func LogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show recent console requests",
		Long:  "Show the audit trail of processed console requests, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			adapter, err := wire.StateAdapter(cmd.OutOrStdout())
			if err != nil {
				return err
			}
			limit, _ := cmd.Flags().GetInt("limit")
			if limit <= 0 {
				limit = 50
			}
			return adapter.Audit(cmd.Context(), limit)
		},
	}
	cmd.Flags().IntP("limit", "n", 50, "number of requests to show")
	return cmd
}

// PolicyCmd returns the access policy command.
func PolicyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "policy",
		Short: "Show the minimum role of every operation",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack()
			if err != nil {
				return err
			}
			return printPolicy(cmd.OutOrStdout(), s.Policy)
		},
	}
}

func printPolicy(out io.Writer, policy access.Policy) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "OPERATION\tMINIMUM ROLE")
	for _, op := range access.Operations() {
		fmt.Fprintf(w, "%s\t%s\n", op, policy.MinRole(op))
	}
	return w.Flush()
}
