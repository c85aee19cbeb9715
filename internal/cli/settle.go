package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"

	"github.com/example/marina/internal/wire"
)

// SettlementCommand is the console command that runs the bank settlement.
const SettlementCommand = "run the daily settlement"

// SettleCmd returns the settlement command.
func SettleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settle",
		Short: "Reconcile the bank feed against the ledger",
		Long: `Run the daily bank settlement once, or on a cron schedule with --schedule.

Examples:
  marina settle
  marina settle --schedule "0 18 * * *"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack()
			if err != nil {
				return err
			}
			user, err := operator(s)
			if err != nil {
				return err
			}
			adapter, err := wire.ConsoleAdapter(cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}
			run := func(ctx context.Context) error {
				return adapter.Ask(ctx, user, SettlementCommand)
			}

			schedule, _ := cmd.Flags().GetString("schedule")
			if schedule == "" {
				return run(NewContext(user))
			}

			ctx, stop := signal.NotifyContext(NewContext(user), os.Interrupt, syscall.SIGTERM)
			defer stop()
			fmt.Fprintf(cmd.OutOrStdout(), "Settlement scheduled at %q. Press Ctrl-C to stop.\n", schedule)
			return runScheduled(ctx, schedule, func() {
				if err := run(ctx); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
				}
			})
		},
	}
	cmd.Flags().String("schedule", "", "cron expression (5 fields) for recurring settlement")
	return cmd
}

// runScheduled runs job on the cron schedule until ctx is cancelled.
func runScheduled(ctx context.Context, schedule string, job func()) error {
	c := cron.New()
	if _, err := c.AddFunc(schedule, job); err != nil {
		return fmt.Errorf("invalid schedule %q: %w", schedule, err)
	}
	c.Start()
	<-ctx.Done()
	<-c.Stop().Done()
	return nil
}
