package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/marina/internal/wire"
)

// AskCmd returns the ask command.
func AskCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ask [command...]",
		Short: "Send one command to the console",
		Long: `Send one natural-language command to the console and print the reply.

Examples:
  marina ask "S/Y Phisedelia arriving"
  marina ask --role CAPTAIN "M/Y Blue Horizon departing"
  marina ask --traces "list vessels longer than 20m"`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack()
			if err != nil {
				return err
			}
			user, err := operator(s)
			if err != nil {
				return err
			}
			traces, _ := cmd.Flags().GetBool("traces")
			adapter, err := wire.ConsoleAdapter(cmd.OutOrStdout(), traces)
			if err != nil {
				return err
			}
			return adapter.Ask(NewContext(user), user, strings.Join(args, " "))
		},
	}
	cmd.Flags().Bool("traces", false, "print the reasoning trace")
	return cmd
}

// ConsoleCmd returns the interactive console command.
func ConsoleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "console",
		Short: "Start an interactive console session",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := stack()
			if err != nil {
				return err
			}
			user, err := operator(s)
			if err != nil {
				return err
			}
			traces, _ := cmd.Flags().GetBool("traces")
			adapter, err := wire.ConsoleAdapter(cmd.OutOrStdout(), traces)
			if err != nil {
				return err
			}

			ctx := NewContext(user)
			fmt.Fprintf(cmd.OutOrStdout(), "Ada marina console. Signed in as %s (%s). Type 'exit' to leave.\n", user.Name, user.Role)
			return runREPL(ctx, os.Stdin, cmd.OutOrStdout(), func(ctx context.Context, line string) error {
				return adapter.Ask(ctx, user, line)
			})
		},
	}
	cmd.Flags().Bool("traces", true, "print the reasoning trace")
	return cmd
}

// runREPL reads commands line by line until EOF or "exit". A failed
// command is reported and the session continues.
func runREPL(ctx context.Context, in io.Reader, out io.Writer, ask func(context.Context, string) error) error {
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "ada> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		}
		if err := ask(ctx, line); err != nil {
			fmt.Fprintf(out, "Error: %v\n", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
}
