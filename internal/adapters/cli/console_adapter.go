// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle output formatting but delegate
// business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/marina/internal/core/effects"
	"github.com/example/marina/internal/models"
	"github.com/example/marina/internal/ports/primary"
)

// ConsoleAdapter renders console results on a terminal.
type ConsoleAdapter struct {
	service    primary.ConsoleService
	out        io.Writer
	showTraces bool
}

// NewConsoleAdapter creates a new ConsoleAdapter with the given service.
func NewConsoleAdapter(service primary.ConsoleService, out io.Writer, showTraces bool) *ConsoleAdapter {
	return &ConsoleAdapter{
		service:    service,
		out:        out,
		showTraces: showTraces,
	}
}

// Ask sends one command and prints the reply. Chat fallback replies are
// streamed as they arrive.
func (a *ConsoleAdapter) Ask(ctx context.Context, user models.UserProfile, text string) error {
	streamed := false
	res, err := a.service.Handle(ctx, primary.Request{Text: text, User: user}, func(chunk string) {
		streamed = true
		fmt.Fprint(a.out, chunk)
	})
	if res != nil && a.showTraces {
		a.renderTraces(res.Traces)
	}
	if err != nil {
		return err
	}

	if streamed {
		fmt.Fprintln(a.out)
	} else {
		a.renderText(res)
	}

	for i, c := range res.Citations {
		title := c.Title
		if title == "" {
			title = c.URI
		}
		fmt.Fprintf(a.out, "  [%d] %s %s\n", i+1, title, color.New(color.FgHiBlack).Sprint(c.URI))
	}
	if res.Applied > 0 {
		fmt.Fprintln(a.out, color.New(color.FgHiBlack).Sprintf("(%d state change(s) applied)", res.Applied))
	}
	return nil
}

func (a *ConsoleAdapter) renderText(res *primary.ConsoleResult) {
	switch {
	case res.Denied:
		fmt.Fprintln(a.out, color.New(color.FgRed).Sprint("✗ "+res.Text))
	case res.Remote:
		fmt.Fprintln(a.out, color.New(color.FgCyan).Sprint("[remote] ")+res.Text)
	default:
		fmt.Fprintln(a.out, res.Text)
	}
}

func (a *ConsoleAdapter) renderTraces(traces []effects.Trace) {
	for _, t := range traces {
		fmt.Fprintf(a.out, "%s %s %s\n",
			color.New(color.FgHiBlack).Sprint(t.Timestamp.Format("15:04:05")),
			stepLabel(t.Step),
			color.New(color.FgHiBlack).Sprintf("%s/%s", t.Node, strings.ToLower(string(t.Persona))),
		)
		fmt.Fprintf(a.out, "    %s\n", t.Content)
	}
	if len(traces) > 0 {
		fmt.Fprintln(a.out, rule)
	}
}

func stepLabel(step effects.Step) string {
	label := fmt.Sprintf("%-14s", step)
	switch step {
	case effects.StepError:
		return color.New(color.FgRed, color.Bold).Sprint(label)
	case effects.StepRouting:
		return color.New(color.FgHiMagenta).Sprint(label)
	case effects.StepThinking, effects.StepPlanning, effects.StepAnalysis:
		return color.New(color.FgYellow).Sprint(label)
	case effects.StepToolExecution, effects.StepCodeOutput:
		return color.New(color.FgCyan).Sprint(label)
	case effects.StepOutput, effects.StepFinalAnswer:
		return color.New(color.FgHiGreen).Sprint(label)
	}
	return color.New(color.FgWhite).Sprint(label)
}
