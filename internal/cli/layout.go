package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/backlogtree/pkg/layout"
	"github.com/matzehuels/backlogtree/pkg/pipeline"
)

// layoutCommand creates the layout command for computing backlog tree layouts.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		summary bool
		strict  bool
		cardW   float64
		cardH   float64
	)

	cmd := &cobra.Command{
		Use:   "layout [backlog.json]",
		Short: "Compute card positions and connectors for a backlog",
		Long: `Compute card positions and connectors for a backlog.

The layout command reads a backlog file (JSON or YAML) and writes the computed
layout as JSON: one entry per card with its depth, span and pixel position,
plus the SVG path of every parent-child connector.

Results are cached, so repeated runs over an unchanged backlog are instant.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := c.baseOptions()
			opts.Strict = strict
			if cmd.Flags().Changed("card-width") {
				opts.Layout.CardWidth = cardW
			}
			if cmd.Flags().Changed("card-height") {
				opts.Layout.CardHeight = cardH
			}
			return c.runLayout(cmd.Context(), args[0], opts, output, noCache, summary)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&summary, "summary", false, "print a table of cards instead of JSON")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on orphans, duplicates and cycles")
	cmd.Flags().Float64Var(&cardW, "card-width", 0, "card width in pixels (default from config)")
	cmd.Flags().Float64Var(&cardH, "card-height", 0, "card height in pixels (default from config)")

	return cmd
}

// runLayout loads the backlog, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache, summary bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	items, err := pipeline.Parse(ctx, input)
	if err != nil {
		return err
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	l, cached, err := runner.GenerateLayoutWithCacheInfo(ctx, items, opts)
	if err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	prog.done("layout computed", "cards", len(l.Nodes), "cached", cached)

	if summary {
		fmt.Fprintln(out, layoutTable(l))
		printStats(len(l.Nodes), len(l.Edges), cached)
		return nil
	}

	if output == "" || output == "-" {
		return layout.Write(os.Stdout, l)
	}
	if err := layout.WriteFile(l, output); err != nil {
		return err
	}
	printSuccess("Layout computed")
	printFile(output)
	printStats(len(l.Nodes), len(l.Edges), cached)
	return nil
}

// stderrIsTerminal reports whether interactive decoration is appropriate.
func stderrIsTerminal() bool {
	fi, err := os.Stderr.Stat()
	return err == nil && fi.Mode()&os.ModeCharDevice != 0
}
