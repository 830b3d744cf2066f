package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/pipeline"
)

// outputBase is the file name, without extension, of written artifacts.
const outputBase = "forest"

// buildCommand creates the build command.
func (c *CLI) buildCommand() *cobra.Command {
	var (
		run runFlags
		out outputFlags
	)

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build the nearest-neighbor forest and write it out",
		Long: `Build the nearest-neighbor forest from a city data set.

Every city is connected to at most --max-degree nearest cities. Candidates are
searched in the city's own region first; when the region runs out, bordering
regions are searched breadth-first. The forest is written to the output
directory as forest.json, forest.dot and/or forest.svg.

Built networks are cached locally; a rerun with the same inputs and options
skips the build.`,
		Example: `  cityforest build --cities cities.csv.gz --regions states.txt \
    --adjacency adjacency.txt --start Lebanon -f json,svg -o out
  cityforest build -c cityforest.toml --refresh`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := run.options(cmd, &out)
			if err != nil {
				return err
			}
			return c.runBuild(cmd.Context(), opts)
		},
	}

	run.register(cmd)
	out.register(cmd)
	return cmd
}

// runBuild executes the pipeline and writes the artifacts.
func (c *CLI) runBuild(ctx context.Context, opts pipeline.Options) error {
	var collector *metricsSink
	if opts.Output.Metrics != "" {
		var err error
		if collector, err = startMetrics(); err != nil {
			return err
		}
		defer collector.stop()
	}

	runner := c.newRunner(opts.Cache)
	defer runner.Cache.Close()

	spinner := c.startSpinner(ctx, fmt.Sprintf("Growing forest from %s...", opts.Forest.Start))

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Build failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	paths, err := pipeline.WriteArtifacts(opts.Output.Dir, outputBase, result.Artifacts, opts.Output.Formats)
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	shape := "Forest"
	if opts.Forest.Spanning {
		shape = "Spanning tree"
	}
	printSuccess("%s grown from %s", shape, StyleHighlight.Render(opts.Forest.Start))
	for _, p := range paths {
		printFile(p)
	}
	printStats(result.Summary, result.CacheInfo.NetworkHit)
	if b := result.Build; b != nil && len(b.Saturated) > 0 {
		printWarning("%d cities have fewer than %d connections", len(b.Saturated), opts.Forest.MaxDegree)
	}

	if collector != nil {
		if err := collector.WriteTextfile(opts.Output.Metrics); err != nil {
			return fmt.Errorf("write metrics: %w", err)
		}
		printFile(opts.Output.Metrics)
	}

	printNewline()
	printNextStep("Inspect a city", appName+" search <city> "+inputArgs(opts))
	return nil
}

// inputArgs renders the input flags of opts for a suggested command line.
func inputArgs(opts pipeline.Options) string {
	s := "--cities " + opts.Input.Cities
	if opts.Input.Regions != "" {
		s += " --regions " + opts.Input.Regions
	}
	if opts.Input.Adjacency != "" {
		s += " --adjacency " + opts.Input.Adjacency
	}
	return s + " --start " + quoteArg(opts.Forest.Start)
}

func quoteArg(s string) string {
	for _, r := range s {
		if r == ' ' || r == '\'' || r == '"' {
			return fmt.Sprintf("%q", s)
		}
	}
	return s
}
