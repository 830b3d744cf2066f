package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/internal/server"
	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/pipeline"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		run     runFlags
		addr    string
		labels  bool
		weights bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Build the forest once and serve it over HTTP",
		Long: `Build (or load from cache) the forest and serve it read-only.

Routes: /healthz, /version, /network.json, /network.dot, /network.svg,
/stats, /vertices/{name} and /metrics.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := run.options(cmd, nil)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				opts.Server.Addr = addr
			}
			if cmd.Flags().Changed("labels") {
				opts.Output.Labels = labels
			}
			if cmd.Flags().Changed("weights") {
				opts.Output.Weights = weights
			}
			return c.runServe(cmd.Context(), opts)
		},
	}

	run.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default "+`":8080"`+")")
	cmd.Flags().BoolVar(&labels, "labels", false, "label cities in DOT and SVG output")
	cmd.Flags().BoolVar(&weights, "weights", false, "label connections with their length in miles")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts pipeline.Options) error {
	collector, err := startMetrics()
	if err != nil {
		return err
	}
	defer collector.stop()

	runner := c.newRunner(opts.Cache)
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}
	printSuccess("Serving forest grown from %s", StyleHighlight.Render(opts.Forest.Start))
	printStats(result.Summary, result.CacheInfo.NetworkHit)

	srv := server.New(result, server.Options{
		Addr:    opts.Server.Addr,
		Logger:  c.Logger,
		Metrics: collector.Handler(),
		DOT:     export.DOTOptions{Labels: opts.Output.Labels, Weights: opts.Output.Weights},
	})
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return ctx.Err()
}
