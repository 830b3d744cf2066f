package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/loader"
	"github.com/matzehuels/cityforest/pkg/stats"
)

// statsCommand creates the stats command.
func (c *CLI) statsCommand() *cobra.Command {
	var (
		run    runFlags
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "stats [forest.json]",
		Short: "Summarize a network",
		Long: `Summarize a network: city and connection counts, components, the
degree distribution and connection lengths.

With a file argument the network is read from a JSON file written by 'build';
otherwise it is built (or loaded from cache) from the input flags.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				summary stats.Summary
				err     error
			)
			if len(args) == 1 {
				summary, err = summarizeFile(args[0])
			} else {
				summary, err = c.summarizeBuild(cmd, &run)
			}
			if err != nil {
				return err
			}
			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(summary)
			}
			printSummary(summary)
			return nil
		},
	}

	run.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the summary as JSON")
	return cmd
}

// summarizeFile reads a network written by build.
func summarizeFile(path string) (stats.Summary, error) {
	rc, err := loader.Open(path)
	if err != nil {
		return stats.Summary{}, err
	}
	defer rc.Close()

	net, err := export.ReadJSON(rc)
	if err != nil {
		return stats.Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	g, err := net.Graph()
	if err != nil {
		return stats.Summary{}, fmt.Errorf("read %s: %w", path, err)
	}
	return stats.Summarize(g), nil
}

func (c *CLI) summarizeBuild(cmd *cobra.Command, run *runFlags) (stats.Summary, error) {
	opts, err := run.options(cmd, nil)
	if err != nil {
		return stats.Summary{}, err
	}

	runner := c.newRunner(opts.Cache)
	defer runner.Cache.Close()

	result, err := runner.Execute(cmd.Context(), opts)
	if err != nil {
		return stats.Summary{}, err
	}
	return result.Summary, nil
}

// printSummary prints s as aligned key-value lines.
func printSummary(s stats.Summary) {
	printKeyValue("Cities", StyleNumber.Render(fmt.Sprint(s.Vertices)))
	printKeyValue("Connections", StyleNumber.Render(fmt.Sprint(s.Connections)))
	printKeyValue("Finalized", StyleNumber.Render(fmt.Sprint(s.Finalized)))
	printKeyValue("Components", fmt.Sprintf("%s %s",
		StyleNumber.Render(fmt.Sprint(s.Components)),
		StyleDim.Render(fmt.Sprintf("(largest %d)", s.Largest))))
	if len(s.Isolated) > 0 {
		printKeyValue("Isolated", StyleWarning.Render(fmt.Sprint(len(s.Isolated))))
	}

	degrees := make([]string, len(s.Degrees))
	for d, n := range s.Degrees {
		degrees[d] = fmt.Sprintf("%d:%d", d, n)
	}
	printKeyValue("Degrees", strings.Join(degrees, " "))

	if s.Connections > 0 {
		w := s.Weights
		printKeyValue("Total", formatMiles(w.Total))
		printKeyValue("Length", fmt.Sprintf("min %.1f  median %.1f  mean %.1f  max %.1f  sd %.1f",
			w.Min, w.Median, w.Mean, w.Max, w.StdDev))
	}
	printKeyValue("Center", s.Center.String())
}
