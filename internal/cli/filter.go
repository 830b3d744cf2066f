package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/loader"
)

// filterCommand creates the filter command.
func (c *CLI) filterCommand() *cobra.Command {
	var (
		output    string
		dropUnset bool
	)

	cmd := &cobra.Command{
		Use:   "filter <cities.csv>",
		Short: "Remove duplicate cities from a CSV file",
		Long: `Remove cities whose name was already seen, keeping the first record of
each name, and write the result as CSV. With --drop-unset, records with a
zero latitude or longitude are dropped as well.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFilter(cmd.Context(), args[0], output, dropUnset)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: stdout)")
	cmd.Flags().BoolVar(&dropUnset, "drop-unset", false, "drop cities without coordinates")
	return cmd
}

func (c *CLI) runFilter(ctx context.Context, input, output string, dropUnset bool) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	rc, err := loader.Open(input)
	if err != nil {
		return err
	}
	defer rc.Close()

	recs, err := loader.ReadCities(rc)
	if err != nil {
		return fmt.Errorf("read %s: %w", input, err)
	}
	kept := loader.Dedupe(recs, dropUnset)

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}
	if err := loader.WriteCities(w, kept); err != nil {
		return fmt.Errorf("write cities: %w", err)
	}

	prog.done(fmt.Sprintf("Kept %d of %d cities", len(kept), len(recs)))
	if output != "" {
		printFile(output)
	}
	return nil
}
