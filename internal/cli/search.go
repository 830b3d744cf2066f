package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/forest"
	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/pipeline"
)

// searchCommand creates the search command.
func (c *CLI) searchCommand() *cobra.Command {
	var run runFlags

	cmd := &cobra.Command{
		Use:   "search <city>",
		Short: "Show a city and its connections",
		Long: `Build (or load from cache) the forest and print one city with its
connections. The name is matched ignoring case.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := run.options(cmd, nil)
			if err != nil {
				return err
			}
			return c.runSearch(cmd.Context(), opts, args[0])
		},
	}

	run.register(cmd)
	return cmd
}

func (c *CLI) runSearch(ctx context.Context, opts pipeline.Options, name string) error {
	runner := c.newRunner(opts.Cache)
	defer runner.Cache.Close()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		return err
	}

	v, ok := result.Graph.Search(name)
	if !ok {
		return fmt.Errorf("%w: %q", forest.ErrUnknownEntity, name)
	}
	printVertex(result.Graph, v)
	return nil
}

// printVertex prints v with one line per connection.
func printVertex(g *graph.Graph, v *graph.Vertex) {
	fmt.Println(StyleTitle.Render(v.Label()))
	printKeyValue("ID", StyleNumber.Render(fmt.Sprint(v.ID)))
	printKeyValue("Location", v.Loc.String())
	printKeyValue("Connections", StyleNumber.Render(fmt.Sprint(v.Degree())))
	for _, e := range v.Edges {
		to, _ := g.Vertex(e.To)
		printConnection(to.Label(), e.Weight, e.Tag)
	}
}
