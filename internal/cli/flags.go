package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/cityforest/pkg/config"
	"github.com/matzehuels/cityforest/pkg/pipeline"
)

// runFlags holds the flags shared by every command that builds a network.
// Flags given on the command line override values from --config.
type runFlags struct {
	config    string
	cities    string
	regions   string
	adjacency string
	limit     int
	dropUnset bool
	start     string
	maxDegree int
	bridge    bool
	spanning  bool
	expand    float64
	noCache   bool
	refresh   bool
}

// register adds the flags to cmd.
func (f *runFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.config, "config", "c", "", "configuration file (.toml, .yaml)")
	fs.StringVar(&f.cities, "cities", "", "cities CSV file (.csv, .csv.gz, .csv.zst)")
	fs.StringVar(&f.regions, "regions", "", "region codes file")
	fs.StringVar(&f.adjacency, "adjacency", "", "region adjacency file")
	fs.IntVar(&f.limit, "limit", 0, "load at most this many cities (0 = all)")
	fs.BoolVar(&f.dropUnset, "drop-unset", false, "skip cities without coordinates")
	fs.StringVarP(&f.start, "start", "s", "", "city to grow the forest from")
	fs.IntVar(&f.maxDegree, "max-degree", config.DefaultMaxDegree, "maximum connections per city")
	fs.BoolVar(&f.bridge, "bridge", false, "link every city to its nearest non-neighbor afterwards")
	fs.BoolVar(&f.spanning, "spanning", false, "connect all cities into one minimum spanning tree instead of the forest")
	fs.Float64Var(&f.expand, "expand", 0, "push cities this many miles outward for drawing")
	fs.BoolVar(&f.noCache, "no-cache", false, "disable caching")
	fs.BoolVar(&f.refresh, "refresh", false, "ignore cached results and rebuild")

	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = cmd.MarkFlagFilename("cities", "csv", "gz", "zst")
}

// outputFlags holds the flags of commands that write artifacts.
type outputFlags struct {
	formats    string
	dir        string
	labels     bool
	weights    bool
	metricsOut string
}

// register adds the flags to cmd.
func (f *outputFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.StringVarP(&f.formats, "format", "f", "", "output format(s): json (default), dot, svg (comma-separated)")
	fs.StringVarP(&f.dir, "output", "o", "", "output directory")
	fs.BoolVar(&f.labels, "labels", false, "label cities in DOT and SVG output")
	fs.BoolVar(&f.weights, "weights", false, "label connections with their length in miles")
	fs.StringVar(&f.metricsOut, "metrics-out", "", "write Prometheus metrics to this textfile")

	_ = cmd.MarkFlagDirname("output")
}

// apply copies the flags that were set into cfg.
func (f *outputFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	changed := cmd.Flags().Changed
	if changed("format") {
		cfg.Output.Formats = parseFormats(f.formats)
	}
	if changed("output") {
		cfg.Output.Dir = f.dir
	}
	if changed("labels") {
		cfg.Output.Labels = f.labels
	}
	if changed("weights") {
		cfg.Output.Weights = f.weights
	}
	if changed("metrics-out") {
		cfg.Output.Metrics = f.metricsOut
	}
}

// options merges the configuration file with the flags that were set.
// out may be nil for commands that write no artifacts.
func (f *runFlags) options(cmd *cobra.Command, out *outputFlags) (pipeline.Options, error) {
	var cfg config.Config
	if f.config != "" {
		loaded, err := config.Load(f.config)
		if err != nil {
			return pipeline.Options{}, err
		}
		cfg = *loaded
	}

	changed := cmd.Flags().Changed
	if changed("cities") {
		cfg.Input.Cities = f.cities
	}
	if changed("regions") {
		cfg.Input.Regions = f.regions
	}
	if changed("adjacency") {
		cfg.Input.Adjacency = f.adjacency
	}
	if changed("limit") {
		cfg.Input.Limit = f.limit
	}
	if changed("drop-unset") {
		cfg.Input.DropUnset = f.dropUnset
	}
	if changed("start") {
		cfg.Forest.Start = f.start
	}
	if changed("max-degree") {
		cfg.Forest.MaxDegree = f.maxDegree
	}
	if changed("bridge") {
		cfg.Forest.Bridge = f.bridge
	}
	if changed("spanning") {
		cfg.Forest.Spanning = f.spanning
	}
	if changed("expand") {
		cfg.Forest.Expand = f.expand
	}
	if f.noCache {
		cfg.Cache.Disabled = true
	}
	if out != nil {
		out.apply(cmd, &cfg)
	}

	opts := pipeline.Options{Config: cfg, Refresh: f.refresh}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return pipeline.Options{}, err
	}
	return opts, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	var formats []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			formats = append(formats, f)
		}
	}
	return formats
}
