package loader

import (
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cityforest/pkg/graph"
)

// BuildOptions controls how records become vertices.
type BuildOptions struct {
	// Limit caps the number of vertices. Zero means no limit.
	Limit int
	// Logger receives warnings about skipped or incomplete records.
	Logger *log.Logger
}

// BuildGraph inserts one vertex per record, in order, named after the city
// and tagged with its state. Records repeating an already inserted city name
// are skipped. Records with a zero coordinate are inserted with a warning.
func BuildGraph(recs []Record, opts BuildOptions) (*graph.Graph, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	g := graph.New()
	skipped := 0
	for _, r := range recs {
		if opts.Limit > 0 && g.VertexCount() >= opts.Limit {
			break
		}
		if r.Lat == 0 || r.Lon == 0 {
			logger.Warn("city without coordinates", "city", r.City, "state", r.State)
		}

		_, err := g.AddVertex(r.City, r.State, r.Coord())
		switch {
		case errors.Is(err, graph.ErrDuplicateName):
			skipped++
		case err != nil:
			return nil, fmt.Errorf("add %q: %w", r.City, err)
		}
	}

	if skipped > 0 {
		logger.Debug("skipped duplicate cities", "count", skipped)
	}
	return g, nil
}
