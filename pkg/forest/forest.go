package forest

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/cityforest/pkg/graph"
	"github.com/matzehuels/cityforest/pkg/regions"
)

const (
	// DefaultMaxDegree is the connection limit per vertex.
	DefaultMaxDegree = 3

	// DefaultTag marks edges created by the builder.
	DefaultTag = "forest"

	// BridgeTag marks edges created by ConnectNearest.
	BridgeTag = "bridge"
)

var (
	// ErrUnknownEntity is returned by [Builder.Build] when the starting name
	// is not in the graph.
	ErrUnknownEntity = errors.New("forest: unknown starting entity")

	// ErrEmptyGraph is returned when building over a graph without vertices.
	ErrEmptyGraph = errors.New("forest: graph has no vertices")

	// ErrFinalized is returned by [Builder.Localize] for a vertex that has
	// already been finalized.
	ErrFinalized = errors.New("forest: vertex already finalized")
)

// Options configures a Builder. The zero value uses the defaults.
type Options struct {
	// MaxDegree caps connections per vertex. Zero means DefaultMaxDegree.
	MaxDegree int
	// Tag is stored on every created edge. Empty means DefaultTag.
	Tag string
	// Logger receives per-vertex debug output. Nil means log.Default().
	Logger *log.Logger
}

// Builder grows a forest over a graph using a region index.
type Builder struct {
	g         *graph.Graph
	idx       *regions.Index
	maxDegree int
	tag       string
	logger    *log.Logger
}

// New creates a builder for g. The index must already have been prepared
// with [regions.Index.IndexVertices] for the same graph.
func New(g *graph.Graph, idx *regions.Index, opts Options) *Builder {
	if opts.MaxDegree <= 0 {
		opts.MaxDegree = DefaultMaxDegree
	}
	if opts.Tag == "" {
		opts.Tag = DefaultTag
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Builder{
		g:         g,
		idx:       idx,
		maxDegree: opts.MaxDegree,
		tag:       opts.Tag,
		logger:    opts.Logger,
	}
}

// MaxDegree returns the connection limit the builder enforces.
func (b *Builder) MaxDegree() int { return b.maxDegree }
