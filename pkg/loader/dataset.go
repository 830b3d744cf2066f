package loader

import (
	"context"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/cityforest/pkg/regions"
)

// Paths names the input files of a run. Regions and Adjacency are optional.
type Paths struct {
	Cities    string
	Regions   string
	Adjacency string
}

// Dataset is the parsed content of a set of input files.
type Dataset struct {
	Records []Record
	Regions []string
	Pairs   []regions.Pair
}

// LoadDataset reads the files named in p concurrently. The first failure
// cancels the remaining reads.
func LoadDataset(ctx context.Context, p Paths) (*Dataset, error) {
	var ds Dataset
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		recs, err := readFile(ctx, p.Cities, ReadCities)
		if err != nil {
			return fmt.Errorf("cities: %w", err)
		}
		ds.Records = recs
		return nil
	})
	if p.Regions != "" {
		g.Go(func() error {
			codes, err := readFile(ctx, p.Regions, regions.ParseRegions)
			if err != nil {
				return fmt.Errorf("regions: %w", err)
			}
			ds.Regions = codes
			return nil
		})
	}
	if p.Adjacency != "" {
		g.Go(func() error {
			pairs, err := readFile(ctx, p.Adjacency, regions.ParseAdjacency)
			if err != nil {
				return fmt.Errorf("adjacency: %w", err)
			}
			ds.Pairs = pairs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &ds, nil
}

func readFile[T any](ctx context.Context, path string, parse func(io.Reader) (T, error)) (T, error) {
	var zero T
	if err := ctx.Err(); err != nil {
		return zero, err
	}
	rc, err := Open(path)
	if err != nil {
		return zero, err
	}
	defer rc.Close()
	return parse(rc)
}
