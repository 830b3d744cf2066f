package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/matzehuels/cityforest/pkg/cache"
	"github.com/matzehuels/cityforest/pkg/export"
	"github.com/matzehuels/cityforest/pkg/graph"
)

// RenderWithCacheInfo produces every requested format and reports whether
// all of them came from the cache.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, result *Result, opts Options) (map[string][]byte, bool, error) {
	artifacts := make(map[string][]byte, len(opts.Output.Formats))
	allCached := true

	for _, format := range opts.Output.Formats {
		key := r.Keyer.ArtifactKey(result.CacheInfo.NetworkKey, artifactKeyOpts(format, opts))
		if !opts.Refresh {
			if data, ok := r.lookup(ctx, keyTypeArtifact, key); ok {
				artifacts[format] = data
				continue
			}
		}

		allCached = false
		data, err := Render(ctx, result.Network, result.Graph, format, opts)
		if err != nil {
			return nil, false, fmt.Errorf("%s: %w", format, err)
		}
		artifacts[format] = data
		r.store(ctx, keyTypeArtifact, key, data, opts.Cache.TTL)
	}

	return artifacts, allCached, nil
}

// Render produces a single output format without caching.
func Render(ctx context.Context, net *export.Network, g *graph.Graph, format string, opts Options) ([]byte, error) {
	switch format {
	case FormatJSON:
		var buf bytes.Buffer
		if err := export.WriteJSON(&buf, net); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatDOT:
		return []byte(export.ToDOT(g, dotOptions(opts))), nil
	case FormatSVG:
		return export.RenderSVG(ctx, export.ToDOT(g, dotOptions(opts)))
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}

func dotOptions(opts Options) export.DOTOptions {
	return export.DOTOptions{Labels: opts.Output.Labels, Weights: opts.Output.Weights}
}

func artifactKeyOpts(format string, opts Options) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{Format: format, Labels: opts.Output.Labels, Weights: opts.Output.Weights}
}

// WriteArtifacts writes each artifact to dir as <base>.<format> and returns
// the written paths in format order.
func WriteArtifacts(dir, base string, artifacts map[string][]byte, formats []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	var paths []string
	for _, format := range formats {
		data, ok := artifacts[format]
		if !ok {
			continue
		}
		path := filepath.Join(dir, base+"."+format)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}
