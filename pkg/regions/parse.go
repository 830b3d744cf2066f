package regions

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// ParseRegions reads whitespace-separated region codes. Text from # to the
// end of a line is a comment. Duplicates are dropped; first occurrence order
// is kept.
func ParseRegions(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)

	seen := make(map[string]bool)
	var codes []string
	for sc.Scan() {
		line, _, _ := strings.Cut(sc.Text(), "#")
		for _, code := range strings.Fields(line) {
			if seen[code] {
				continue
			}
			seen[code] = true
			codes = append(codes, code)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read regions: %w", err)
	}
	return codes, nil
}

// ParseAdjacency reads adjacency declarations, one region per line followed
// by its comma-separated neighbors. Blank lines and lines starting with # are
// skipped, as are empty fields. A line naming only a region yields no pairs.
func ParseAdjacency(r io.Reader) ([]Pair, error) {
	sc := bufio.NewScanner(r)

	var pairs []Pair
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Split(line, ",")
		region := strings.TrimSpace(fields[0])
		if region == "" {
			continue
		}
		for _, f := range fields[1:] {
			if nb := strings.TrimSpace(f); nb != "" {
				pairs = append(pairs, Pair{A: region, B: nb})
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read adjacency: %w", err)
	}
	return pairs, nil
}
