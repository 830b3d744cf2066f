package geo

import "math"

// Box is a bounding region over every coordinate added to it. The zero value
// is an empty box ready for use.
type Box struct {
	MinLat, MaxLat float64
	MinLon, MaxLon float64

	sumLat, sumLon float64
	n              int
}

// Add extends the box to include c.
func (b *Box) Add(c Coord) {
	if b.n == 0 {
		b.MinLat, b.MaxLat = c.Lat, c.Lat
		b.MinLon, b.MaxLon = c.Lon, c.Lon
	} else {
		b.MinLat = math.Min(b.MinLat, c.Lat)
		b.MaxLat = math.Max(b.MaxLat, c.Lat)
		b.MinLon = math.Min(b.MinLon, c.Lon)
		b.MaxLon = math.Max(b.MaxLon, c.Lon)
	}
	b.sumLat += c.Lat
	b.sumLon += c.Lon
	b.n++
}

// Center returns the centroid (mean) of all added coordinates, or the zero
// coordinate for an empty box.
func (b *Box) Center() Coord {
	if b.n == 0 {
		return Coord{}
	}
	return Coord{Lat: b.sumLat / float64(b.n), Lon: b.sumLon / float64(b.n)}
}

// Count returns how many coordinates have been added.
func (b *Box) Count() int { return b.n }

// Empty reports whether no coordinate has been added.
func (b *Box) Empty() bool { return b.n == 0 }

// Contains reports whether c lies within the box extremes (inclusive).
func (b *Box) Contains(c Coord) bool {
	if b.n == 0 {
		return false
	}
	return c.Lat >= b.MinLat && c.Lat <= b.MaxLat && c.Lon >= b.MinLon && c.Lon <= b.MaxLon
}

// Reset empties the box.
func (b *Box) Reset() { *b = Box{} }
