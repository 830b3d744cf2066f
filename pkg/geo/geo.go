package geo

import (
	"fmt"
	"math"
)

// EarthRadiusMiles is the mean Earth radius used by [Distance] and [Destination].
const EarthRadiusMiles = 3958.8

// Coord is a WGS 84 latitude/longitude pair in degrees.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// String formats the coordinate as "(lat, lon)".
func (c Coord) String() string {
	return fmt.Sprintf("(%.6f, %.6f)", c.Lat, c.Lon)
}

// IsZero reports whether both components are zero. Loaders use (0, 0) as the
// value for a missing coordinate.
func (c Coord) IsZero() bool { return c.Lat == 0 && c.Lon == 0 }

// Point is a planar position derived from a [Coord]. It carries no geographic
// meaning and is only used for drawing.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func toRad(deg float64) float64 { return deg * math.Pi / 180 }
func toDeg(rad float64) float64 { return rad * 180 / math.Pi }

// Distance returns the great-circle distance between a and b in miles.
func Distance(a, b Coord) float64 {
	if a == b {
		return 0
	}
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLat := lat2 - lat1
	dLon := toRad(b.Lon - a.Lon)

	sLat := math.Sin(dLat / 2)
	sLon := math.Sin(dLon / 2)
	h := sLat*sLat + math.Cos(lat1)*math.Cos(lat2)*sLon*sLon
	// Rounding can push h marginally outside [0, 1] for antipodal points.
	h = math.Min(1, math.Max(0, h))
	return 2 * EarthRadiusMiles * math.Asin(math.Sqrt(h))
}

// Bearing returns the initial compass bearing from a toward b in degrees,
// normalized to [0, 360).
func Bearing(a, b Coord) float64 {
	lat1, lat2 := toRad(a.Lat), toRad(b.Lat)
	dLon := toRad(b.Lon - a.Lon)

	y := math.Sin(dLon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dLon)
	return math.Mod(toDeg(math.Atan2(y, x))+360, 360)
}

// Destination returns the coordinate reached by travelling miles from a along
// the given initial bearing (degrees).
func Destination(a Coord, miles, bearing float64) Coord {
	delta := miles / EarthRadiusMiles
	theta := toRad(bearing)
	lat1, lon1 := toRad(a.Lat), toRad(a.Lon)

	lat2 := math.Asin(math.Sin(lat1)*math.Cos(delta) + math.Cos(lat1)*math.Sin(delta)*math.Cos(theta))
	lon2 := lon1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(lat1),
		math.Cos(delta)-math.Sin(lat1)*math.Sin(lat2),
	)
	// Normalize longitude to [-180, 180).
	lon := math.Mod(toDeg(lon2)+540, 360) - 180
	return Coord{Lat: toDeg(lat2), Lon: lon}
}

// Project maps c onto spherical Mercator coordinates, expressed in degrees so
// that x equals the longitude. Latitudes are clamped to ±85.05 to keep y finite.
func Project(c Coord) Point {
	const maxLat = 85.05112878
	lat := math.Max(-maxLat, math.Min(maxLat, c.Lat))
	y := toDeg(math.Log(math.Tan(math.Pi/4 + toRad(lat)/2)))
	return Point{X: c.Lon, Y: y}
}
