package geo

import (
	"math"
	"testing"
)

var (
	wichitaFalls = Coord{Lat: 33.9137, Lon: -98.4934}
	dallas       = Coord{Lat: 32.7767, Lon: -96.7970}
	austin       = Coord{Lat: 30.2672, Lon: -97.7431}
	london       = Coord{Lat: 51.5074, Lon: -0.1278}
	paris        = Coord{Lat: 48.8566, Lon: 2.3522}
)

func almostEqual(a, b, tol float64) bool { return math.Abs(a-b) <= tol }

func TestDistanceKnownPairs(t *testing.T) {
	tests := []struct {
		name string
		a, b Coord
		want float64
		tol  float64
	}{
		{"london-paris", london, paris, 213.5, 1.5},
		{"dallas-austin", dallas, austin, 182.0, 2.0},
		{"equator quarter", Coord{0, 0}, Coord{0, 90}, math.Pi / 2 * EarthRadiusMiles, 1e-6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if !almostEqual(got, tt.want, tt.tol) {
				t.Errorf("Distance() = %.3f, want %.3f±%.3f", got, tt.want, tt.tol)
			}
		})
	}
}

func TestDistanceSymmetricAndZero(t *testing.T) {
	points := []Coord{wichitaFalls, dallas, austin, london, paris, {}, {Lat: -33.86, Lon: 151.2}}
	for _, a := range points {
		if d := Distance(a, a); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", a, a, d)
		}
		for _, b := range points {
			ab, ba := Distance(a, b), Distance(b, a)
			if ab != ba {
				t.Errorf("Distance not symmetric for %v/%v: %v vs %v", a, b, ab, ba)
			}
			if ab < 0 {
				t.Errorf("Distance(%v, %v) = %v, want >= 0", a, b, ab)
			}
		}
	}
}

func TestDistanceAntipodal(t *testing.T) {
	got := Distance(Coord{Lat: 0, Lon: 0}, Coord{Lat: 0, Lon: 180})
	if want := math.Pi * EarthRadiusMiles; !almostEqual(got, want, 1e-6) {
		t.Errorf("antipodal distance = %v, want %v", got, want)
	}
}

func TestBearing(t *testing.T) {
	tests := []struct {
		name string
		a, b Coord
		want float64
	}{
		{"north", Coord{0, 0}, Coord{10, 0}, 0},
		{"east", Coord{0, 0}, Coord{0, 10}, 90},
		{"south", Coord{10, 0}, Coord{0, 0}, 180},
		{"west", Coord{0, 10}, Coord{0, 0}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Bearing(tt.a, tt.b); !almostEqual(got, tt.want, 1e-9) {
				t.Errorf("Bearing() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDestinationRoundTrip(t *testing.T) {
	for _, brng := range []float64{0, 45, 90, 135, 180, 270, 359} {
		dest := Destination(dallas, 100, brng)
		if d := Distance(dallas, dest); !almostEqual(d, 100, 1e-6) {
			t.Errorf("bearing %v: distance to destination = %v, want 100", brng, d)
		}
		if brng == 0 || brng == 90 || brng == 180 {
			if b := Bearing(dallas, dest); !almostEqual(b, brng, 1e-6) {
				t.Errorf("bearing %v: initial bearing to destination = %v", brng, b)
			}
		}
	}
}

func TestDestinationZeroDistance(t *testing.T) {
	got := Destination(austin, 0, 123)
	if !almostEqual(got.Lat, austin.Lat, 1e-9) || !almostEqual(got.Lon, austin.Lon, 1e-9) {
		t.Errorf("Destination(0 miles) = %v, want %v", got, austin)
	}
}

func TestProject(t *testing.T) {
	if p := Project(Coord{}); p.X != 0 || !almostEqual(p.Y, 0, 1e-12) {
		t.Errorf("Project(0,0) = %+v, want origin", p)
	}
	north, south := Project(Coord{Lat: 40, Lon: -100}), Project(Coord{Lat: 30, Lon: -100})
	if north.Y <= south.Y {
		t.Errorf("projection should preserve latitude order: %v <= %v", north.Y, south.Y)
	}
	if p := Project(Coord{Lat: 90}); math.IsInf(p.Y, 0) || math.IsNaN(p.Y) {
		t.Errorf("Project(pole) = %+v, want finite", p)
	}
}

func TestBox(t *testing.T) {
	var b Box
	if !b.Empty() {
		t.Fatal("zero Box should be empty")
	}
	if c := b.Center(); c != (Coord{}) {
		t.Errorf("empty Center() = %v", c)
	}

	b.Add(Coord{Lat: 10, Lon: -20})
	b.Add(Coord{Lat: 30, Lon: -10})
	b.Add(Coord{Lat: 20, Lon: -30})

	if b.MinLat != 10 || b.MaxLat != 30 || b.MinLon != -30 || b.MaxLon != -10 {
		t.Errorf("extremes = %+v", b)
	}
	if c := b.Center(); c.Lat != 20 || c.Lon != -20 {
		t.Errorf("Center() = %v, want (20, -20)", c)
	}
	if !b.Contains(Coord{Lat: 15, Lon: -15}) || b.Contains(Coord{Lat: 40, Lon: -15}) {
		t.Error("Contains() gave wrong answer")
	}
	if b.Count() != 3 {
		t.Errorf("Count() = %d, want 3", b.Count())
	}

	b.Reset()
	if !b.Empty() {
		t.Error("Reset() should empty the box")
	}
}
