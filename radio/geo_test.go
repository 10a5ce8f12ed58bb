package radio

import (
	"math"
	"testing"

	"github.com/paulmach/orb"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

// ---------------------------------------------------------------------------
// shared fixture helpers
// ---------------------------------------------------------------------------

// pointAt offsets a lat/lon origin by roughly meters in the direction of
// bearing degrees, using the small-offset flat-earth approximation. Good
// to well under a degree of bearing error at the sub-kilometer scales the
// tests use.
func pointAt(lat, lon, bearing, meters float64) (outLat, outLon float64) {
	rad := bearing * math.Pi / 180
	dlat := meters * math.Cos(rad) / 111194.9
	dlon := meters * math.Sin(rad) / (111194.9 * math.Cos(lat*math.Pi/180))
	return lat + dlat, lon + dlon
}

// samplesAt generates n samples for a cell, all at the given bearing and
// distance from the origin, with a fixed RSRP.
func samplesAt(site, cell string, lat, lon, bearing, meters float64, n int, rsrp float64) []Sample {
	out := make([]Sample, 0, n)
	for i := 0; i < n; i++ {
		// Spread the points slightly along the radial so they are not all
		// identical coordinates.
		sLat, sLon := pointAt(lat, lon, bearing, meters+float64(i))
		out = append(out, Sample{SiteID: site, CellID: cell, Latitude: sLat, Longitude: sLon, RSRP: rsrp})
	}
	return out
}

// ---------------------------------------------------------------------------
// Distance
// ---------------------------------------------------------------------------

func TestDistance(t *testing.T) {
	a := orb.Point{90.0, 23.0}

	if d := Distance(a, a); d != 0 {
		t.Errorf("Distance to self = %v, want 0", d)
	}

	b := orb.Point{90.01, 23.01}
	dab := Distance(a, b)
	dba := Distance(b, a)
	if !almostEqual(dab, dba) {
		t.Errorf("Distance not symmetric: %v vs %v", dab, dba)
	}
	if dab <= 0 {
		t.Errorf("Distance between distinct points = %v, want > 0", dab)
	}

	// One degree of latitude on the 6371 km sphere is ~111.19 km.
	c := orb.Point{0, 0}
	d := orb.Point{0, 1}
	got := Distance(c, d)
	want := EarthRadiusMeters * math.Pi / 180
	if math.Abs(got-want) > 1 {
		t.Errorf("1 degree latitude = %v m, want %v m", got, want)
	}
}

func TestDistance_InvalidInput(t *testing.T) {
	valid := orb.Point{90.0, 23.0}
	tests := []struct {
		name string
		p    orb.Point
	}{
		{"NaN latitude", orb.Point{90.0, math.NaN()}},
		{"NaN longitude", orb.Point{math.NaN(), 23.0}},
		{"latitude out of range", orb.Point{90.0, 91.0}},
		{"longitude out of range", orb.Point{181.0, 23.0}},
		{"infinite latitude", orb.Point{90.0, math.Inf(1)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if d := Distance(valid, tt.p); d != 0 {
				t.Errorf("Distance = %v, want 0 for invalid input", d)
			}
			if d := Distance(tt.p, valid); d != 0 {
				t.Errorf("Distance (swapped) = %v, want 0 for invalid input", d)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Bearing
// ---------------------------------------------------------------------------

func TestBearing_CardinalDirections(t *testing.T) {
	origin := orb.Point{0, 0}
	tests := []struct {
		name string
		to   orb.Point
		want float64
	}{
		{"north", orb.Point{0, 1}, 0},
		{"east", orb.Point{1, 0}, 90},
		{"south", orb.Point{0, -1}, 180},
		{"west", orb.Point{-1, 0}, 270},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Bearing(origin, tt.to)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("Bearing = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBearing_Reciprocity(t *testing.T) {
	// Along a meridian the reverse bearing is exactly 180 degrees away.
	a := orb.Point{90.0, 22.0}
	b := orb.Point{90.0, 23.0}
	fwd := Bearing(a, b)
	rev := Bearing(b, a)
	if diff := AngularDifference(fwd, rev); math.Abs(diff-180) > 1e-6 {
		t.Errorf("reciprocal bearing difference = %v, want 180", diff)
	}
}

func TestBearing_Range(t *testing.T) {
	points := []orb.Point{
		{90.0, 23.0}, {90.5, 22.5}, {89.5, 23.5}, {91.0, 23.0}, {90.0, 21.0},
	}
	ref := orb.Point{90.2, 22.8}
	for _, p := range points {
		b := Bearing(ref, p)
		if b < 0 || b >= 360 {
			t.Errorf("Bearing(%v) = %v, out of [0, 360)", p, b)
		}
	}
}

// ---------------------------------------------------------------------------
// NormalizeAngle / AngularDifference
// ---------------------------------------------------------------------------

func TestNormalizeAngle(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{0, 0},
		{360, 0},
		{370, 10},
		{-10, 350},
		{-370, 350},
		{720, 0},
		{359.5, 359.5},
	}
	for _, tt := range tests {
		if got := NormalizeAngle(tt.in); !almostEqual(got, tt.want) {
			t.Errorf("NormalizeAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestAngularDifference(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 0, 0},
		{0, 350, 10},
		{350, 0, 10},
		{10, 350, 20},
		{90, 270, 180},
		{45, 135, 90},
		{359, 1, 2},
	}
	for _, tt := range tests {
		if got := AngularDifference(tt.a, tt.b); !almostEqual(got, tt.want) {
			t.Errorf("AngularDifference(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestAngularDifference_Symmetric(t *testing.T) {
	pairs := [][2]float64{{10, 200}, {0, 180}, {355, 5}, {123.4, 321.9}}
	for _, p := range pairs {
		if AngularDifference(p[0], p[1]) != AngularDifference(p[1], p[0]) {
			t.Errorf("AngularDifference not symmetric for %v", p)
		}
	}
}

func TestRounding(t *testing.T) {
	if got := round2(123.4567); got != 123.46 {
		t.Errorf("round2 = %v, want 123.46", got)
	}
	if got := round1(66.6666); got != 66.7 {
		t.Errorf("round1 = %v, want 66.7", got)
	}
	if got := round6(23.1234567); got != 23.123457 {
		t.Errorf("round6 = %v, want 23.123457", got)
	}
}
