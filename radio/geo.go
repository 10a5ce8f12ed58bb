package radio

import (
	"math"

	"github.com/paulmach/orb"
)

// EarthRadiusMeters is the mean Earth radius used by every distance in the
// engine. Deliberately the spherical mean, not WGS84: all thresholds
// (2000 m azimuth gate, 5000 m neighbor radius, coverage bins) were tuned
// against haversine distances on this sphere.
const EarthRadiusMeters = 6371000.0

// ValidPoint reports whether p carries usable geographic coordinates.
func ValidPoint(p orb.Point) bool {
	lon, lat := p[0], p[1]
	if math.IsNaN(lat) || math.IsNaN(lon) || math.IsInf(lat, 0) || math.IsInf(lon, 0) {
		return false
	}
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Distance returns the haversine great-circle distance between two points
// in meters. Degenerate or out-of-range inputs return 0 rather than
// propagating NaN, so one bad sample degrades only its own contribution.
func Distance(a, b orb.Point) float64 {
	if !ValidPoint(a) || !ValidPoint(b) {
		return 0
	}
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	dlat := (b[1] - a[1]) * math.Pi / 180
	dlon := (b[0] - a[0]) * math.Pi / 180

	h := math.Sin(dlat/2)*math.Sin(dlat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dlon/2)*math.Sin(dlon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return EarthRadiusMeters * c
}

// Bearing returns the compass bearing from a to b in degrees [0, 360),
// 0 = North, clockwise positive.
func Bearing(a, b orb.Point) float64 {
	lat1 := a[1] * math.Pi / 180
	lat2 := b[1] * math.Pi / 180
	dlon := (b[0] - a[0]) * math.Pi / 180

	y := math.Sin(dlon) * math.Cos(lat2)
	x := math.Cos(lat1)*math.Sin(lat2) - math.Sin(lat1)*math.Cos(lat2)*math.Cos(dlon)
	return NormalizeAngle(math.Atan2(y, x) * 180 / math.Pi)
}

// NormalizeAngle normalizes an angle in degrees to the range [0, 360).
func NormalizeAngle(degrees float64) float64 {
	degrees = math.Mod(degrees, 360)
	if degrees < 0 {
		degrees += 360
	}
	return degrees
}

// AngularDifference returns the minimum angle between two azimuths in
// degrees [0, 180], correct across the 0/360 wrap.
func AngularDifference(a, b float64) float64 {
	diff := math.Abs(a - b)
	if diff > 360 {
		diff = math.Mod(diff, 360)
	}
	return math.Min(diff, 360-diff)
}

// round2 rounds to two decimals; result tables carry bearings and meter
// distances at this precision.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// round1 rounds to one decimal; percentages are reported at this precision.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// round6 rounds coordinates to six decimals, about 0.1 m at the equator.
func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
