package radio

import (
	"sort"

	"github.com/paulmach/orb"
)

// Actual-coordinates estimation constants. Upstream tuned these against
// dense urban MR exports; they are not caller-adjustable knobs.
const (
	coordCoreRadius    = 200.0  // meters around the centroid to consider
	coordClusterEps    = 0.0002 // degrees, roughly 20 m
	coordClusterMinPts = 3
	coordRefineMin     = 5
)

// EstimateCoordinates infers the physical site position from MR density:
// start from the sample centroid, keep points within 200 m of it, and if
// enough remain, density-cluster them and take the median of the largest
// cluster. Falls back to the plain centroid whenever refinement is not
// possible, so any non-empty sample set yields a position.
func EstimateCoordinates(samples []Sample) (lat, lon float64, ok bool) {
	points := make([]orb.Point, 0, len(samples))
	for _, m := range samples {
		if pt := m.Point(); ValidPoint(pt) {
			points = append(points, pt)
		}
	}
	if len(points) == 0 {
		return 0, 0, false
	}

	var sumLon, sumLat float64
	for _, pt := range points {
		sumLon += pt[0]
		sumLat += pt[1]
	}
	n := float64(len(points))
	centroid := orb.Point{sumLon / n, sumLat / n}
	lat, lon = centroid[1], centroid[0]

	var close []orb.Point
	for _, pt := range points {
		if Distance(centroid, pt) <= coordCoreRadius {
			close = append(close, pt)
		}
	}
	if len(close) < coordRefineMin {
		return lat, lon, true
	}

	labels := Cluster(close, coordClusterEps, coordClusterMinPts)
	label, size := LargestCluster(labels)
	if label == Noise || size < coordClusterMinPts {
		return lat, lon, true
	}

	lats := make([]float64, 0, size)
	lons := make([]float64, 0, size)
	for i, l := range labels {
		if l == label {
			lats = append(lats, close[i][1])
			lons = append(lons, close[i][0])
		}
	}
	return median(lats), median(lons), true
}

// median returns the middle value, averaging the two central values for
// even-length input. The slice is sorted in place.
func median(v []float64) float64 {
	sort.Float64s(v)
	mid := len(v) / 2
	if len(v)%2 == 1 {
		return v[mid]
	}
	return (v[mid-1] + v[mid]) / 2
}

// EstimateAllCoordinates produces the actual-coordinates table: one row
// per EP row, in EP input order.
func (e *Engine) EstimateAllCoordinates(ds *Dataset) []CoordinateResult {
	results := make([]CoordinateResult, len(ds.Sectors))
	e.runUnits("coordinates", len(ds.Sectors), func(i int) {
		s := ds.Sectors[i]
		defer e.guardUnit(func() {
			results[i] = CoordinateResult{SiteID: s.SiteID, CellID: s.CellID, Carrier: s.Carrier, Status: StatusError}
		})()

		samples := ds.SamplesForCell(s.SiteID, s.CellID)
		row := CoordinateResult{
			SiteID:      s.SiteID,
			CellID:      s.CellID,
			Carrier:     s.Carrier,
			SampleCount: len(samples),
			Status:      StatusNoMR,
		}
		if lat, lon, ok := EstimateCoordinates(samples); ok {
			row.Latitude = round6(lat)
			row.Longitude = round6(lon)
			row.Status = StatusOK
		}
		results[i] = row
	})
	return results
}
