package radio

import "github.com/paulmach/orb"

// EstimateAzimuth infers the observed pointing direction of a sector from
// the MR samples attributed to it: gate to samples within MaxDistance of
// the reference point, optionally isolate the dominant lobe with density
// clustering, then take the compass bearing from the reference to the
// unweighted centroid of what remains.
//
// The second return is false when no reliable estimate exists (too few
// samples, or an unusable reference point). The function never panics;
// every failure path is the sentinel return.
func EstimateAzimuth(ref orb.Point, samples []Sample, p AzimuthParams) (float64, bool) {
	if !ValidPoint(ref) || len(samples) < p.MinPoints {
		return 0, false
	}

	points := make([]orb.Point, 0, len(samples))
	for _, m := range samples {
		pt := m.Point()
		if !ValidPoint(pt) {
			continue
		}
		if Distance(ref, pt) < p.MaxDistance {
			points = append(points, pt)
		}
	}
	if len(points) < p.MinPoints {
		return 0, false
	}

	// Above the density threshold, multipath scatter starts to bias a raw
	// centroid. Cluster and keep the dominant group when it is itself big
	// enough to carry the estimate; otherwise the clustering was
	// inconclusive and the full gated set stands.
	if len(points) > p.ClusterThreshold {
		labels := Cluster(points, p.ClusterEps, p.ClusterMinSamples)
		if label, size := LargestCluster(labels); label != Noise && size >= p.MinPoints {
			clustered := make([]orb.Point, 0, size)
			for i, l := range labels {
				if l == label {
					clustered = append(clustered, points[i])
				}
			}
			points = clustered
		}
	}

	var sumLon, sumLat float64
	for _, pt := range points {
		sumLon += pt[0]
		sumLat += pt[1]
	}
	n := float64(len(points))
	centroid := orb.Point{sumLon / n, sumLat / n}

	return Bearing(ref, centroid), true
}

// analyzeAzimuthSector builds one azimuth-table row for one EP row.
func (e *Engine) analyzeAzimuthSector(ds *Dataset, s Sector) AzimuthResult {
	row := AzimuthResult{
		SiteID:         s.SiteID,
		CellID:         s.CellID,
		Carrier:        s.Carrier,
		PlannedAzimuth: s.PlannedAzimuth,
		Latitude:       s.Latitude,
		Longitude:      s.Longitude,
		Status:         StatusLessMR,
	}

	actual, ok := EstimateAzimuth(s.Point(), ds.SamplesForSector(s), e.Params.Azimuth)
	if !ok {
		return row
	}

	row.ActualAzimuth = round2(actual)
	row.AzimuthDifference = round2(AngularDifference(s.PlannedAzimuth, actual))
	row.Status = StatusOK
	return row
}

// AnalyzeAzimuth produces the actual-azimuth table: exactly one row per EP
// row, in EP input order. Sectors are processed concurrently; row identity
// is positional so the merge is conflict-free.
func (e *Engine) AnalyzeAzimuth(ds *Dataset) []AzimuthResult {
	results := make([]AzimuthResult, len(ds.Sectors))
	e.runUnits("azimuth", len(ds.Sectors), func(i int) {
		defer e.guardUnit(func() {
			results[i] = AzimuthResult{
				SiteID:         ds.Sectors[i].SiteID,
				CellID:         ds.Sectors[i].CellID,
				Carrier:        ds.Sectors[i].Carrier,
				PlannedAzimuth: ds.Sectors[i].PlannedAzimuth,
				Status:         StatusError,
			}
		})()
		results[i] = e.analyzeAzimuthSector(ds, ds.Sectors[i])
	})
	return results
}
