package radio

import "math"

// Distance bin edges in meters. Bins are [lo, hi); the last bin is open.
var distanceBins = [5][2]float64{
	{0, 300},
	{300, 500},
	{500, 700},
	{700, 1000},
	{1000, math.Inf(1)},
}

// RSRP bin edges in dBm, strongest first. Bins are (lo, hi]: a sample at
// exactly -70 dBm falls in the -85..-70 bin, not the -70..-40 one. The
// last bin is (-inf, -105]. Samples above -40 dBm count toward the total
// but land in no bin.
var rsrpBins = [5][2]float64{
	{-70, -40},
	{-85, -70},
	{-95, -85},
	{-105, -95},
	{math.Inf(-1), -105},
}

// binWeights front-load the score toward near/strong bins. Applied
// positionally to both the distance and the RSRP distributions.
var binWeights = [5]float64{1.0, 0.8, 0.6, 0.4, 0.2}

// poorRSRPThreshold is the floor below which a sample counts as very poor
// signal; a sector is Poor Coverage when strictly more than half of its
// samples fall under it.
const poorRSRPThreshold = -105.0

// ProfileSectorCoverage bins one sector's attributed samples by distance
// from the sector and by RSRP into a quality profile.
//
// A sector with no attributed samples gets the zero-filled StatusNoMR row;
// a sector whose EP coordinates are unusable gets StatusNoEP, since no
// distance distribution can be computed for it. Either way the row exists:
// the coverage table always has exactly one row per EP row.
func ProfileSectorCoverage(s Sector, samples []Sample) CoverageResult {
	row := CoverageResult{
		SiteID:  s.SiteID,
		CellID:  s.CellID,
		Carrier: s.Carrier,
		Status:  StatusNoMR,
	}

	if !ValidPoint(s.Point()) {
		row.Status = StatusNoEP
		return row
	}
	if len(samples) == 0 {
		return row
	}

	total := len(samples)
	ref := s.Point()

	var distCounts, rsrpCounts [5]int
	for _, m := range samples {
		dist := Distance(ref, m.Point())
		for i, b := range distanceBins {
			if dist >= b[0] && dist < b[1] {
				distCounts[i]++
				break
			}
		}
		for i, b := range rsrpBins {
			if m.RSRP > b[0] && m.RSRP <= b[1] {
				rsrpCounts[i]++
				break
			}
		}
	}

	var weightedSum, weightTotal float64
	for i := range binWeights {
		distPct := float64(distCounts[i]) / float64(total) * 100
		rsrpPct := float64(rsrpCounts[i]) / float64(total) * 100
		row.DistancePct[i] = round1(distPct)
		row.RSRPPct[i] = round1(rsrpPct)
		weightedSum += (distPct + rsrpPct) * binWeights[i]
		weightTotal += 2 * binWeights[i]
	}
	row.OverallScore = round1(weightedSum / weightTotal)
	row.SampleCount = total

	// Boundary is exclusive: a sector with exactly half of its samples
	// under -105 dBm is still Good Coverage.
	poorPct := float64(rsrpCounts[4]) / float64(total) * 100
	if poorPct > 50 {
		row.Status = "Poor Coverage"
	} else {
		row.Status = "Good Coverage"
	}
	return row
}

// ProfileCoverage produces the coverage table: exactly one row per EP row,
// in EP input order, regardless of MR presence. Attribution uses the
// (site, cell) join key alone; the carrier is not part of the MR join.
func (e *Engine) ProfileCoverage(ds *Dataset) []CoverageResult {
	results := make([]CoverageResult, len(ds.Sectors))
	e.runUnits("coverage", len(ds.Sectors), func(i int) {
		s := ds.Sectors[i]
		defer e.guardUnit(func() {
			results[i] = CoverageResult{SiteID: s.SiteID, CellID: s.CellID, Carrier: s.Carrier, Status: StatusError}
		})()
		results[i] = ProfileSectorCoverage(s, ds.SamplesForCell(s.SiteID, s.CellID))
	})
	return results
}
