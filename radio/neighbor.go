package radio

import "sort"

// findNeighborsFor collects the capped nearest-neighbor list for one
// serving sector: every other sector within the search radius, nearest
// first, truncated to MaxNeighbors. The sort is stable, so equidistant
// candidates keep EP input order.
func findNeighborsFor(serving Sector, sectors []Sector, servingIdx int, p NeighborParams) []NeighborRelation {
	var candidates []NeighborRelation
	for j, other := range sectors {
		if j == servingIdx {
			continue
		}
		dist := Distance(serving.Point(), other.Point())
		if dist > p.SearchRadius {
			continue
		}
		relType := InterFrequency
		if serving.Carrier == other.Carrier {
			relType = IntraFrequency
		}
		candidates = append(candidates, NeighborRelation{
			ServingSite:       serving.SiteID,
			ServingCell:       serving.CellID,
			NeighborSite:      other.SiteID,
			NeighborCell:      other.CellID,
			Distance:          round2(dist),
			AzimuthDifference: round2(AngularDifference(serving.PlannedAzimuth, other.PlannedAzimuth)),
			Type:              relType,
			ServingCarrier:    serving.Carrier,
			NeighborCarrier:   other.Carrier,
		})
	}

	sort.SliceStable(candidates, func(a, b int) bool {
		return candidates[a].Distance < candidates[b].Distance
	})
	if len(candidates) > p.MaxNeighbors {
		candidates = candidates[:p.MaxNeighbors]
	}
	return candidates
}

// FindNeighbors produces the neighbor table for the whole network. The
// pass is inherently quadratic in sector count, so the outer loop is
// partitioned across the worker pool, one serving sector per unit, each
// writing its own block, and blocks are concatenated in EP input order.
func (e *Engine) FindNeighbors(ds *Dataset) []NeighborRelation {
	blocks := make([][]NeighborRelation, len(ds.Sectors))
	e.runUnits("neighbors", len(ds.Sectors), func(i int) {
		defer e.guardUnit(nil)()
		blocks[i] = findNeighborsFor(ds.Sectors[i], ds.Sectors, i, e.Params.Neighbor)
	})

	var out []NeighborRelation
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}
