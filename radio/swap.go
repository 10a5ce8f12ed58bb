package radio

import (
	"strings"

	"github.com/paulmach/orb"
)

// Swap-table result strings. These are consumed verbatim downstream.
const (
	SwapNotFound      = "No Sector Swap Found"
	SwapNoMRData      = "NO MR Data found for the cell"
	SwapFewPoints     = "Less Number of MR Points"
	SwapNotFoundMIMO  = "No Sector Swap Found - Massive MIMO"
	swapFoundFragment = "Sector Swap Found Between"
)

// IsSwapVerdict reports whether a swap-table result string is a confirmed
// swap rather than one of the no-fault statuses.
func IsSwapVerdict(result string) bool {
	return strings.Contains(result, swapFoundFragment)
}

// cellKey identifies a cell within one site; the same cell id may appear
// once per carrier.
type cellKey struct {
	CellID  string
	Carrier string
}

// cellType is the resolved configuration type of one cell at one site.
type cellType struct {
	typ          string // CellTypeNone, CellTypeSplit or CellTypeMIMO
	splitPartner string // partner cell id when part of a configured split
}

// resolveCellTypes applies the group configuration to one site's sectors.
//
// MIMO takes precedence: a cell whose configured 4-beam group is fully
// present at the site on its carrier is Massive MIMO and is excluded from
// swap evaluation entirely. A cell in a configured split pair becomes
// Sector Split only when its partner exists at the site on the same
// carrier and did not itself resolve to MIMO: two cells sharing one
// antenna legitimately show each other's traffic direction, but only when
// both sides of the pairing are real.
func resolveCellTypes(sectors []Sector, groups GroupConfig) map[cellKey]cellType {
	present := make(map[cellKey]bool, len(sectors))
	presentAtSite := make(map[string]bool, len(sectors))
	for _, s := range sectors {
		present[cellKey{s.CellID, s.Carrier}] = true
		presentAtSite[s.CellID] = true
	}

	groupValid := func(g MIMOGroup) bool {
		for _, beam := range g.Beams {
			if !present[cellKey{beam, g.Carrier}] {
				return false
			}
		}
		return len(g.Beams) > 0
	}

	splitPartner := func(s Sector) string {
		for _, p := range groups.SectorSplits {
			if p.Carrier != s.Carrier {
				continue
			}
			if s.CellID == p.ParentID && presentAtSite[p.ChildID] {
				return p.ChildID
			}
			if s.CellID == p.ChildID && presentAtSite[p.ParentID] {
				return p.ParentID
			}
		}
		return ""
	}

	types := make(map[cellKey]cellType, len(sectors))

	// Pass 1: MIMO resolution. A partially-present group confers nothing.
	for _, s := range sectors {
		key := cellKey{s.CellID, s.Carrier}
		ct := cellType{splitPartner: splitPartner(s)}
		for _, g := range groups.MassiveMIMO {
			if g.Carrier != s.Carrier || !containsBeam(g, s.CellID) {
				continue
			}
			if groupValid(g) {
				ct.typ = CellTypeMIMO
			}
			break
		}
		types[key] = ct
	}

	// Pass 2: split resolution against the now-known MIMO verdicts.
	for _, s := range sectors {
		key := cellKey{s.CellID, s.Carrier}
		ct := types[key]
		if ct.typ != CellTypeNone || ct.splitPartner == "" {
			continue
		}
		partnerKey := cellKey{ct.splitPartner, s.Carrier}
		partner, ok := types[partnerKey]
		if !ok || partner.typ == CellTypeMIMO {
			continue
		}
		ct.typ = CellTypeSplit
		types[key] = ct
		if partner.typ == CellTypeNone {
			partner.typ = CellTypeSplit
			types[partnerKey] = partner
		}
	}

	return types
}

func containsBeam(g MIMOGroup, cellID string) bool {
	for _, beam := range g.Beams {
		if beam == cellID {
			return true
		}
	}
	return false
}

// directionTarget holds one candidate sector's directional test cone.
type directionTarget struct {
	cellID  string
	azimuth float64
	point   orb.Point
}

// swapCandidate is the histogram-pass output for one evaluable cell.
type swapCandidate struct {
	cellID       string
	target       string // cell id collecting the most of this cell's traffic
	maxCount     int
	secondMax    int
	total        int
	counts       map[string]int
	isSplit      bool
	splitPartner string
}

// buildCandidate runs the histogram pass for one cell: every attributed
// sample is tested against every same-carrier sector's cone, where a
// sample falls in sector D's cone when its bearing from D's location is
// within beamwidth/2 of D's planned azimuth.
func buildCandidate(samples []Sample, targets []directionTarget, ct cellType, cellID string, beamwidth float64) swapCandidate {
	counts := make(map[string]int, len(targets))
	halfBeam := beamwidth / 2
	for _, m := range samples {
		pt := m.Point()
		if !ValidPoint(pt) {
			continue
		}
		for _, d := range targets {
			if AngularDifference(Bearing(d.point, pt), d.azimuth) <= halfBeam {
				counts[d.cellID]++
			}
		}
	}

	cand := swapCandidate{
		cellID:       cellID,
		counts:       counts,
		isSplit:      ct.typ == CellTypeSplit,
		splitPartner: ct.splitPartner,
	}
	for _, d := range targets {
		c := counts[d.cellID]
		cand.total += c
		switch {
		case c > cand.maxCount:
			cand.secondMax = cand.maxCount
			cand.maxCount = c
			cand.target = d.cellID
		case c == cand.maxCount && cand.target != "" && d.cellID < cand.target:
			// Tie-break on equal counts: lowest cell id wins. Upstream
			// left this to map iteration order; the rule here is pinned
			// so reruns are byte-identical. The displaced cell keeps its
			// count as the runner-up.
			cand.secondMax = cand.maxCount
			cand.target = d.cellID
		case c > cand.secondMax:
			cand.secondMax = c
		}
	}
	return cand
}

// confirmSwap applies the strict and adaptive rules to a mutual pair.
//
// Strict demands a dominant, well-separated lobe on both sides:
// max >= 70% of total and a >=20%-of-total margin over the runner-up.
// Adaptive accepts asymmetric but mutually-corroborating patterns: one
// side sending >60% of its cone traffic at the other while the other
// returns >30%, in either orientation.
func confirmSwap(a, b swapCandidate) bool {
	strict := float64(a.maxCount) >= 0.7*float64(a.total) &&
		float64(a.maxCount-a.secondMax) >= 0.2*float64(a.total) &&
		float64(b.maxCount) >= 0.7*float64(b.total) &&
		float64(b.maxCount-b.secondMax) >= 0.2*float64(b.total)

	ratioAB := float64(a.counts[b.cellID]) / float64(a.total)
	ratioBA := float64(b.counts[a.cellID]) / float64(b.total)
	adaptive := (ratioAB > 0.6 && ratioBA > 0.3) || (ratioAB > 0.3 && ratioBA > 0.6)

	return strict || adaptive
}

// detectSite runs the full two-pass swap pipeline for one site and emits
// one row per distinct cell id, in EP input order.
func (e *Engine) detectSite(ds *Dataset, siteID string) []SwapResult {
	sectors := ds.SiteSectors(siteID)
	types := resolveCellTypes(sectors, e.Groups)

	carrierOrder := make([]string, 0, 4)
	byCarrier := make(map[string][]Sector)
	for _, s := range sectors {
		if _, ok := byCarrier[s.Carrier]; !ok {
			carrierOrder = append(carrierOrder, s.Carrier)
		}
		byCarrier[s.Carrier] = append(byCarrier[s.Carrier], s)
	}

	// swap verdicts keyed per (cell, carrier): cell id -> counterpart.
	swapPartner := make(map[cellKey]string)

	for _, carrier := range carrierOrder {
		carrierSectors := byCarrier[carrier]

		targets := make([]directionTarget, 0, len(carrierSectors))
		for _, s := range carrierSectors {
			targets = append(targets, directionTarget{
				cellID:  s.CellID,
				azimuth: NormalizeAngle(s.PlannedAzimuth),
				point:   s.Point(),
			})
		}

		// Pass 1: histograms for every evaluable cell.
		candidates := make(map[string]swapCandidate)
		order := make([]string, 0, len(carrierSectors))
		for _, s := range carrierSectors {
			ct := types[cellKey{s.CellID, carrier}]
			if ct.typ == CellTypeMIMO {
				continue
			}
			samples := ds.SamplesForCell(s.SiteID, s.CellID)
			if len(samples) < e.Params.Swap.MinSamples {
				continue
			}
			candidates[s.CellID] = buildCandidate(samples, targets, ct, s.CellID, e.Params.Swap.Beamwidth)
			order = append(order, s.CellID)
		}

		// Pass 2: mutual-candidate resolution.
		for _, cellID := range order {
			cand := candidates[cellID]
			if cand.total == 0 || cand.target == cellID {
				continue
			}
			tc, ok := candidates[cand.target]
			if !ok || tc.total == 0 || tc.target != cellID {
				continue
			}
			if cand.isSplit || tc.isSplit {
				// Swaps touching a split cell are only valid between the
				// two configured partners, and both sides must be genuine
				// splits.
				if !cand.isSplit || !tc.isSplit || cand.target != cand.splitPartner {
					continue
				}
			} else if !confirmSwap(cand, tc) {
				continue
			}
			key := cellKey{cellID, carrier}
			targetKey := cellKey{cand.target, carrier}
			if _, done := swapPartner[key]; !done {
				swapPartner[key] = cand.target
			}
			if _, done := swapPartner[targetKey]; !done {
				swapPartner[targetKey] = cellID
			}
		}
	}

	// Emission: one row per distinct cell id. When the same cell id exists
	// on several carriers, a confirmed swap on any carrier wins; otherwise
	// the first EP row's status stands.
	out := make([]SwapResult, 0, len(sectors))
	index := make(map[string]int, len(sectors))
	for _, s := range sectors {
		key := cellKey{s.CellID, s.Carrier}
		ct := types[key]
		row := SwapResult{SiteID: siteID, CellID: s.CellID, CellType: ct.typ}

		samples := ds.SamplesForCell(s.SiteID, s.CellID)
		switch {
		case ct.typ == CellTypeMIMO:
			row.Result = SwapNotFoundMIMO
		case len(samples) == 0:
			row.Result = SwapNoMRData
		case len(samples) < e.Params.Swap.MinSamples:
			row.Result = SwapFewPoints
		default:
			if partner, ok := swapPartner[key]; ok {
				row.Result = SwapVerdict(s.CellID, partner)
			} else {
				row.Result = SwapNotFound
			}
		}

		if prev, ok := index[s.CellID]; ok {
			if !IsSwapVerdict(out[prev].Result) && IsSwapVerdict(row.Result) {
				out[prev] = row
			}
			continue
		}
		index[s.CellID] = len(out)
		out = append(out, row)
	}
	return out
}

// DetectSwaps produces the sector-swap table for the whole network. Sites
// are independent and processed concurrently; per-site result blocks are
// concatenated in EP site order so reruns are byte-identical.
func (e *Engine) DetectSwaps(ds *Dataset) []SwapResult {
	sites := ds.Sites()
	blocks := make([][]SwapResult, len(sites))
	e.runUnits("swap", len(sites), func(i int) {
		defer e.guardUnit(func() {
			blocks[i] = placeholderSwapRows(ds, sites[i])
		})()
		blocks[i] = e.detectSite(ds, sites[i])
	})

	var out []SwapResult
	for _, b := range blocks {
		out = append(out, b...)
	}
	return out
}

// placeholderSwapRows keeps the row-count contract for a site whose
// processing failed unexpectedly.
func placeholderSwapRows(ds *Dataset, siteID string) []SwapResult {
	sectors := ds.SiteSectors(siteID)
	out := make([]SwapResult, 0, len(sectors))
	seen := make(map[string]bool, len(sectors))
	for _, s := range sectors {
		if seen[s.CellID] {
			continue
		}
		seen[s.CellID] = true
		out = append(out, SwapResult{SiteID: siteID, CellID: s.CellID, Result: StatusError})
	}
	return out
}
