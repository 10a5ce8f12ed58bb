package radio

// overshootPctThreshold: a sector serving more than this share of its
// traffic beyond 1000 m is overshooting its intended footprint.
const overshootPctThreshold = 10.0

// CoverageSummary aggregates the coverage table for dashboards.
type CoverageSummary struct {
	TotalCells        int     `json:"total_cells"`
	PoorCoverageCells int     `json:"poor_coverage_cells"`
	PoorCoveragePct   float64 `json:"poor_coverage_pct"`
	AverageRSRP       float64 `json:"average_rsrp"`
	OvershootingCells int     `json:"overshooting_cells"`
	OvershootingPct   float64 `json:"overshooting_pct"`
}

// SummarizeCoverage reduces a coverage table to headline numbers. The
// average RSRP is taken over every well-formed MR row in the snapshot,
// not just attributed ones, matching the upstream report.
func SummarizeCoverage(results []CoverageResult, ds *Dataset) CoverageSummary {
	sum := CoverageSummary{TotalCells: len(results)}
	for _, r := range results {
		if r.Status == "Poor Coverage" {
			sum.PoorCoverageCells++
		}
		if r.DistancePct[4] > overshootPctThreshold {
			sum.OvershootingCells++
		}
	}
	if sum.TotalCells > 0 {
		sum.PoorCoveragePct = round1(float64(sum.PoorCoverageCells) / float64(sum.TotalCells) * 100)
		sum.OvershootingPct = round1(float64(sum.OvershootingCells) / float64(sum.TotalCells) * 100)
	}
	sum.AverageRSRP = round1(ds.MeanRSRP())
	return sum
}

// SwapSummary aggregates the swap table.
type SwapSummary struct {
	TotalCells  int     `json:"total_cells"`
	TotalSites  int     `json:"total_sites"`
	SwapCells   int     `json:"swap_cells"`
	SwapCellPct float64 `json:"swap_cell_pct"`
	SwapSites   int     `json:"swap_sites"`
	SwapSitePct float64 `json:"swap_site_pct"`
	SplitCells  int     `json:"split_cells"`
	MIMOCells   int     `json:"mimo_cells"`
	SplitSwaps  int     `json:"split_swaps"`
	NormalSwaps int     `json:"normal_swaps"`
}

// SummarizeSwaps reduces a swap table to headline numbers.
func SummarizeSwaps(results []SwapResult) SwapSummary {
	sum := SwapSummary{TotalCells: len(results)}
	sites := make(map[string]bool)
	swapSites := make(map[string]bool)
	for _, r := range results {
		sites[r.SiteID] = true
		switch r.CellType {
		case CellTypeSplit:
			sum.SplitCells++
		case CellTypeMIMO:
			sum.MIMOCells++
		}
		if IsSwapVerdict(r.Result) {
			sum.SwapCells++
			swapSites[r.SiteID] = true
			if r.CellType == CellTypeSplit {
				sum.SplitSwaps++
			} else {
				sum.NormalSwaps++
			}
		}
	}
	sum.TotalSites = len(sites)
	sum.SwapSites = len(swapSites)
	if sum.TotalCells > 0 {
		sum.SwapCellPct = round1(float64(sum.SwapCells) / float64(sum.TotalCells) * 100)
	}
	if sum.TotalSites > 0 {
		sum.SwapSitePct = round1(float64(sum.SwapSites) / float64(sum.TotalSites) * 100)
	}
	return sum
}
