package radio

import (
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Sector is one logical radiating beam from the engineering-parameter (EP)
// table, keyed by (site, cell, carrier). EP rows are reference data and are
// never mutated by an analysis run.
type Sector struct {
	SiteID         string  `json:"site_id" yaml:"site_id"`
	CellID         string  `json:"cell_id" yaml:"cell_id"`
	Carrier        string  `json:"carrier" yaml:"carrier"`
	Latitude       float64 `json:"latitude" yaml:"latitude"`
	Longitude      float64 `json:"longitude" yaml:"longitude"`
	PlannedAzimuth float64 `json:"planned_azimuth" yaml:"planned_azimuth"`
}

// Point returns the sector location as an orb.Point (lon, lat order).
func (s Sector) Point() orb.Point {
	return orb.Point{s.Longitude, s.Latitude}
}

// Key returns the (site, cell) join key shared with the MR table.
func (s Sector) Key() string {
	return JoinKey(s.SiteID, s.CellID)
}

// Sample is one geolocated measurement-report (MR) row. The carrier is not
// carried on the row; it is resolved through the EP join key.
type Sample struct {
	SiteID    string  `json:"site_id"`
	CellID    string  `json:"cell_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RSRP      float64 `json:"rsrp"`
}

// Point returns the sample location as an orb.Point (lon, lat order).
func (m Sample) Point() orb.Point {
	return orb.Point{m.Longitude, m.Latitude}
}

// Key returns the (site, cell) join key used against the EP table.
func (m Sample) Key() string {
	return JoinKey(m.SiteID, m.CellID)
}

// JoinKey builds the composite key joining MR rows to EP rows. The format is
// load-bearing: upstream tools produce and compare exactly this string.
func JoinKey(siteID, cellID string) string {
	return siteID + "_" + cellID
}

// SplitPair declares a sector split: two logical cells (parent/child)
// sharing one physical antenna on the given carrier.
type SplitPair struct {
	ParentID string `yaml:"parent" json:"parent"`
	ChildID  string `yaml:"child" json:"child"`
	Carrier  string `yaml:"carrier" json:"carrier"`
}

// MIMOGroup declares a massive-MIMO group: four beam cells sharing one
// antenna array on the given carrier.
type MIMOGroup struct {
	Beams   []string `yaml:"beams" json:"beams"`
	Carrier string   `yaml:"carrier" json:"carrier"`
}

// GroupConfig is the static split/MIMO configuration. It is injected into
// the engine as an immutable parameter; the engine never reads it from disk.
type GroupConfig struct {
	SectorSplits []SplitPair `yaml:"sector_splits" json:"sector_splits"`
	MassiveMIMO  []MIMOGroup `yaml:"massive_mimo" json:"massive_mimo"`
}

// Cell type labels reported by the swap detector.
const (
	CellTypeNone  = ""
	CellTypeSplit = "Sector Split"
	CellTypeMIMO  = "Massive MIMO"
)

// Statuses shared across result tables.
const (
	StatusOK     = "OK"
	StatusLessMR = "Less Number of MR"
	StatusNoMR   = "No MR Data"
	StatusNoEP   = "No EP Data"
	// StatusError marks a placeholder row substituted for a unit of work
	// that failed unexpectedly. The row-count contract still holds.
	StatusError = "Analysis Error"
)

// AzimuthResult is one row of the actual-azimuth table. ActualAzimuth and
// AzimuthDifference are only meaningful when Status is StatusOK; JSON
// marshaling substitutes the upstream sentinel string otherwise.
type AzimuthResult struct {
	SiteID            string  `json:"site_id"`
	CellID            string  `json:"cell_id"`
	Carrier           string  `json:"carrier"`
	PlannedAzimuth    float64 `json:"planned_azimuth"`
	ActualAzimuth     float64 `json:"-"`
	AzimuthDifference float64 `json:"-"`
	Latitude          float64 `json:"result_lat"`
	Longitude         float64 `json:"result_lon"`
	Status            string  `json:"status"`
}

// MarshalJSON emits the sentinel string in the azimuth columns for rows
// where no estimate was possible, matching the table contract consumers of
// the upstream tool already parse.
func (r AzimuthResult) MarshalJSON() ([]byte, error) {
	type alias AzimuthResult
	out := struct {
		alias
		ActualAzimuth     interface{} `json:"actual_azimuth"`
		AzimuthDifference interface{} `json:"azimuth_difference"`
	}{alias: alias(r)}
	if r.Status == StatusOK {
		out.ActualAzimuth = r.ActualAzimuth
		out.AzimuthDifference = r.AzimuthDifference
	} else {
		out.ActualAzimuth = StatusLessMR
		out.AzimuthDifference = StatusLessMR
	}
	return json.Marshal(out)
}

// SwapResult is one row of the sector-swap table.
type SwapResult struct {
	SiteID   string `json:"site_id"`
	CellID   string `json:"cell_id"`
	Result   string `json:"result"`
	CellType string `json:"cell_type"`
}

// CoverageResult is one row of the coverage table. DistancePct and RSRPPct
// are positional: nearest/strongest bin first, percentages to one decimal.
type CoverageResult struct {
	SiteID       string     `json:"site_id"`
	CellID       string     `json:"cell_id"`
	Carrier      string     `json:"carrier"`
	DistancePct  [5]float64 `json:"distance_pct"`
	RSRPPct      [5]float64 `json:"rsrp_pct"`
	OverallScore float64    `json:"overall_score"`
	SampleCount  int        `json:"sample_count"`
	Status       string     `json:"status"`
}

// Neighbor relation frequency types.
const (
	IntraFrequency = "Intra-Frequency"
	InterFrequency = "Inter-Frequency"
)

// NeighborRelation is one row of the neighbor table: a serving sector and
// one of its nearest in-range neighbors.
type NeighborRelation struct {
	ServingSite       string  `json:"serving_site"`
	ServingCell       string  `json:"serving_cell"`
	NeighborSite      string  `json:"neighbor_site"`
	NeighborCell      string  `json:"neighbor_cell"`
	Distance          float64 `json:"distance"`
	AzimuthDifference float64 `json:"azimuth_difference"`
	Type              string  `json:"type"`
	ServingCarrier    string  `json:"serving_carrier"`
	NeighborCarrier   string  `json:"neighbor_carrier"`
}

// CoordinateResult is one row of the actual-coordinates table: the site
// position inferred from the densest knot of MR samples near the sector.
type CoordinateResult struct {
	SiteID      string  `json:"site_id"`
	CellID      string  `json:"cell_id"`
	Carrier     string  `json:"carrier"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	SampleCount int     `json:"sample_count"`
	Status      string  `json:"status"`
}

// SwapVerdict formats the paired swap result string for two cell ids.
func SwapVerdict(cellID, partnerID string) string {
	return fmt.Sprintf("Sector Swap Found Between %s and %s", cellID, partnerID)
}

// ProgressFunc receives advisory progress at coarse (per-site or
// per-sector) granularity. done is monotonically increasing per stage.
// Implementations must be safe to call from multiple goroutines.
type ProgressFunc func(stage string, done, total int)
