package radio

import (
	"testing"
)

// neighborNetwork lays sites along an eastward line at the given spacings
// in meters from an origin site.
func neighborNetwork(spacings []float64, carriers []string) []Sector {
	sectors := []Sector{
		{SiteID: "S0", CellID: "C1", Carrier: "L1800", Latitude: 23.0, Longitude: 90.0, PlannedAzimuth: 90},
	}
	for i, d := range spacings {
		lat, lon := pointAt(23.0, 90.0, 90, d)
		carrier := "L1800"
		if carriers != nil {
			carrier = carriers[i]
		}
		sectors = append(sectors, Sector{
			SiteID: "S" + string(rune('1'+i)), CellID: "C1", Carrier: carrier,
			Latitude: lat, Longitude: lon, PlannedAzimuth: 270,
		})
	}
	return sectors
}

func TestFindNeighbors_NearestFirstAndCapped(t *testing.T) {
	sectors := neighborNetwork([]float64{1000, 2000, 3000, 4000}, nil)
	p := DefaultParams()
	p.Neighbor.MaxNeighbors = 2
	e := NewEngine(p, GroupConfig{})

	results := e.FindNeighbors(NewDataset(sectors, nil))

	var forS0 []NeighborRelation
	for _, r := range results {
		if r.ServingSite == "S0" {
			forS0 = append(forS0, r)
		}
	}
	if len(forS0) != 2 {
		t.Fatalf("S0 has %d neighbors, want 2", len(forS0))
	}
	if forS0[0].NeighborSite != "S1" || forS0[1].NeighborSite != "S2" {
		t.Errorf("neighbors = %s, %s; want S1, S2 (nearest first)",
			forS0[0].NeighborSite, forS0[1].NeighborSite)
	}
	if forS0[0].Distance >= forS0[1].Distance {
		t.Errorf("distances not ascending: %v, %v", forS0[0].Distance, forS0[1].Distance)
	}
}

func TestFindNeighbors_RadiusExcludesFarSites(t *testing.T) {
	sectors := neighborNetwork([]float64{1000, 6000}, nil)
	e := NewEngine(DefaultParams(), GroupConfig{}) // 5000 m radius

	results := e.FindNeighbors(NewDataset(sectors, nil))
	for _, r := range results {
		if r.ServingSite == "S0" && r.NeighborSite == "S2" {
			t.Errorf("S2 at 6 km reported as neighbor of S0: %+v", r)
		}
	}
}

func TestFindNeighbors_FrequencyTypes(t *testing.T) {
	sectors := neighborNetwork([]float64{1000, 2000}, []string{"L1800", "L2600"})
	e := NewEngine(DefaultParams(), GroupConfig{})

	results := e.FindNeighbors(NewDataset(sectors, nil))
	for _, r := range results {
		if r.ServingSite != "S0" {
			continue
		}
		want := IntraFrequency
		if r.NeighborCarrier != r.ServingCarrier {
			want = InterFrequency
		}
		if r.Type != want {
			t.Errorf("S0 -> %s type = %q, want %q", r.NeighborSite, r.Type, want)
		}
	}
}

func TestFindNeighbors_NoSelfRelation(t *testing.T) {
	// Two colocated sectors of one site are still each other's neighbors;
	// only the sector itself is excluded.
	sectors := []Sector{
		{SiteID: "S0", CellID: "C1", Carrier: "L1800", Latitude: 23.0, Longitude: 90.0, PlannedAzimuth: 0},
		{SiteID: "S0", CellID: "C2", Carrier: "L1800", Latitude: 23.0, Longitude: 90.0, PlannedAzimuth: 120},
	}
	e := NewEngine(DefaultParams(), GroupConfig{})
	results := e.FindNeighbors(NewDataset(sectors, nil))

	if len(results) != 2 {
		t.Fatalf("got %d relations, want 2", len(results))
	}
	for _, r := range results {
		if r.ServingCell == r.NeighborCell {
			t.Errorf("self relation emitted: %+v", r)
		}
		if r.AzimuthDifference != 120 {
			t.Errorf("azimuth difference = %v, want 120", r.AzimuthDifference)
		}
	}
}

func TestFindNeighbors_ServingBlocksInInputOrder(t *testing.T) {
	sectors := neighborNetwork([]float64{1000, 2000}, nil)
	e := NewEngine(DefaultParams(), GroupConfig{})
	results := e.FindNeighbors(NewDataset(sectors, nil))

	// Relations are grouped by serving sector, in EP input order.
	lastServing := -1
	order := map[string]int{"S0": 0, "S1": 1, "S2": 2}
	for _, r := range results {
		idx := order[r.ServingSite]
		if idx < lastServing {
			t.Fatalf("serving blocks out of order: %v", results)
		}
		lastServing = idx
	}
}
