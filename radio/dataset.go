package radio

import (
	"log"
	"math"
)

// Dataset is an immutable snapshot of one EP table and one MR table with
// the join index precomputed. All analyses read from it concurrently; it is
// never written after New.
type Dataset struct {
	// Sectors preserves EP input order. Output tables are emitted in this
	// order, which is what makes identical inputs produce identical tables.
	Sectors []Sector

	samples      []Sample            // all well-formed MR rows
	samplesByKey map[string][]Sample // join key -> attributed samples
	carrierByKey map[string]string   // join key -> resolved carrier

	siteOrder     []string
	sectorsBySite map[string][]Sector

	droppedSamples int
}

// NewDataset indexes an EP/MR snapshot. Malformed MR rows (unusable
// coordinates or non-finite RSRP) are dropped and counted; they never
// abort the batch. MR rows whose join key has no EP match are kept in the
// sample pool for network-wide statistics but attributed to no sector.
func NewDataset(sectors []Sector, samples []Sample) *Dataset {
	d := &Dataset{
		Sectors:       sectors,
		samplesByKey:  make(map[string][]Sample),
		carrierByKey:  make(map[string]string),
		sectorsBySite: make(map[string][]Sector),
	}

	for _, s := range sectors {
		key := s.Key()
		// First EP row wins carrier resolution for an ambiguous key.
		if _, ok := d.carrierByKey[key]; !ok {
			d.carrierByKey[key] = s.Carrier
		}
		if _, ok := d.sectorsBySite[s.SiteID]; !ok {
			d.siteOrder = append(d.siteOrder, s.SiteID)
		}
		d.sectorsBySite[s.SiteID] = append(d.sectorsBySite[s.SiteID], s)
	}

	for _, m := range samples {
		if !ValidPoint(m.Point()) || math.IsNaN(m.RSRP) || math.IsInf(m.RSRP, 0) {
			d.droppedSamples++
			continue
		}
		d.samples = append(d.samples, m)
		key := m.Key()
		if _, ok := d.carrierByKey[key]; ok {
			d.samplesByKey[key] = append(d.samplesByKey[key], m)
		}
	}

	if d.droppedSamples > 0 {
		log.Printf("[DATASET] dropped %d malformed MR rows of %d", d.droppedSamples, len(samples))
	}
	return d
}

// SamplesForCell returns the MR samples attributed to a (site, cell) join
// key, in MR input order. The slice is shared; callers must not mutate it.
func (d *Dataset) SamplesForCell(siteID, cellID string) []Sample {
	return d.samplesByKey[JoinKey(siteID, cellID)]
}

// SamplesForSector returns the samples for a sector only when the carrier
// resolved through the join key matches the sector's carrier. Two carriers
// sharing a (site, cell) key resolve to the first EP row; the other sector
// sees no samples, mirroring the upstream carrier-lookup join.
func (d *Dataset) SamplesForSector(s Sector) []Sample {
	if d.carrierByKey[s.Key()] != s.Carrier {
		return nil
	}
	return d.samplesByKey[s.Key()]
}

// ResolvedCarrier returns the carrier the join key maps to, or "" when the
// key has no EP match.
func (d *Dataset) ResolvedCarrier(siteID, cellID string) string {
	return d.carrierByKey[JoinKey(siteID, cellID)]
}

// Sites returns the distinct site ids in first-appearance EP order.
func (d *Dataset) Sites() []string {
	return d.siteOrder
}

// SiteSectors returns the EP rows of one site in EP input order.
func (d *Dataset) SiteSectors(siteID string) []Sector {
	return d.sectorsBySite[siteID]
}

// DroppedSamples reports how many MR rows were discarded as malformed.
func (d *Dataset) DroppedSamples() int {
	return d.droppedSamples
}

// MeanRSRP returns the mean RSRP across every well-formed MR row in the
// snapshot (attributed or not), or 0 when the snapshot has none.
func (d *Dataset) MeanRSRP() float64 {
	if len(d.samples) == 0 {
		return 0
	}
	var sum float64
	for _, m := range d.samples {
		sum += m.RSRP
	}
	return sum / float64(len(d.samples))
}

// SampleCount reports the number of well-formed MR rows in the snapshot.
func (d *Dataset) SampleCount() int {
	return len(d.samples)
}
