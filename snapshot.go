package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/cellwatch/cellaudit/radio"
)

// Snapshot is the EP/MR exchange format handed over by ingestion
// collaborators: one EP table, one MR table, already column-mapped.
type Snapshot struct {
	Sectors []radio.Sector `json:"sectors"`
	Samples []radio.Sample `json:"samples"`
}

// LoadSnapshot reads and validates a snapshot file.
func LoadSnapshot(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading snapshot: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parsing snapshot JSON: %w", err)
	}

	if len(snap.Sectors) == 0 {
		return nil, fmt.Errorf("snapshot has no EP rows")
	}

	// Duplicate (site, cell, carrier) keys are an upstream defect the
	// engine does not repair; surface them here at the boundary.
	seen := make(map[string]bool, len(snap.Sectors))
	for _, s := range snap.Sectors {
		key := radio.JoinKey(s.SiteID, s.CellID) + "_" + s.Carrier
		if seen[key] {
			log.Printf("[SNAPSHOT] duplicate EP row for site=%s cell=%s carrier=%s", s.SiteID, s.CellID, s.Carrier)
		}
		seen[key] = true
	}

	return &snap, nil
}

// Dataset indexes the snapshot for the engine.
func (s *Snapshot) Dataset() *radio.Dataset {
	return radio.NewDataset(s.Sectors, s.Samples)
}
