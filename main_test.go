package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/cellwatch/cellaudit/radio"
)

func TestLoadConfigOrDefaults(t *testing.T) {
	// Missing default path falls back to defaults.
	cfg, err := loadConfigOrDefaults(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("loadConfigOrDefaults: %v", err)
	}
	if cfg.Analysis.Swap.MinSamples != radio.DefaultParams().Swap.MinSamples {
		t.Errorf("MinSamples = %d, want default", cfg.Analysis.Swap.MinSamples)
	}

	// An existing file is loaded and validated.
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("analysis:\n  swap:\n    min_samples: 77\n"), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err = loadConfigOrDefaults(path)
	if err != nil {
		t.Fatalf("loadConfigOrDefaults: %v", err)
	}
	if cfg.Analysis.Swap.MinSamples != 77 {
		t.Errorf("MinSamples = %d, want 77", cfg.Analysis.Swap.MinSamples)
	}
}

func TestWriteResults(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	res := &radio.Results{
		Azimuth: []radio.AzimuthResult{
			{SiteID: "S1", CellID: "C1", Carrier: "L1800", Status: radio.StatusLessMR},
		},
		Swaps: []radio.SwapResult{
			{SiteID: "S1", CellID: "C1", Result: radio.SwapNoMRData},
		},
	}

	if err := writeResults(res, dir); err != nil {
		t.Fatalf("writeResults: %v", err)
	}

	for _, name := range []string{
		"azimuth.json", "swaps.json", "coverage.json", "neighbors.json",
		"coordinates.json", "summary.json", "azimuth.geojson", "coordinates.geojson",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Errorf("missing output file %s: %v", name, err)
			continue
		}
		var v interface{}
		if err := json.Unmarshal(data, &v); err != nil {
			t.Errorf("%s is not valid JSON: %v", name, err)
		}
	}

	// The sentinel contract survives the file roundtrip.
	data, err := os.ReadFile(filepath.Join(dir, "azimuth.json"))
	if err != nil {
		t.Fatal(err)
	}
	var rows []map[string]interface{}
	if err := json.Unmarshal(data, &rows); err != nil {
		t.Fatal(err)
	}
	if rows[0]["actual_azimuth"] != radio.StatusLessMR {
		t.Errorf("actual_azimuth = %v, want sentinel %q", rows[0]["actual_azimuth"], radio.StatusLessMR)
	}
}
