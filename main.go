package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/cellwatch/cellaudit/radio"
)

var (
	configFile   = flag.String("config", "config.yaml", "Path to configuration file")
	snapshotFile = flag.String("snapshot", "snapshot.json", "Path to EP/MR snapshot file")
	outDir       = flag.String("out", "results", "Directory for result tables")
	enableMQTT   = flag.Bool("mqtt", false, "Publish results over MQTT")
	enableHTTP   = flag.Bool("http", false, "Serve results over HTTP after analysis")
	httpPort     = flag.Int("port", 8080, "HTTP listen port")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("[MAIN] %v", err)
	}
}

func run() error {
	cfg, err := loadConfigOrDefaults(*configFile)
	if err != nil {
		return err
	}

	snap, err := LoadSnapshot(*snapshotFile)
	if err != nil {
		return err
	}
	log.Printf("[MAIN] snapshot loaded: %d EP rows, %d MR rows", len(snap.Sectors), len(snap.Samples))

	engine := radio.NewEngine(cfg.Analysis, cfg.Groups)
	engine.Progress = logProgress

	var pub *radio.Publisher
	if *enableMQTT {
		client, err := radio.InitMQTT(cfg.MQTT)
		if err != nil {
			return fmt.Errorf("connecting to MQTT broker: %w", err)
		}
		if client == nil {
			return fmt.Errorf("-mqtt set but no broker configured in %s", *configFile)
		}
		pub = radio.NewPublisher(client, cfg.MQTT.PublishPrefix)
		engine.Progress = func(stage string, done, total int) {
			logProgress(stage, done, total)
			pub.PublishProgress(stage, done, total)
		}
	}

	start := time.Now()
	results, err := engine.RunAll(context.Background(), snap.Dataset())
	if err != nil {
		return fmt.Errorf("running analyses: %w", err)
	}
	log.Printf("[MAIN] analysis complete in %s", time.Since(start).Round(time.Millisecond))

	if err := writeResults(results, *outDir); err != nil {
		return err
	}

	if pub != nil {
		if err := pub.PublishResults(results); err != nil {
			return fmt.Errorf("publishing results: %w", err)
		}
		log.Printf("[MAIN] results published to MQTT prefix %q", cfg.MQTT.PublishPrefix)
	}

	if *enableHTTP {
		addr := fmt.Sprintf(":%d", *httpPort)
		log.Printf("[MAIN] serving results on %s", addr)
		return http.ListenAndServe(addr, newHTTPServer(results))
	}

	return nil
}

// loadConfigOrDefaults falls back to built-in defaults when the default
// config path does not exist; an explicit -config path must exist.
func loadConfigOrDefaults(path string) (*radio.Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[MAIN] config %s not found, using defaults", path)
		cfg := &radio.Config{Analysis: radio.DefaultParams()}
		return cfg, nil
	}
	return radio.LoadConfig(path)
}

func logProgress(stage string, done, total int) {
	if done == total || done%200 == 0 {
		log.Printf("[PROGRESS] %s: %d/%d", stage, done, total)
	}
}

// writeResults writes one JSON table per analysis plus GeoJSON overlays.
func writeResults(res *radio.Results, dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output dir: %w", err)
	}

	tables := map[string]any{
		"azimuth.json":     res.Azimuth,
		"swaps.json":       res.Swaps,
		"coverage.json":    res.Coverage,
		"neighbors.json":   res.Neighbors,
		"coordinates.json": res.Coordinates,
		"summary.json": map[string]any{
			"coverage":     res.CoverageSummary,
			"swaps":        res.SwapSummary,
			"generated_at": res.GeneratedAt,
		},
		"azimuth.geojson":     radio.AzimuthFeatureCollection(res.Azimuth),
		"coordinates.geojson": radio.CoordinateFeatureCollection(res.Coordinates),
	}

	for name, v := range tables {
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("encoding %s: %w", name, err)
		}
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", name, err)
		}
	}

	log.Printf("[MAIN] wrote %d result files to %s", len(tables), dir)
	return nil
}
