package main

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/cellwatch/cellaudit/radio"
)

// newHTTPServer exposes a finished analysis run as read-only JSON.
func newHTTPServer(res *radio.Results) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{
			"status":       "ok",
			"generated_at": res.GeneratedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	})

	mux.HandleFunc("/api/results/azimuth", jsonHandler(res.Azimuth))
	mux.HandleFunc("/api/results/swaps", jsonHandler(res.Swaps))
	mux.HandleFunc("/api/results/coverage", jsonHandler(res.Coverage))
	mux.HandleFunc("/api/results/neighbors", jsonHandler(res.Neighbors))
	mux.HandleFunc("/api/results/coordinates", jsonHandler(res.Coordinates))
	mux.HandleFunc("/api/results/summary", jsonHandler(map[string]any{
		"coverage": res.CoverageSummary,
		"swaps":    res.SwapSummary,
	}))
	mux.HandleFunc("/api/results/azimuth.geojson", jsonHandler(radio.AzimuthFeatureCollection(res.Azimuth)))
	mux.HandleFunc("/api/results/coordinates.geojson", jsonHandler(radio.CoordinateFeatureCollection(res.Coordinates)))

	return mux
}

func jsonHandler(v any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.Printf("[HTTP] encoding response for %s: %v", r.URL.Path, err)
		}
	}
}
