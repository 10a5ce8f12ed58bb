package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cellwatch/cellaudit/radio"
)

func testServer() http.Handler {
	return newHTTPServer(&radio.Results{
		Azimuth: []radio.AzimuthResult{
			{SiteID: "S1", CellID: "C1", Carrier: "L1800", PlannedAzimuth: 80,
				ActualAzimuth: 92.5, AzimuthDifference: 12.5, Status: radio.StatusOK},
		},
		Swaps: []radio.SwapResult{
			{SiteID: "S1", CellID: "C1", Result: radio.SwapNotFound},
		},
		GeneratedAt: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC),
	})
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
	if body["generated_at"] == "" {
		t.Error("generated_at missing")
	}
}

func TestAzimuthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results/azimuth", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Content-Type = %q", ct)
	}

	var rows []map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &rows); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if len(rows) != 1 || rows[0]["site_id"] != "S1" {
		t.Errorf("rows = %v", rows)
	}
	if rows[0]["actual_azimuth"] != 92.5 {
		t.Errorf("actual_azimuth = %v, want 92.5", rows[0]["actual_azimuth"])
	}
}

func TestResultEndpoints_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/results/swaps", nil))
	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("status = %d, want 405", rec.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testServer().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/results/summary", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not valid JSON: %v", err)
	}
	if _, ok := body["coverage"]; !ok {
		t.Error("summary missing coverage section")
	}
	if _, ok := body["swaps"]; !ok {
		t.Error("summary missing swaps section")
	}
}
