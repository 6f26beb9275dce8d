package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		lat     float64
		lon     float64
		wantErr bool
	}{
		{"valid", "-33.45,-70.67", -33.45, -70.67, false},
		{"with spaces", " 40.42 , -3.70 ", 40.42, -3.70, false},
		{"lat boundary", "-90,0", -90, 0, false},
		{"lon boundary", "0,180", 0, 180, false},
		{"both boundaries", "90,-180", 90, -180, false},
		{"lat out of range", "91,0", 0, 0, true},
		{"lon out of range", "0,181", 0, 0, true},
		{"lat below range", "-90.001,0", 0, 0, true},
		{"not numbers", "aquí,allá", 0, 0, true},
		{"missing part", "12.5", 0, 0, true},
		{"too many parts", "1,2,3", 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := parseCoordinates(tt.raw)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseCoordinates(%q) succeeded, want error", tt.raw)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseCoordinates(%q): %v", tt.raw, err)
			}
			if lat != tt.lat || lon != tt.lon {
				t.Errorf("parseCoordinates(%q) = (%v, %v), want (%v, %v)", tt.raw, lat, lon, tt.lat, tt.lon)
			}
		})
	}
}

func TestRateLimiter(t *testing.T) {
	rl := newRateLimiter()
	for range 30 {
		if !rl.allow("10.0.0.1") {
			t.Fatal("request denied before the limit")
		}
	}
	if rl.allow("10.0.0.1") {
		t.Error("request allowed past the limit")
	}
	if !rl.allow("10.0.0.2") {
		t.Error("limit leaked across IPs")
	}
}

func TestHandleStatus(t *testing.T) {
	s := &server{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	for _, path := range []string{"/", "/test"} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			s.handleStatus(rec, httptest.NewRequest(http.MethodGet, path, nil))
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var body struct {
				Status string `json:"status"`
			}
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("decoding body: %v", err)
			}
			if body.Status != "ok" {
				t.Errorf("status field = %q, want ok", body.Status)
			}
		})
	}
}

func TestHandleStatusUnknownPathIsJSON(t *testing.T) {
	s := &server{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}

	rec := httptest.NewRecorder()
	s.handleStatus(rec, httptest.NewRequest(http.MethodGet, "/no-such-route", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("404 body is not JSON: %v", err)
	}
	if body["error"] != "Recurso no encontrado" {
		t.Errorf("error field = %q", body["error"])
	}
}
