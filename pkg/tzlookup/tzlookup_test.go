package tzlookup

import (
	"errors"
	"log/slog"
	"testing"
)

func TestTimezoneForCountryHint(t *testing.T) {
	l := New(slog.Default())
	tests := []struct {
		country string
		want    string
	}{
		{"CL", "America/Santiago"},
		{"ES", "Europe/Madrid"},
		{"RU", "Europe/Moscow"}, // representative zone is the first candidate
		{"US", "America/New_York"},
		{"JP", "Asia/Tokyo"},
	}
	for _, tt := range tests {
		t.Run(tt.country, func(t *testing.T) {
			got, err := l.TimezoneFor(0, 0, tt.country)
			if err != nil {
				t.Fatalf("TimezoneFor: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimezoneFor(%s) = %q, want %q", tt.country, got, tt.want)
			}
		})
	}
}

func TestTimezoneFromLongitude(t *testing.T) {
	l := New(slog.Default())
	tests := []struct {
		name string
		lon  float64
		want string
	}{
		{"greenwich", 0, "Etc/GMT"},
		{"central europe", 15, "Etc/GMT-1"},
		{"santiago-ish", -70.67, "Etc/GMT+5"},
		{"tokyo-ish", 139.69, "Etc/GMT-9"},
		{"date line west", -180, "Etc/GMT+12"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.TimezoneFor(0, tt.lon, "")
			if err != nil {
				t.Fatalf("TimezoneFor: %v", err)
			}
			if got != tt.want {
				t.Errorf("TimezoneFor(lon=%v) = %q, want %q", tt.lon, got, tt.want)
			}
		})
	}
}

func TestUnknownCountryFallsBackToCoordinates(t *testing.T) {
	l := New(slog.Default())
	got, err := l.TimezoneFor(0, 15, "XX")
	if err != nil {
		t.Fatalf("TimezoneFor: %v", err)
	}
	if got != "Etc/GMT-1" {
		t.Errorf("TimezoneFor = %q, want longitude fallback", got)
	}
}

func TestOutOfRangeLongitude(t *testing.T) {
	l := New(slog.Default())
	if _, err := l.TimezoneFor(0, 181, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}
