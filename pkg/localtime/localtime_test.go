package localtime

import (
	"testing"
	"time"
)

func at(hour, minute int) time.Time {
	return time.Date(2024, time.June, 8, hour, minute, 0, 0, time.UTC)
}

func TestMomentBoundaries(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{5, 0, "de la mañana"},
		{11, 59, "de la mañana"},
		{12, 0, "de la tarde"},
		{19, 59, "de la tarde"},
		{20, 0, "de la noche"},
		{4, 59, "de la noche"},
		{0, 0, "de la noche"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Moment(at(tt.hour, tt.minute))
			if got != tt.want {
				t.Errorf("Moment(%02d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestClock(t *testing.T) {
	if got := Clock(at(9, 5)); got != "09:05" {
		t.Errorf("Clock = %q, want 09:05", got)
	}
}

func TestClock12(t *testing.T) {
	tests := []struct {
		hour, minute int
		want         string
	}{
		{16, 30, "04:30 p.m."},
		{9, 5, "09:05 a.m."},
		{0, 0, "12:00 a.m."},
		{12, 0, "12:00 p.m."},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got := Clock12(at(tt.hour, tt.minute))
			if got != tt.want {
				t.Errorf("Clock12(%02d:%02d) = %q, want %q", tt.hour, tt.minute, got, tt.want)
			}
		})
	}
}

func TestWeekdayAndLongDate(t *testing.T) {
	// 2024-06-08 was a Saturday.
	d := at(10, 0)
	if got := Weekday(d); got != "sábado" {
		t.Errorf("Weekday = %q, want sábado", got)
	}
	if got := LongDate(d); got != "sábado, 8 de junio de 2024" {
		t.Errorf("LongDate = %q", got)
	}
}

func TestOffsetDisplay(t *testing.T) {
	tests := []struct {
		name   string
		offset int // seconds east of UTC
		want   string
	}{
		{"UTC", 0, "GMT+00:00"},
		{"Santiago winter", -4 * 3600, "GMT-04:00"},
		{"Kathmandu", 5*3600 + 45*60, "GMT+05:45"},
		{"Tokyo", 9 * 3600, "GMT+09:00"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := time.FixedZone(tt.name, tt.offset)
			got := OffsetDisplay(time.Date(2024, time.June, 8, 12, 0, 0, 0, loc))
			if got != tt.want {
				t.Errorf("OffsetDisplay = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNowIn(t *testing.T) {
	now, err := NowIn("America/Santiago")
	if err != nil {
		t.Fatalf("NowIn: %v", err)
	}
	if now.Location().String() != "America/Santiago" {
		t.Errorf("location = %v", now.Location())
	}

	if _, err := NowIn("Not/AZone"); err == nil {
		t.Error("NowIn(Not/AZone) should fail")
	}
}
