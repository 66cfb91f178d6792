package fatigue

import (
	"math"
	"testing"
	"time"
	_ "time/tzdata" // Embed timezone database for CI/minimal containers

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

func tripAt(id int64, start, end time.Time) domain.Trip {
	return domain.Trip{
		ID:         id,
		DriverID:   "dev-test",
		BeginTime:  start.Unix(),
		EndTime:    end.Unix(),
		TravelTime: end.Unix() - start.Unix(),
	}
}

func utc(day, hour, minute int) time.Time {
	return time.Date(2024, 1, day, hour, minute, 0, 0, time.UTC)
}

func TestNightWindow_NightMinutes(t *testing.T) {
	w := DefaultNightWindow()

	tests := []struct {
		name  string
		trips []domain.Trip
		want  float64
	}{
		{
			name:  "daytime trip",
			trips: []domain.Trip{tripAt(1, utc(15, 8, 0), utc(15, 18, 0))},
			want:  0,
		},
		{
			name:  "starts before window, ends after midnight",
			trips: []domain.Trip{tripAt(1, utc(15, 22, 30), utc(16, 0, 30))},
			want:  90,
		},
		{
			name:  "22:00 to 02:00",
			trips: []domain.Trip{tripAt(1, utc(15, 22, 0), utc(16, 2, 0))},
			want:  180,
		},
		{
			name:  "crosses window end",
			trips: []domain.Trip{tripAt(1, utc(16, 4, 15), utc(16, 6, 0))},
			want:  45,
		},
		{
			name:  "zero duration trip",
			trips: []domain.Trip{tripAt(1, utc(16, 1, 0), utc(16, 1, 0))},
			want:  0,
		},
		{
			name:  "spans two nights",
			trips: []domain.Trip{tripAt(1, utc(15, 20, 0), utc(17, 6, 0))},
			want:  720,
		},
		{
			name: "sums across trips",
			trips: []domain.Trip{
				tripAt(1, utc(15, 23, 10), utc(15, 23, 40)),
				tripAt(2, utc(16, 3, 0), utc(16, 3, 20)),
				tripAt(3, utc(16, 12, 0), utc(16, 13, 0)),
			},
			want: 50,
		},
		{
			name:  "no trips",
			trips: nil,
			want:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := w.NightMinutes(tt.trips)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("NightMinutes() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNightWindow_LocalClock(t *testing.T) {
	shanghai, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	w := NightWindow{StartHour: 23, EndHour: 5, Location: shanghai}

	// 14:00-17:00 UTC is 22:00-01:00 in Shanghai (UTC+8)
	trip := tripAt(1, utc(15, 14, 0), utc(15, 17, 0))
	if got := w.NightMinutes([]domain.Trip{trip}); got != 120 {
		t.Errorf("NightMinutes() = %v, want 120", got)
	}

	// The same trip is daytime on the UTC clock
	if got := DefaultNightWindow().NightMinutes([]domain.Trip{trip}); got != 0 {
		t.Errorf("UTC NightMinutes() = %v, want 0", got)
	}
}

func TestNightWindow_DSTFallBack(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}
	w := NightWindow{StartHour: 23, EndHour: 5, Location: ny}

	// 2024-11-03 01:00 EDT repeats as 01:00 EST; 00:00 EDT -> 03:00 EST is 4 real hours
	start := time.Date(2024, 11, 3, 0, 0, 0, 0, ny)
	end := start.Add(4 * time.Hour)
	got := w.Overlap(start, end)
	if got != 4*time.Hour {
		t.Errorf("Overlap() = %v, want 4h", got)
	}
}

func TestNightWindow_ContainsHour(t *testing.T) {
	tests := []struct {
		name   string
		window NightWindow
		hour   int
		want   bool
	}{
		{"wrapping start", NightWindow{StartHour: 23, EndHour: 5}, 23, true},
		{"wrapping midnight", NightWindow{StartHour: 23, EndHour: 5}, 0, true},
		{"wrapping last hour", NightWindow{StartHour: 23, EndHour: 5}, 4, true},
		{"wrapping end exclusive", NightWindow{StartHour: 23, EndHour: 5}, 5, false},
		{"wrapping daytime", NightWindow{StartHour: 23, EndHour: 5}, 12, false},
		{"plain range", NightWindow{StartHour: 1, EndHour: 4}, 2, true},
		{"plain range end", NightWindow{StartHour: 1, EndHour: 4}, 4, false},
		{"empty window", NightWindow{StartHour: 3, EndHour: 3}, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.window.ContainsHour(tt.hour); got != tt.want {
				t.Errorf("ContainsHour(%d) = %v, want %v", tt.hour, got, tt.want)
			}
		})
	}
}
