package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/fatigue"
)

func newAnalysis(trips *MockTripRepository, drivers *MockDriverRepository, pub *MockPublisher) AnalysisService {
	return NewAnalysisService(
		trips,
		NewDriverService(drivers, time.UTC),
		fatigue.DefaultPolicy(),
		pub,
		time.Second,
		quietLogger(),
	)
}

// morningShift is one old trip plus three recent trips merged into a
// single 330 minute segment by sub-threshold gaps.
func morningShift() *MockTripRepository {
	return NewMockTripRepository(
		trip(1, at(10, 9, 0), at(10, 10, 0)),
		trip(2, at(15, 6, 0), at(15, 8, 0)),
		trip(3, at(15, 8, 10), at(15, 10, 10)),
		trip(4, at(15, 10, 15), at(15, 11, 30)),
	)
}

func TestAnalysisService_Analyze(t *testing.T) {
	pub := NewMockPublisher()
	svc := newAnalysis(morningShift(), NewMockDriverRepository(), pub)

	now := at(15, 12, 0)
	got, err := svc.Analyze(context.Background(), domain.AnalysisRequest{DriverID: "dev-1", Now: now})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	want := domain.DrivingPatternSummary{
		TotalTrips:               4,
		TotalDrivingMinutes:      375,
		AvgTripMinutes:           93.8,
		NightDrivingPct:          0,
		ContinuousIncidentCount:  1,
		LongestContinuousMinutes: 330,
	}
	if got.Patterns != want {
		t.Errorf("Patterns = %+v, want %+v", got.Patterns, want)
	}

	if got.Recent.Trips != 3 || got.Recent.DrivingMinutes != 315 || got.Recent.LongestContinuousMinutes != 330 {
		t.Errorf("Recent = %+v", got.Recent)
	}
	if got.Recent.WindowHours != 24 || got.Recent.IsNightNow {
		t.Errorf("Recent window = %+v", got.Recent)
	}
	if got.Assessment.Level != domain.FatigueModerate {
		t.Errorf("Level = %s, want moderate", got.Assessment.Level)
	}
	if len(got.Segments) != 2 {
		t.Errorf("len(Segments) = %d, want 2", len(got.Segments))
	}
	if got.Window.DaysBack != domain.DefaultDaysBack || !got.Window.To.Equal(now) {
		t.Errorf("Window = %+v", got.Window)
	}
	if !got.Window.From.Equal(now.AddDate(0, 0, -7)) {
		t.Errorf("Window.From = %v", got.Window.From)
	}

	if !pub.wait(time.Second) {
		t.Fatal("expected a fatigue alert")
	}
	pub.mu.Lock()
	defer pub.mu.Unlock()
	if pub.alerts[0].Level != domain.FatigueModerate || pub.alerts[0].DriverID != "dev-1" {
		t.Errorf("alert = %+v", pub.alerts[0])
	}
}

func TestAnalysisService_Analyze_DriverTimezone(t *testing.T) {
	drivers := NewMockDriverRepository()
	drivers.profiles["dev-1"] = &domain.DriverProfile{DriverID: "dev-1", Timezone: "Asia/Shanghai"}

	// 15:00-17:00 UTC is 23:00-01:00 in Shanghai
	trips := NewMockTripRepository(trip(1, at(14, 15, 0), at(14, 17, 0)))
	pub := NewMockPublisher()
	svc := newAnalysis(trips, drivers, pub)

	got, err := svc.Analyze(context.Background(), domain.AnalysisRequest{DriverID: "dev-1", Now: at(14, 18, 0)})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}

	if got.Patterns.NightDrivingPct != 100 {
		t.Errorf("NightDrivingPct = %v, want 100", got.Patterns.NightDrivingPct)
	}
	if got.Recent.NightMinutes != 120 {
		t.Errorf("Recent.NightMinutes = %v, want 120", got.Recent.NightMinutes)
	}
	if !got.Recent.IsNightNow {
		t.Error("expected 02:00 local to be night")
	}
	if got.Window.Timezone != "Asia/Shanghai" {
		t.Errorf("Timezone = %s", got.Window.Timezone)
	}
	if got.NowLocal.Hour() != 2 {
		t.Errorf("NowLocal hour = %d, want 2", got.NowLocal.Hour())
	}
	if got.Assessment.Level != domain.FatigueNormal {
		t.Errorf("Level = %s, want normal", got.Assessment.Level)
	}
	if pub.wait(50 * time.Millisecond) {
		t.Error("expected no alert for normal level")
	}
}

func TestAnalysisService_Analyze_Errors(t *testing.T) {
	now := at(15, 12, 0)
	repoErr := errors.New("connection refused")

	tests := []struct {
		name    string
		trips   *MockTripRepository
		req     domain.AnalysisRequest
		wantErr error
	}{
		{
			name:    "missing driver id",
			trips:   morningShift(),
			req:     domain.AnalysisRequest{Now: now},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "days_back too large",
			trips:   morningShift(),
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: now, DaysBack: 91},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "negative days_back",
			trips:   morningShift(),
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: now, DaysBack: -1},
			wantErr: domain.ErrInvalidInput,
		},
		{
			name:    "no trips in window",
			trips:   morningShift(),
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: at(25, 12, 0), DaysBack: 1},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "unknown driver",
			trips:   morningShift(),
			req:     domain.AnalysisRequest{DriverID: "dev-404", Now: now},
			wantErr: domain.ErrNotFound,
		},
		{
			name:    "trip ends before it starts",
			trips:   NewMockTripRepository(domain.Trip{ID: 9, DriverID: "dev-1", BeginTime: at(15, 9, 0).Unix(), EndTime: at(15, 8, 0).Unix()}),
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: now},
			wantErr: domain.ErrInvalidTrip,
		},
		{
			name:    "negative duration",
			trips:   NewMockTripRepository(domain.Trip{ID: 9, DriverID: "dev-1", BeginTime: at(15, 8, 0).Unix(), EndTime: at(15, 9, 0).Unix(), TravelTime: -60}),
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: now},
			wantErr: domain.ErrInvalidTrip,
		},
		{
			name:    "repository error",
			trips:   &MockTripRepository{err: repoErr},
			req:     domain.AnalysisRequest{DriverID: "dev-1", Now: now},
			wantErr: repoErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newAnalysis(tt.trips, NewMockDriverRepository(), NewMockPublisher())
			_, err := svc.Analyze(context.Background(), tt.req)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Analyze() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestAnalysisService_Analyze_DaysBack(t *testing.T) {
	trips := morningShift()
	svc := newAnalysis(trips, NewMockDriverRepository(), NewMockPublisher())
	now := at(15, 12, 0)

	got, err := svc.Analyze(context.Background(), domain.AnalysisRequest{DriverID: "dev-1", Now: now, DaysBack: 1})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if !trips.from.Equal(now.Add(-24*time.Hour)) || !trips.to.Equal(now) {
		t.Errorf("queried [%v, %v]", trips.from, trips.to)
	}
	if got.Patterns.TotalTrips != 3 {
		t.Errorf("TotalTrips = %d, want 3", got.Patterns.TotalTrips)
	}
}

func TestAnalysisService_Analyze_TripStartingNow(t *testing.T) {
	now := at(15, 12, 0)
	trips := NewMockTripRepository(
		trip(1, at(15, 9, 0), at(15, 10, 0)),
		trip(2, now, now.Add(20*time.Minute)),
	)
	svc := newAnalysis(trips, NewMockDriverRepository(), NewMockPublisher())

	got, err := svc.Analyze(context.Background(), domain.AnalysisRequest{DriverID: "dev-1", Now: now})
	if err != nil {
		t.Fatalf("Analyze() error = %v", err)
	}
	if got.Patterns.TotalTrips != 2 || got.Recent.Trips != 2 {
		t.Errorf("TotalTrips = %d, Recent.Trips = %d, want 2 and 2", got.Patterns.TotalTrips, got.Recent.Trips)
	}
	if got.Patterns.TotalDrivingMinutes != 80 {
		t.Errorf("TotalDrivingMinutes = %v, want 80", got.Patterns.TotalDrivingMinutes)
	}
}
