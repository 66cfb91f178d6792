package domain

import "time"

const (
	// DefaultDaysBack is the default lookback window for analysis.
	DefaultDaysBack = 7
	// MaxDaysBack bounds the lookback window.
	MaxDaysBack = 90
	// RecentWindow is the trailing window used for "today" figures.
	RecentWindow = 24 * time.Hour
)

// AnalysisRequest identifies one driver analysis.
type AnalysisRequest struct {
	DriverID string
	// Now is the evaluation instant; the zero value means wall-clock now.
	Now      time.Time
	DaysBack int
}

// DrivingPatternSummary aggregates a driver's trips over the lookback window.
// @Description Driving pattern over the lookback window.
type DrivingPatternSummary struct {
	// Number of trips in the window
	TotalTrips int `json:"total_trips" example:"42"`
	// Total recorded driving time (minutes)
	TotalDrivingMinutes float64 `json:"total_driving_time_minutes" example:"1830.5"`
	// Average trip duration (minutes)
	AvgTripMinutes float64 `json:"average_trip_duration_minutes" example:"43.6"`
	// Share of driving inside the night window (%)
	NightDrivingPct float64 `json:"night_driving_percentage" example:"12.4"`
	// Continuous segments longer than the incident ceiling
	ContinuousIncidentCount int `json:"continuous_driving_incidents" example:"2"`
	// Longest continuous segment (minutes)
	LongestContinuousMinutes float64 `json:"longest_continuous_driving_minutes" example:"275.0"`
}

// RecentDriving describes the trailing 24 hours before the evaluation instant.
// @Description Driving in the last 24 hours.
type RecentDriving struct {
	WindowHours              int     `json:"window_hours" example:"24"`
	Trips                    int     `json:"today_trips" example:"5"`
	DrivingMinutes           float64 `json:"today_driving_minutes" example:"310.0"`
	NightMinutes             float64 `json:"today_night_minutes" example:"45.0"`
	LongestContinuousMinutes float64 `json:"today_longest_continuous_minutes" example:"190.0"`
	IsNightNow               bool    `json:"is_night_now" example:"false"`
}

// AnalysisWindow is the resolved time range of an analysis.
type AnalysisWindow struct {
	From     time.Time `json:"from" example:"2024-01-08T16:00:00Z"`
	To       time.Time `json:"to" example:"2024-01-15T16:00:00Z"`
	DaysBack int       `json:"days_back" example:"7"`
	Timezone string    `json:"timezone" example:"Asia/Shanghai"`
}

// DrivingAnalysis is the full per-request derivation over one driver's trips.
type DrivingAnalysis struct {
	DriverID   string                `json:"driver_id"`
	Window     AnalysisWindow        `json:"window"`
	Patterns   DrivingPatternSummary `json:"driving_patterns"`
	Recent     RecentDriving         `json:"recent_driving"`
	Assessment FatigueAssessment     `json:"fatigue_assessment"`
	Segments   []Segment             `json:"segments"`
	// NightMinutes is the window total behind NightDrivingPct.
	NightMinutes float64 `json:"-"`
	// NowLocal is the evaluation instant in the driver's timezone.
	NowLocal time.Time `json:"-"`
}

// DrivingPatternResponse is the response for the driving-patterns endpoint.
// @Description Driving pattern summary with recent driving and fatigue verdict.
type DrivingPatternResponse struct {
	DriverID   string                `json:"driver_id" example:"dev-00042"`
	Window     AnalysisWindow        `json:"window"`
	Patterns   DrivingPatternSummary `json:"driving_patterns"`
	Recent     RecentDriving         `json:"recent_driving"`
	Assessment FatigueAssessment     `json:"fatigue_assessment"`
}

func (a *DrivingAnalysis) ToPatternResponse() DrivingPatternResponse {
	return DrivingPatternResponse{
		DriverID:   a.DriverID,
		Window:     a.Window,
		Patterns:   a.Patterns,
		Recent:     a.Recent,
		Assessment: a.Assessment,
	}
}

// DriverAnalysisResponse is the combined view.
// @Description Driving patterns plus rest recommendation.
type DriverAnalysisResponse struct {
	DriverID           string                `json:"driver_id" example:"dev-00042"`
	Window             AnalysisWindow        `json:"window"`
	Patterns           DrivingPatternSummary `json:"driving_patterns"`
	Recent             RecentDriving         `json:"recent_driving"`
	Assessment         FatigueAssessment     `json:"fatigue_assessment"`
	Segments           []Segment             `json:"segments"`
	RestRecommendation RestRecommendation    `json:"rest_recommendation"`
}
