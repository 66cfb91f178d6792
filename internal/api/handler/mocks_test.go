package handler

import (
	"context"
	"iter"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/service"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockAnalysisService is a mock implementation of AnalysisService
type MockAnalysisService struct {
	analyzeFunc func(ctx context.Context, req domain.AnalysisRequest) (*domain.DrivingAnalysis, error)
}

func (m *MockAnalysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.DrivingAnalysis, error) {
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, req)
	}
	return sampleAnalysis(req), nil
}

// MockRecommendationService is a mock implementation of RecommendationService
type MockRecommendationService struct {
	recommendFunc func(ctx context.Context, req service.RecommendationRequest) (*domain.RestRecommendation, error)
	streamFunc    func(ctx context.Context, req service.RecommendationRequest) (iter.Seq2[domain.StreamFragment, error], error)
	analyzeFunc   func(ctx context.Context, req service.RecommendationRequest) (*domain.DriverAnalysisResponse, error)
	feedbackFunc  func(ctx context.Context, driverID string, req domain.FeedbackRequest) error

	lastReq service.RecommendationRequest
}

func (m *MockRecommendationService) Recommend(ctx context.Context, req service.RecommendationRequest) (*domain.RestRecommendation, error) {
	m.lastReq = req
	if m.recommendFunc != nil {
		return m.recommendFunc(ctx, req)
	}
	return sampleRecommendation(), nil
}

func (m *MockRecommendationService) Stream(ctx context.Context, req service.RecommendationRequest) (iter.Seq2[domain.StreamFragment, error], error) {
	m.lastReq = req
	if m.streamFunc != nil {
		return m.streamFunc(ctx, req)
	}
	return func(yield func(domain.StreamFragment, error) bool) {
		yield(domain.StreamFragment{Finished: true, Recommendation: sampleRecommendation()}, nil)
	}, nil
}

func (m *MockRecommendationService) Analyze(ctx context.Context, req service.RecommendationRequest) (*domain.DriverAnalysisResponse, error) {
	m.lastReq = req
	if m.analyzeFunc != nil {
		return m.analyzeFunc(ctx, req)
	}
	a := sampleAnalysis(req.AnalysisRequest)
	return &domain.DriverAnalysisResponse{
		DriverID:           a.DriverID,
		Window:             a.Window,
		Patterns:           a.Patterns,
		Recent:             a.Recent,
		Assessment:         a.Assessment,
		Segments:           a.Segments,
		RestRecommendation: *sampleRecommendation(),
	}, nil
}

func (m *MockRecommendationService) SubmitFeedback(ctx context.Context, driverID string, req domain.FeedbackRequest) error {
	if m.feedbackFunc != nil {
		return m.feedbackFunc(ctx, driverID, req)
	}
	return nil
}

// MockTripService is a mock implementation of TripService
type MockTripService struct {
	listFunc func(ctx context.Context, driverID string, filter domain.TripFilter) (*domain.TripListResponse, error)
}

func (m *MockTripService) List(ctx context.Context, driverID string, filter domain.TripFilter) (*domain.TripListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, driverID, filter)
	}
	return &domain.TripListResponse{Data: []domain.TripResponse{}}, nil
}

// MockDriverService is a mock implementation of DriverService
type MockDriverService struct {
	profiles map[string]*domain.DriverProfile
	err      error
}

func NewMockDriverService() *MockDriverService {
	return &MockDriverService{profiles: make(map[string]*domain.DriverProfile)}
}

func (m *MockDriverService) GetProfile(ctx context.Context, driverID string) (*domain.DriverProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[driverID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockDriverService) UpsertProfile(ctx context.Context, driverID string, req *domain.UpsertDriverProfileRequest) (*domain.DriverProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p := &domain.DriverProfile{DriverID: driverID, Timezone: req.Timezone, CreatedAt: time.Now(), UpdatedAt: time.Now()}
	m.profiles[driverID] = p
	return p, nil
}

func (m *MockDriverService) Location(ctx context.Context, driverID string) (*time.Location, error) {
	return time.UTC, nil
}

// Helper functions
func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

func sampleAnalysis(req domain.AnalysisRequest) *domain.DrivingAnalysis {
	now := req.Now
	if now.IsZero() {
		now = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)
	}
	return &domain.DrivingAnalysis{
		DriverID: req.DriverID,
		Window: domain.AnalysisWindow{
			From:     now.AddDate(0, 0, -req.DaysBack),
			To:       now,
			DaysBack: req.DaysBack,
			Timezone: "UTC",
		},
		Patterns: domain.DrivingPatternSummary{
			TotalTrips:               3,
			TotalDrivingMinutes:      315,
			AvgTripMinutes:           105,
			ContinuousIncidentCount:  1,
			LongestContinuousMinutes: 330,
		},
		Recent: domain.RecentDriving{WindowHours: 24, Trips: 3, DrivingMinutes: 315, LongestContinuousMinutes: 330},
		Assessment: domain.FatigueAssessment{
			Level:        domain.FatigueModerate,
			AdvisoryText: "Rest immediately for at least 30 minutes",
		},
		Segments: []domain.Segment{},
		NowLocal: now,
	}
}

func sampleRecommendation() *domain.RestRecommendation {
	return &domain.RestRecommendation{
		NeedsRest:      domain.BoolPtr(true),
		Reason:         "You have 1 continuous driving periods longer than 240 minutes",
		Recommendation: "Take at least 15 minutes of rest after every 2 hours of continuous driving",
		FatigueLevel:   domain.FatigueModerate,
		Source:         domain.SourceRule,
	}
}
