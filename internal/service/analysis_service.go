package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/alert"
	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/fatigue"
	"github.com/blaisecz/driver-fatigue/internal/metrics"
	"github.com/blaisecz/driver-fatigue/internal/repository"
	"github.com/blaisecz/driver-fatigue/internal/telemetry"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// alertTimeout bounds the fire-and-forget alert publish.
const alertTimeout = 3 * time.Second

// AnalysisService derives driving patterns and a fatigue verdict from trips.
type AnalysisService interface {
	// Analyze fetches the driver's trips in the lookback window and
	// computes the summary, the trailing 24 hour figures and the
	// fatigue assessment.
	Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.DrivingAnalysis, error)
}

type analysisService struct {
	trips        repository.TripRepository
	drivers      DriverService
	policy       fatigue.Policy
	classifier   *fatigue.Classifier
	alerts       alert.Publisher
	queryTimeout time.Duration
	log          *logrus.Logger
	now          func() time.Time
}

// NewAnalysisService creates a new AnalysisService.
func NewAnalysisService(
	trips repository.TripRepository,
	drivers DriverService,
	policy fatigue.Policy,
	alerts alert.Publisher,
	queryTimeout time.Duration,
	log *logrus.Logger,
) AnalysisService {
	if alerts == nil {
		alerts = alert.NopPublisher{}
	}
	return &analysisService{
		trips:        trips,
		drivers:      drivers,
		policy:       policy,
		classifier:   fatigue.NewClassifier(policy.Thresholds),
		alerts:       alerts,
		queryTimeout: queryTimeout,
		log:          log,
		now:          time.Now,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req domain.AnalysisRequest) (*domain.DrivingAnalysis, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "analysis.Analyze")
	defer span.End()
	span.SetAttributes(attribute.String("driver.id", req.DriverID))

	if req.DriverID == "" {
		return nil, fmt.Errorf("%w: driver id is required", domain.ErrInvalidInput)
	}
	daysBack := req.DaysBack
	if daysBack == 0 {
		daysBack = domain.DefaultDaysBack
	}
	if daysBack < 1 || daysBack > domain.MaxDaysBack {
		return nil, fmt.Errorf("%w: days_back must be between 1 and %d", domain.ErrInvalidInput, domain.MaxDaysBack)
	}

	now := req.Now
	if now.IsZero() {
		now = s.now()
	}
	now = now.UTC()

	loc, err := s.drivers.Location(ctx, req.DriverID)
	if err != nil {
		return nil, err
	}

	from := now.Add(-time.Duration(daysBack) * 24 * time.Hour)

	queryCtx, cancel := withTimeout(ctx, s.queryTimeout)
	trips, err := s.trips.ListByStartRange(queryCtx, req.DriverID, from, now)
	cancel()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "trip query failed")
		return nil, err
	}
	if len(trips) == 0 {
		return nil, fmt.Errorf("%w: no trips for driver %s in the last %d days", domain.ErrNotFound, req.DriverID, daysBack)
	}
	if err := domain.ValidateTrips(trips); err != nil {
		span.RecordError(err)
		return nil, err
	}

	analysis := s.compute(req.DriverID, trips, now, from, daysBack, loc)
	span.SetAttributes(
		attribute.Int("trips", len(trips)),
		attribute.String("fatigue.level", string(analysis.Assessment.Level)),
	)

	metrics.FatigueAssessments.WithLabelValues(string(analysis.Assessment.Level)).Inc()
	s.publishAlert(analysis, now)

	return analysis, nil
}

// compute is the pure part of Analyze.
func (s *analysisService) compute(driverID string, trips []domain.Trip, now, from time.Time, daysBack int, loc *time.Location) *domain.DrivingAnalysis {
	window := s.policy.NightWindow(loc)
	restThreshold := s.policy.RestThreshold()

	segments := fatigue.BuildSegments(trips, restThreshold)
	stats := fatigue.SummarizeSegments(segments, s.policy.IncidentCeiling())

	totalMinutes := drivingMinutes(trips)
	nightMinutes := window.NightMinutes(trips)

	summary := domain.DrivingPatternSummary{
		TotalTrips:               len(trips),
		TotalDrivingMinutes:      round1(totalMinutes),
		AvgTripMinutes:           round1(totalMinutes / float64(len(trips))),
		NightDrivingPct:          round1(percentage(nightMinutes, totalMinutes)),
		ContinuousIncidentCount:  stats.Incidents,
		LongestContinuousMinutes: round1(stats.LongestMinutes),
	}

	recentFrom := now.Add(-domain.RecentWindow)
	var recentTrips []domain.Trip
	for _, t := range trips {
		if !t.StartAt().Before(recentFrom) {
			recentTrips = append(recentTrips, t)
		}
	}
	recentStats := fatigue.SummarizeSegments(fatigue.BuildSegments(recentTrips, restThreshold), s.policy.IncidentCeiling())
	recentMinutes := drivingMinutes(recentTrips)
	recentNight := window.NightMinutes(recentTrips)

	recent := domain.RecentDriving{
		WindowHours:              int(domain.RecentWindow.Hours()),
		Trips:                    len(recentTrips),
		DrivingMinutes:           round1(recentMinutes),
		NightMinutes:             round1(recentNight),
		LongestContinuousMinutes: round1(recentStats.LongestMinutes),
		IsNightNow:               window.Contains(now),
	}

	assessment := s.classifier.Classify(domain.FatigueInputs{
		ContinuousMinutes: recentStats.LongestMinutes,
		DailyMinutes:      recentMinutes,
		NightMinutes:      recentNight,
	})

	return &domain.DrivingAnalysis{
		DriverID: driverID,
		Window: domain.AnalysisWindow{
			From:     from,
			To:       now,
			DaysBack: daysBack,
			Timezone: loc.String(),
		},
		Patterns:     summary,
		Recent:       recent,
		Assessment:   assessment,
		Segments:     segments,
		NightMinutes: nightMinutes,
		NowLocal:     now.In(loc),
	}
}

// publishAlert fires the alert without blocking the request path.
func (s *analysisService) publishAlert(a *domain.DrivingAnalysis, now time.Time) {
	if !a.Assessment.Level.AtLeast(alert.MinLevel) {
		return
	}
	msg := alert.NewAlert(a.DriverID, a.Assessment, now)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), alertTimeout)
		defer cancel()
		if _, err := s.alerts.Publish(ctx, msg); err != nil {
			s.log.WithError(err).WithField("driver_id", msg.DriverID).Warn("Failed to publish fatigue alert")
		}
	}()
}

// drivingMinutes sums recorded travel time.
func drivingMinutes(trips []domain.Trip) float64 {
	var total time.Duration
	for _, t := range trips {
		total += t.Duration()
	}
	return total.Minutes()
}

func percentage(part, whole float64) float64 {
	if whole <= 0 {
		return 0
	}
	return math.Min(part/whole*100, 100)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
