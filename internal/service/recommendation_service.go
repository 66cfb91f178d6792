package service

import (
	"context"
	"fmt"
	"iter"
	"slices"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/fatigue"
	"github.com/blaisecz/driver-fatigue/internal/langfuse"
	"github.com/blaisecz/driver-fatigue/internal/llm"
	"github.com/blaisecz/driver-fatigue/internal/metrics"
	"github.com/blaisecz/driver-fatigue/internal/telemetry"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FeedbackScoreName is the Langfuse score name for user ratings.
const FeedbackScoreName = "user_rating"

// RecommendationRequest selects the driver, window and strategy.
type RecommendationRequest struct {
	domain.AnalysisRequest
	Mode domain.RecommendationMode
}

// RecommendationService produces rest recommendations over a fresh analysis.
type RecommendationService interface {
	Recommend(ctx context.Context, req RecommendationRequest) (*domain.RestRecommendation, error)
	// Stream runs the analysis eagerly so that analysis errors surface
	// before any fragment is written, then returns the fragment sequence.
	Stream(ctx context.Context, req RecommendationRequest) (iter.Seq2[domain.StreamFragment, error], error)
	// Analyze returns the combined patterns and recommendation view.
	Analyze(ctx context.Context, req RecommendationRequest) (*domain.DriverAnalysisResponse, error)
	SubmitFeedback(ctx context.Context, driverID string, req domain.FeedbackRequest) error
}

type recommendationService struct {
	analysis   AnalysisService
	rule       Recommender
	generative Recommender
	langfuse   langfuse.Client
	llmTimeout time.Duration
	log        *logrus.Logger
}

// NewRecommendationService creates a new RecommendationService. A nil
// llmClient disables generative mode.
func NewRecommendationService(
	analysis AnalysisService,
	llmClient llm.RecommendationLLM,
	langfuseClient langfuse.Client,
	policy fatigue.Policy,
	llmTimeout time.Duration,
	log *logrus.Logger,
) RecommendationService {
	s := &recommendationService{
		analysis:   analysis,
		rule:       NewRuleRecommender(policy),
		langfuse:   langfuseClient,
		llmTimeout: llmTimeout,
		log:        log,
	}
	if llmClient != nil {
		s.generative = NewGenerativeRecommender(llmClient, policy.RestKeywords)
	}
	return s
}

func (s *recommendationService) strategy(mode domain.RecommendationMode) (Recommender, error) {
	switch mode {
	case "", domain.ModeRule:
		return s.rule, nil
	case domain.ModeGenerative:
		if s.generative == nil {
			return nil, llm.ErrProviderUnavailable
		}
		return s.generative, nil
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", domain.ErrInvalidInput, mode)
	}
}

func (s *recommendationService) Recommend(ctx context.Context, req RecommendationRequest) (*domain.RestRecommendation, error) {
	ctx, span := telemetry.Tracer().Start(ctx, "recommendation.Recommend")
	defer span.End()
	span.SetAttributes(attribute.String("recommendation.mode", string(req.Mode)))

	recommender, err := s.strategy(req.Mode)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysis.Analyze(ctx, req.AnalysisRequest)
	if err != nil {
		return nil, err
	}

	rec, err := s.recommend(ctx, recommender, req.Mode, analysis)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "recommendation failed")
		return nil, err
	}

	s.attachTrace(ctx, analysis, rec, req.Mode)
	return rec, nil
}

func (s *recommendationService) recommend(ctx context.Context, r Recommender, mode domain.RecommendationMode, a *domain.DrivingAnalysis) (*domain.RestRecommendation, error) {
	if mode != domain.ModeGenerative {
		return r.Recommend(ctx, a)
	}

	callCtx, cancel := withTimeout(ctx, s.llmTimeout)
	defer cancel()

	started := time.Now()
	rec, err := r.Recommend(callCtx, a)
	s.observe(mode, started, rec, err)
	if err != nil {
		s.log.WithError(err).WithField("driver_id", a.DriverID).Error("Generative recommendation failed")
		return nil, err
	}
	if rec.Degraded() {
		s.log.WithFields(logrus.Fields{
			"driver_id":      a.DriverID,
			"missing_fields": rec.MissingFields,
		}).Warn("Provider payload is missing fields")
	}
	return rec, nil
}

func (s *recommendationService) Stream(ctx context.Context, req RecommendationRequest) (iter.Seq2[domain.StreamFragment, error], error) {
	recommender, err := s.strategy(req.Mode)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysis.Analyze(ctx, req.AnalysisRequest)
	if err != nil {
		return nil, err
	}

	return func(yield func(domain.StreamFragment, error) bool) {
		streamCtx := ctx
		if req.Mode == domain.ModeGenerative {
			var cancel context.CancelFunc
			streamCtx, cancel = withTimeout(ctx, s.llmTimeout)
			defer cancel()
		}

		started := time.Now()
		for fragment, err := range recommender.Stream(streamCtx, analysis) {
			if err != nil {
				if req.Mode == domain.ModeGenerative {
					s.observe(req.Mode, started, nil, err)
					s.log.WithError(err).WithField("driver_id", analysis.DriverID).Error("Recommendation stream failed")
				}
				yield(domain.StreamFragment{}, err)
				return
			}
			if fragment.Finished && fragment.Recommendation != nil {
				if req.Mode == domain.ModeGenerative {
					s.observe(req.Mode, started, fragment.Recommendation, nil)
				}
				s.attachTrace(ctx, analysis, fragment.Recommendation, req.Mode)
			}
			if !yield(fragment, nil) {
				return
			}
		}
	}, nil
}

func (s *recommendationService) Analyze(ctx context.Context, req RecommendationRequest) (*domain.DriverAnalysisResponse, error) {
	recommender, err := s.strategy(req.Mode)
	if err != nil {
		return nil, err
	}

	analysis, err := s.analysis.Analyze(ctx, req.AnalysisRequest)
	if err != nil {
		return nil, err
	}

	rec, err := s.recommend(ctx, recommender, req.Mode, analysis)
	if err != nil {
		return nil, err
	}
	s.attachTrace(ctx, analysis, rec, req.Mode)

	return &domain.DriverAnalysisResponse{
		DriverID:           analysis.DriverID,
		Window:             analysis.Window,
		Patterns:           analysis.Patterns,
		Recent:             analysis.Recent,
		Assessment:         analysis.Assessment,
		Segments:           analysis.Segments,
		RestRecommendation: *rec,
	}, nil
}

func (s *recommendationService) SubmitFeedback(ctx context.Context, driverID string, req domain.FeedbackRequest) error {
	err := s.langfuse.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: req.TraceID,
		Name:    FeedbackScoreName,
		Value:   float64(req.Score),
		Comment: req.Comment,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	s.log.WithFields(logrus.Fields{
		"driver_id": driverID,
		"trace_id":  req.TraceID,
		"score":     req.Score,
		"forwarded": s.langfuse.IsEnabled(),
	}).Info("Recommendation feedback received")
	return nil
}

// attachTrace sets the feedback trace ID on rec. The OTel trace ID is
// preferred so Langfuse links the score to the exported spans.
func (s *recommendationService) attachTrace(ctx context.Context, a *domain.DrivingAnalysis, rec *domain.RestRecommendation, mode domain.RecommendationMode) {
	var traceID string
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		traceID = sc.TraceID().String()
	}
	if traceID == "" && s.langfuse.IsEnabled() {
		traceID = uuid.New().String()
	}
	rec.TraceID = traceID

	if !s.langfuse.IsEnabled() {
		return
	}

	// The client encodes queued events later; hand it a snapshot.
	out := *rec
	out.NeedsRest = clonePtr(rec.NeedsRest)
	out.RestMethods = slices.Clone(rec.RestMethods)
	out.MissingFields = slices.Clone(rec.MissingFields)

	id, err := s.langfuse.CreateTrace(ctx, langfuse.TraceInput{
		ID:     traceID,
		UserID: a.DriverID,
		Name:   "rest-recommendation",
		Input:  a.ToRecommendationContext(),
		Output: out,
		Tags:   []string{"driver-fatigue", string(rec.Source)},
		Metadata: map[string]any{
			"mode":          string(mode),
			"days_back":     a.Window.DaysBack,
			"fatigue_level": string(a.Assessment.Level),
		},
	})
	if err != nil {
		s.log.WithError(err).Warn("Failed to create Langfuse trace")
		return
	}
	if id != "" && id != traceID {
		rec.TraceID = id
	}
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *recommendationService) observe(mode domain.RecommendationMode, started time.Time, rec *domain.RestRecommendation, err error) {
	outcome := metrics.OutcomeSuccess
	switch {
	case err != nil:
		outcome = metrics.OutcomeError
	case rec != nil && rec.Degraded():
		outcome = metrics.OutcomeDegraded
	}
	metrics.ProviderCalls.WithLabelValues(string(mode), outcome).Inc()
	metrics.ProviderLatency.WithLabelValues(string(mode)).Observe(time.Since(started).Seconds())
}
