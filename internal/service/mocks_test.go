package service

import (
	"context"
	"iter"
	"sort"
	"sync"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/alert"
	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/langfuse"
	"github.com/blaisecz/driver-fatigue/internal/llm"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

// MockTripRepository is a mock implementation of TripRepository
type MockTripRepository struct {
	trips []domain.Trip
	err   error

	// last range queried through ListByStartRange
	from, to time.Time
}

func NewMockTripRepository(trips ...domain.Trip) *MockTripRepository {
	return &MockTripRepository{trips: trips}
}

func (m *MockTripRepository) ListByStartRange(ctx context.Context, driverID string, from, to time.Time) ([]domain.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	m.from, m.to = from, to
	var result []domain.Trip
	for _, t := range m.trips {
		if t.DriverID != driverID {
			continue
		}
		if t.StartAt().Before(from) || t.StartAt().After(to) {
			continue
		}
		result = append(result, t)
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BeginTime != result[j].BeginTime {
			return result[i].BeginTime < result[j].BeginTime
		}
		return result[i].ID < result[j].ID
	})
	return result, nil
}

func (m *MockTripRepository) List(ctx context.Context, driverID string, filter domain.TripFilter) ([]domain.Trip, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.Trip
	for _, t := range m.trips {
		if t.DriverID == driverID {
			result = append(result, t)
		}
	}
	sort.SliceStable(result, func(i, j int) bool {
		if result[i].BeginTime != result[j].BeginTime {
			return result[i].BeginTime > result[j].BeginTime
		}
		return result[i].ID > result[j].ID
	})
	return result, nil
}

// MockDriverRepository is a mock implementation of DriverRepository
type MockDriverRepository struct {
	profiles map[string]*domain.DriverProfile
	err      error
}

func NewMockDriverRepository() *MockDriverRepository {
	return &MockDriverRepository{profiles: make(map[string]*domain.DriverProfile)}
}

func (m *MockDriverRepository) GetByID(ctx context.Context, driverID string) (*domain.DriverProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.profiles[driverID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

func (m *MockDriverRepository) Upsert(ctx context.Context, profile *domain.DriverProfile) error {
	if m.err != nil {
		return m.err
	}
	now := time.Now()
	if existing, ok := m.profiles[profile.DriverID]; ok {
		profile.CreatedAt = existing.CreatedAt
	} else {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	stored := *profile
	m.profiles[profile.DriverID] = &stored
	return nil
}

// MockLLM is a mock implementation of llm.RecommendationLLM
type MockLLM struct {
	output *domain.LLMRecommendationOutput
	chunks []string
	err    error
	// streamErr is yielded after the chunks instead of the done chunk
	streamErr error

	calls    int
	deadline bool
	// stopped records whether the consumer broke out of the stream
	stopped bool
}

var _ llm.RecommendationLLM = (*MockLLM)(nil)

func (m *MockLLM) GenerateRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) (*domain.LLMRecommendationOutput, error) {
	m.calls++
	_, m.deadline = ctx.Deadline()
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func (m *MockLLM) StreamRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) iter.Seq2[llm.StreamChunk, error] {
	return func(yield func(llm.StreamChunk, error) bool) {
		m.calls++
		_, m.deadline = ctx.Deadline()
		if m.err != nil {
			yield(llm.StreamChunk{}, m.err)
			return
		}
		var full string
		for _, c := range m.chunks {
			full += c
			if !yield(llm.StreamChunk{Text: c}, nil) {
				m.stopped = true
				return
			}
		}
		if m.streamErr != nil {
			yield(llm.StreamChunk{}, m.streamErr)
			return
		}
		yield(llm.StreamChunk{Text: full, Done: true}, nil)
	}
}

// MockLangfuse is a mock implementation of langfuse.Client
type MockLangfuse struct {
	enabled bool
	traces  []langfuse.TraceInput
	scores  []langfuse.ScoreInput
	err     error
}

func (m *MockLangfuse) IsEnabled() bool { return m.enabled }

func (m *MockLangfuse) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	if !m.enabled {
		return "", nil
	}
	m.traces = append(m.traces, in)
	if in.ID != "" {
		return in.ID, nil
	}
	return "lf-trace-1", nil
}

func (m *MockLangfuse) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	if m.err != nil {
		return m.err
	}
	m.scores = append(m.scores, in)
	return nil
}

func (m *MockLangfuse) Flush(ctx context.Context) error { return nil }

// MockPublisher records alerts; published is signalled once per call.
type MockPublisher struct {
	mu        sync.Mutex
	alerts    []alert.Alert
	published chan struct{}
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{published: make(chan struct{}, 8)}
}

func (m *MockPublisher) Publish(ctx context.Context, a alert.Alert) (bool, error) {
	m.mu.Lock()
	m.alerts = append(m.alerts, a)
	m.mu.Unlock()
	m.published <- struct{}{}
	return true, nil
}

func (m *MockPublisher) wait(d time.Duration) bool {
	select {
	case <-m.published:
		return true
	case <-time.After(d):
		return false
	}
}

// Helper functions
func quietLogger() *logrus.Logger {
	logger, _ := test.NewNullLogger()
	return logger
}

// trip builds a trip for dev-1 from UTC instants.
func trip(id int64, start, end time.Time) domain.Trip {
	return domain.Trip{
		ID:         id,
		DriverID:   "dev-1",
		BeginTime:  start.Unix(),
		EndTime:    end.Unix(),
		TravelTime: int64(end.Sub(start).Seconds()),
	}
}

func at(day, hour, min int) time.Time {
	return time.Date(2024, time.January, day, hour, min, 0, 0, time.UTC)
}
