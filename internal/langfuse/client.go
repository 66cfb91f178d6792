// Package langfuse records recommendation traces and driver feedback
// scores through the Langfuse ingestion API. Events are queued and sent in
// batches by a background worker; an unconfigured client is a no-op.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	defaultQueueSize     = 256
	defaultMaxBatch      = 20
	defaultFlushInterval = 2 * time.Second
	sendTimeout          = 5 * time.Second
)

// Client is the interface for Langfuse operations.
type Client interface {
	// IsEnabled returns true if Langfuse is configured and enabled.
	IsEnabled() bool
	// CreateTrace queues a trace and returns its ID.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore queues a score for an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
	// Flush sends everything queued so far, or gives up when ctx is done.
	Flush(ctx context.Context) error
}

// TraceInput contains the data for creating a trace.
type TraceInput struct {
	ID       string         // Optional: override trace ID (generates UUID if empty)
	UserID   string         // Driver identifier
	Name     string         // Trace name (e.g., "rest-recommendation")
	Input    any            // Serializable input context
	Output   any            // Serializable output result
	Tags     []string       // Optional tags
	Metadata map[string]any // Optional metadata
}

// ScoreInput contains the data for creating a score.
type ScoreInput struct {
	TraceID string  // ID of the trace to score
	Name    string  // Score name (e.g., "user_rating")
	Value   float64 // Numeric score value
	Comment string  // Optional comment
}

// Config holds Langfuse client configuration. Zero batching values use
// the package defaults.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
	Logger      *logrus.Logger

	QueueSize     int
	MaxBatch      int
	FlushInterval time.Duration
}

type client struct {
	endpoint    string
	publicKey   string
	secretKey   string
	environment string
	httpClient  *http.Client
	log         *logrus.Entry

	maxBatch int
	events   chan ingestionEvent
	flushes  chan chan struct{}
}

// disabledClient satisfies Client when credentials are missing.
type disabledClient struct{}

func (disabledClient) IsEnabled() bool { return false }

func (disabledClient) CreateTrace(context.Context, TraceInput) (string, error) {
	return "", nil
}

func (disabledClient) CreateScore(context.Context, ScoreInput) error {
	return nil
}

func (disabledClient) Flush(context.Context) error {
	return nil
}

// NewClient creates a Langfuse client and starts its sender. Missing
// credentials yield a disabled no-op client.
func NewClient(cfg Config) Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	log := logger.WithField("component", "langfuse")

	switch {
	case cfg.BaseURL == "":
		log.Info("disabled: LANGFUSE_BASE_URL is empty")
		return disabledClient{}
	case cfg.PublicKey == "":
		log.Info("disabled: LANGFUSE_PUBLIC_KEY is empty")
		return disabledClient{}
	case cfg.SecretKey == "":
		log.Info("disabled: LANGFUSE_SECRET_KEY is empty")
		return disabledClient{}
	}

	queueSize := cfg.QueueSize
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}
	maxBatch := cfg.MaxBatch
	if maxBatch <= 0 {
		maxBatch = defaultMaxBatch
	}
	interval := cfg.FlushInterval
	if interval <= 0 {
		interval = defaultFlushInterval
	}

	c := &client{
		endpoint:    strings.TrimSuffix(cfg.BaseURL, "/") + "/api/public/ingestion",
		publicKey:   cfg.PublicKey,
		secretKey:   cfg.SecretKey,
		environment: cfg.Environment,
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		log:         log,
		maxBatch:    maxBatch,
		events:      make(chan ingestionEvent, queueSize),
		flushes:     make(chan chan struct{}),
	}
	go c.run(interval)

	log.WithFields(logrus.Fields{"base_url": cfg.BaseURL, "env": cfg.Environment}).Info("enabled")
	return c
}

func (c *client) IsEnabled() bool {
	return true
}

func (c *client) CreateTrace(_ context.Context, in TraceInput) (string, error) {
	traceID := in.ID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	metadata := make(map[string]any, len(in.Metadata)+1)
	for k, v := range in.Metadata {
		metadata[k] = v
	}
	if c.environment != "" {
		metadata["environment"] = c.environment
	}

	c.enqueue(newEvent("trace-create", traceBody{
		ID:       traceID,
		Name:     in.Name,
		UserID:   in.UserID,
		Input:    in.Input,
		Output:   in.Output,
		Tags:     in.Tags,
		Metadata: metadata,
	}))
	return traceID, nil
}

func (c *client) CreateScore(_ context.Context, in ScoreInput) error {
	if in.TraceID == "" {
		return fmt.Errorf("score %q has no trace id", in.Name)
	}

	c.enqueue(newEvent("score-create", scoreBody{
		ID:      uuid.New().String(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	}))
	return nil
}

func (c *client) Flush(ctx context.Context) error {
	done := make(chan struct{})
	select {
	case c.flushes <- done:
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// enqueue never blocks the request path; a full queue drops the event.
func (c *client) enqueue(ev ingestionEvent) {
	select {
	case c.events <- ev:
	default:
		c.log.WithField("event_type", ev.Type).Warn("queue full, event dropped")
	}
}

func (c *client) run(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var batch []ingestionEvent
	send := func() {
		if len(batch) == 0 {
			return
		}
		c.deliver(batch)
		batch = nil
	}

	for {
		select {
		case ev := <-c.events:
			batch = append(batch, ev)
			if len(batch) >= c.maxBatch {
				send()
			}
		case <-ticker.C:
			send()
		case done := <-c.flushes:
			batch = append(batch, c.drain()...)
			for len(batch) > c.maxBatch {
				head := batch[:c.maxBatch]
				batch = batch[c.maxBatch:]
				c.deliver(head)
			}
			send()
			close(done)
		}
	}
}

func (c *client) drain() []ingestionEvent {
	var out []ingestionEvent
	for {
		select {
		case ev := <-c.events:
			out = append(out, ev)
		default:
			return out
		}
	}
}

// deliver logs failures instead of returning them; callers already moved on.
func (c *client) deliver(batch []ingestionEvent) {
	ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
	defer cancel()

	if err := c.sendBatch(ctx, batch); err != nil {
		c.log.WithError(err).WithFields(logrus.Fields{
			"events":      len(batch),
			"event_types": eventTypes(batch),
		}).Warn("batch send failed")
	}
}

func (c *client) sendBatch(ctx context.Context, events []ingestionEvent) error {
	body, err := json.Marshal(batchPayload{Batch: events})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.publicKey, c.secretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	// 207 carries per-event errors; only a transport-level failure is reported
	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}

func newEvent(eventType string, body any) ingestionEvent {
	return ingestionEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}
}

func eventTypes(batch []ingestionEvent) string {
	types := make([]string, 0, len(batch))
	seen := make(map[string]bool)
	for _, ev := range batch {
		if !seen[ev.Type] {
			seen[ev.Type] = true
			types = append(types, ev.Type)
		}
	}
	return strings.Join(types, ",")
}

type batchPayload struct {
	Batch []ingestionEvent `json:"batch"`
}

type ingestionEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}
