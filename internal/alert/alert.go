// Package alert fans fatigue alerts out over Redis pub/sub.
package alert

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/metrics"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// MinLevel is the lowest fatigue level that raises an alert.
const MinLevel = domain.FatigueModerate

// Alert is the JSON message published for a fatigued driver.
type Alert struct {
	DriverID          string              `json:"driver_id"`
	Level             domain.FatigueLevel `json:"level"`
	AdvisoryText      string              `json:"advisory_text"`
	ContinuousMinutes float64             `json:"continuous_minutes"`
	DailyMinutes      float64             `json:"daily_minutes"`
	NightMinutes      float64             `json:"night_minutes"`
	EvaluatedAt       time.Time           `json:"evaluated_at"`
}

// NewAlert builds an alert from an assessment.
func NewAlert(driverID string, a domain.FatigueAssessment, at time.Time) Alert {
	return Alert{
		DriverID:          driverID,
		Level:             a.Level,
		AdvisoryText:      a.AdvisoryText,
		ContinuousMinutes: a.Inputs.ContinuousMinutes,
		DailyMinutes:      a.Inputs.DailyMinutes,
		NightMinutes:      a.Inputs.NightMinutes,
		EvaluatedAt:       at.UTC(),
	}
}

// Publisher delivers fatigue alerts.
type Publisher interface {
	// Publish sends the alert unless its level is below MinLevel or the
	// same driver and level were alerted within the dedup window. The
	// returned bool reports whether a message was sent.
	Publish(ctx context.Context, a Alert) (bool, error)
}

// NopPublisher drops every alert. Used when Redis is not configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Alert) (bool, error) { return false, nil }

// commander is the subset of the go-redis client used here.
type commander interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisPublisher publishes alerts on driver:{id}:fatigue-alerts.
type RedisPublisher struct {
	client   commander
	dedupTTL time.Duration
	log      *logrus.Logger
}

// NewRedisPublisher wraps an existing go-redis client.
func NewRedisPublisher(client *redis.Client, dedupTTL time.Duration, log *logrus.Logger) *RedisPublisher {
	return newPublisher(client, dedupTTL, log)
}

func newPublisher(client commander, dedupTTL time.Duration, log *logrus.Logger) *RedisPublisher {
	if dedupTTL <= 0 {
		dedupTTL = 30 * time.Minute
	}
	return &RedisPublisher{client: client, dedupTTL: dedupTTL, log: log}
}

// Channel returns the pub/sub channel for a driver.
func Channel(driverID string) string {
	return fmt.Sprintf("driver:%s:fatigue-alerts", driverID)
}

func dedupKey(driverID string, level domain.FatigueLevel) string {
	return fmt.Sprintf("alert:%s:%s", driverID, level)
}

func (p *RedisPublisher) Publish(ctx context.Context, a Alert) (bool, error) {
	if !a.Level.AtLeast(MinLevel) {
		return false, nil
	}

	payload, err := json.Marshal(a)
	if err != nil {
		return false, fmt.Errorf("marshal alert: %w", err)
	}

	fresh, err := p.client.SetNX(ctx, dedupKey(a.DriverID, a.Level), "1", p.dedupTTL).Result()
	if err != nil {
		metrics.AlertsPublished.WithLabelValues(string(a.Level), "failed").Inc()
		return false, fmt.Errorf("alert dedup failed: %w", err)
	}
	if !fresh {
		metrics.AlertsPublished.WithLabelValues(string(a.Level), "deduplicated").Inc()
		return false, nil
	}

	if err := p.client.Publish(ctx, Channel(a.DriverID), payload).Err(); err != nil {
		metrics.AlertsPublished.WithLabelValues(string(a.Level), "failed").Inc()
		return false, fmt.Errorf("publish alert: %w", err)
	}

	metrics.AlertsPublished.WithLabelValues(string(a.Level), "published").Inc()
	p.log.WithFields(logrus.Fields{
		"driver_id": a.DriverID,
		"level":     a.Level,
	}).Info("Fatigue alert published")
	return true, nil
}

// NewRedisClient connects to Redis and verifies the connection.
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return client, nil
}
