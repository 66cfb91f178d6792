// Script to test Langfuse connectivity by creating a recommendation trace
// and scoring it.
// Usage: go run scripts/langfuse-test/main.go
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/config"
	"github.com/blaisecz/driver-fatigue/internal/langfuse"
	"github.com/blaisecz/driver-fatigue/internal/service"
)

func main() {
	cfg := config.Load()
	log := config.NewLogger(cfg)

	lfCfg := langfuse.Config{
		BaseURL:     cfg.LangfuseBaseURL,
		PublicKey:   cfg.LangfusePublicKey,
		SecretKey:   cfg.LangfuseSecretKey,
		Environment: cfg.LangfuseEnv,
		Logger:      log,
	}

	fmt.Println("=== Langfuse Connection Test ===")
	fmt.Printf("Base URL:    %s\n", lfCfg.BaseURL)
	fmt.Printf("Public Key:  %s\n", maskKey(lfCfg.PublicKey))
	fmt.Printf("Secret Key:  %s\n", maskKey(lfCfg.SecretKey))
	fmt.Printf("Environment: %s\n", lfCfg.Environment)
	fmt.Println()

	client := langfuse.NewClient(lfCfg)
	if !client.IsEnabled() {
		log.Fatal("Langfuse client is disabled. Check LANGFUSE_BASE_URL, LANGFUSE_PUBLIC_KEY and LANGFUSE_SECRET_KEY.")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	traceID, err := client.CreateTrace(ctx, langfuse.TraceInput{
		UserID: "dev-00042",
		Name:   "rest-recommendation",
		Input: map[string]any{
			"message": "Hello from langfuse-test script",
			"time":    time.Now().Format(time.RFC3339),
		},
		Output: map[string]any{
			"needs_rest": true,
		},
		Tags: []string{"test", "manual"},
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to create trace")
	}

	if err := client.CreateScore(ctx, langfuse.ScoreInput{
		TraceID: traceID,
		Name:    service.FeedbackScoreName,
		Value:   5,
		Comment: "langfuse-test script",
	}); err != nil {
		log.WithError(err).Fatal("Failed to create score")
	}

	// Ingestion is asynchronous; wait for it so failures are logged here
	if err := client.Flush(ctx); err != nil {
		log.WithError(err).Fatal("Flush did not complete")
	}

	fmt.Println("✓ Test trace and score sent")
	fmt.Printf("  Trace ID: %s\n", traceID)
	fmt.Printf("  View at:  %s/trace/%s\n", lfCfg.BaseURL, traceID)
}

func maskKey(key string) string {
	if len(key) < 8 {
		if key == "" {
			return "(empty)"
		}
		return "***"
	}
	return key[:8] + "..."
}
