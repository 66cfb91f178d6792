package llm

import (
	"context"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/shared"
)

var (
	// ErrProviderUnavailable indicates the provider is not configured.
	ErrProviderUnavailable = errors.New("recommendation provider unavailable")
	// ErrProviderRequest indicates the provider call failed.
	ErrProviderRequest = errors.New("recommendation provider request failed")
	// ErrProviderResponse indicates the provider output could not be used.
	ErrProviderResponse = errors.New("failed to parse recommendation provider response")
)

// StreamChunk is one element of a provider stream. Text deltas arrive
// with Done false; the last chunk has Done set and Text holding the
// accumulated response.
type StreamChunk struct {
	Text string
	Done bool
}

// RecommendationLLM generates rest recommendations with a language model.
type RecommendationLLM interface {
	// GenerateRecommendation returns the schema-checked JSON payload.
	GenerateRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) (*domain.LLMRecommendationOutput, error)
	// StreamRecommendation yields free-text deltas followed by a done chunk.
	// Breaking out of the range loop closes the upstream stream.
	StreamRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) iter.Seq2[StreamChunk, error]
}

// Config configures the OpenAI-compatible client.
type Config struct {
	APIKey  string
	BaseURL string
	Model   string
	// SystemPrompt overrides DefaultSystemPrompt for structured calls.
	SystemPrompt string
}

// OpenAIClient implements RecommendationLLM using the OpenAI API or any
// endpoint that speaks its chat completions protocol.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new client. Returns nil if APIKey is empty.
func NewOpenAIClient(cfg Config) *OpenAIClient {
	if cfg.APIKey == "" {
		return nil
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}
	systemPrompt := cfg.SystemPrompt
	if strings.TrimSpace(systemPrompt) == "" {
		systemPrompt = DefaultSystemPrompt
	}

	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	return &OpenAIClient{
		client:       openai.NewClient(opts...),
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateRecommendation requests a JSON-object completion and checks it
// against the recommendation schema.
func (c *OpenAIClient) GenerateRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) (*domain.LLMRecommendationOutput, error) {
	if c == nil {
		return nil, ErrProviderUnavailable
	}

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(BuildUserPrompt(rc, daysBack)),
		},
		ResponseFormat: openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &shared.ResponseFormatJSONObjectParam{},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProviderRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrProviderResponse)
	}

	return ParseRecommendation(resp.Choices[0].Message.Content)
}

// StreamRecommendation streams a short spoken-style recommendation.
func (c *OpenAIClient) StreamRecommendation(ctx context.Context, rc *domain.RecommendationContext, daysBack int) iter.Seq2[StreamChunk, error] {
	return func(yield func(StreamChunk, error) bool) {
		if c == nil {
			yield(StreamChunk{}, ErrProviderUnavailable)
			return
		}

		stream := c.client.Chat.Completions.NewStreaming(ctx, openai.ChatCompletionNewParams{
			Model: c.model,
			Messages: []openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(StreamingSystemPrompt),
				openai.UserMessage(BuildUserPrompt(rc, daysBack)),
			},
		})
		defer stream.Close()

		var full strings.Builder
		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) == 0 {
				continue
			}
			delta := chunk.Choices[0].Delta.Content
			if delta == "" {
				continue
			}
			full.WriteString(delta)
			if !yield(StreamChunk{Text: delta}, nil) {
				return
			}
		}

		if err := stream.Err(); err != nil {
			yield(StreamChunk{}, fmt.Errorf("%w: %v", ErrProviderRequest, err))
			return
		}

		yield(StreamChunk{Text: full.String(), Done: true}, nil)
	}
}
