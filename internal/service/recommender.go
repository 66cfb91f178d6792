package service

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/fatigue"
	"github.com/blaisecz/driver-fatigue/internal/llm"
)

// Recommender turns an analysis into rest advice.
type Recommender interface {
	Recommend(ctx context.Context, a *domain.DrivingAnalysis) (*domain.RestRecommendation, error)
	// Stream yields content fragments followed by exactly one finished
	// fragment, or stops at the first error.
	Stream(ctx context.Context, a *domain.DrivingAnalysis) iter.Seq2[domain.StreamFragment, error]
}

// ruleRecommender combines the advice rules with the fatigue level.
type ruleRecommender struct {
	policy fatigue.Policy
}

// NewRuleRecommender builds the deterministic strategy.
func NewRuleRecommender(policy fatigue.Policy) Recommender {
	return &ruleRecommender{policy: policy}
}

func (r *ruleRecommender) Recommend(_ context.Context, a *domain.DrivingAnalysis) (*domain.RestRecommendation, error) {
	advice := fatigue.Advise(r.policy.Advice, fatigue.AdviceInputs{
		Incidents:              a.Patterns.ContinuousIncidentCount,
		IncidentCeilingMinutes: r.policy.IncidentCeilingMinutes,
		RecentDrivingMinutes:   a.Recent.DrivingMinutes,
		NightDrivingPct:        a.Patterns.NightDrivingPct,
		NowHour:                a.NowLocal.Hour(),
		NightStartHour:         r.policy.NightStartHour,
		NightEndHour:           r.policy.NightEndHour,
	})

	level := a.Assessment.Level
	needsRest := advice.NeedsRest || level.AtLeast(domain.FatigueMild)

	reason := advice.Reason
	recommendation := advice.Recommendation
	if needsRest && !advice.NeedsRest {
		reason = fmt.Sprintf("Fatigue level is %s", level)
		recommendation = a.Assessment.AdvisoryText
	}

	guidance := fatigue.GuidanceFor(level)
	return &domain.RestRecommendation{
		NeedsRest:      domain.BoolPtr(needsRest),
		Reason:         reason,
		Recommendation: recommendation,
		FatigueLevel:   level,
		AdvisoryText:   a.Assessment.AdvisoryText,
		RestMethods:    guidance.RestMethods,
		DurationAdvice: guidance.DurationAdvice,
		Source:         domain.SourceRule,
	}, nil
}

// Stream has nothing to stream in rule mode; it yields one finished fragment.
func (r *ruleRecommender) Stream(ctx context.Context, a *domain.DrivingAnalysis) iter.Seq2[domain.StreamFragment, error] {
	return func(yield func(domain.StreamFragment, error) bool) {
		rec, err := r.Recommend(ctx, a)
		if err != nil {
			yield(domain.StreamFragment{}, err)
			return
		}
		yield(domain.StreamFragment{Finished: true, Recommendation: rec}, nil)
	}
}

// generativeRecommender delegates to the language model.
type generativeRecommender struct {
	client       llm.RecommendationLLM
	restKeywords []string
}

// NewGenerativeRecommender builds the provider-backed strategy.
func NewGenerativeRecommender(client llm.RecommendationLLM, restKeywords []string) Recommender {
	return &generativeRecommender{client: client, restKeywords: restKeywords}
}

func (g *generativeRecommender) Recommend(ctx context.Context, a *domain.DrivingAnalysis) (*domain.RestRecommendation, error) {
	out, err := g.client.GenerateRecommendation(ctx, a.ToRecommendationContext(), a.Window.DaysBack)
	if err != nil {
		return nil, err
	}

	return fromOutput(out, a), nil
}

func (g *generativeRecommender) Stream(ctx context.Context, a *domain.DrivingAnalysis) iter.Seq2[domain.StreamFragment, error] {
	return func(yield func(domain.StreamFragment, error) bool) {
		for chunk, err := range g.client.StreamRecommendation(ctx, a.ToRecommendationContext(), a.Window.DaysBack) {
			if err != nil {
				yield(domain.StreamFragment{}, err)
				return
			}
			if !chunk.Done {
				if !yield(domain.StreamFragment{Content: chunk.Text}, nil) {
					return
				}
				continue
			}

			yield(domain.StreamFragment{
				Finished:       true,
				Recommendation: g.summarize(chunk.Text, a),
			}, nil)
			return
		}
	}
}

// GenerativeReason attributes provider-backed advice.
const GenerativeReason = "Assessed by the recommendation model"

// fromOutput maps a checked provider payload onto a recommendation. An
// unknown fatigue level is dropped and reported as missing.
func fromOutput(out *domain.LLMRecommendationOutput, a *domain.DrivingAnalysis) *domain.RestRecommendation {
	rec := &domain.RestRecommendation{
		NeedsRest:      out.NeedsRest,
		Recommendation: out.Recommendation,
		Reason:         GenerativeReason,
		AdvisoryText:   a.Assessment.AdvisoryText,
		RestMethods:    slices.Clone(out.RestMethods),
		DurationAdvice: out.DurationAdvice,
		Source:         domain.SourceGenerative,
		MissingFields:  slices.Clone(out.MissingFields),
	}

	if out.FatigueLevel != "" {
		if level, ok := domain.ParseFatigueLevel(out.FatigueLevel); ok {
			rec.FatigueLevel = level
		} else {
			rec.MissingFields = append(rec.MissingFields, llm.FieldFatigueLevel)
		}
	}
	return rec
}

// summarize builds the final recommendation of a stream. Text that parses
// as a structured payload with needs_rest is mapped like a unary result;
// anything else is kept verbatim with needs_rest from the rest keywords.
func (g *generativeRecommender) summarize(text string, a *domain.DrivingAnalysis) *domain.RestRecommendation {
	if out, err := llm.ParseRecommendation(text); err == nil && out.NeedsRest != nil {
		rec := fromOutput(out, a)
		if rec.Recommendation == "" {
			rec.Recommendation = text
		}
		return rec
	}

	return &domain.RestRecommendation{
		NeedsRest:      domain.BoolPtr(llm.ContainsRestKeyword(text, g.restKeywords)),
		Recommendation: text,
		Reason:         GenerativeReason,
		AdvisoryText:   a.Assessment.AdvisoryText,
		Source:         domain.SourceGenerative,
	}
}
