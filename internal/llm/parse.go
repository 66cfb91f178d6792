package llm

import (
	"fmt"
	"strings"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/tidwall/gjson"
)

// Payload field names checked by ParseRecommendation.
const (
	FieldNeedsRest      = "needs_rest"
	FieldFatigueLevel   = "fatigue_level"
	FieldRecommendation = "recommendation"
	FieldRestMethods    = "rest_methods"
	FieldDurationAdvice = "duration_advice"
)

// ParseRecommendation validates a provider payload. Text that is not a
// JSON object fails with ErrProviderResponse; absent or mistyped fields
// are left unset and listed in MissingFields.
func ParseRecommendation(raw string) (*domain.LLMRecommendationOutput, error) {
	doc := extractJSONObject(raw)
	if doc == "" {
		return nil, fmt.Errorf("%w: payload is not a JSON object", ErrProviderResponse)
	}

	root := gjson.Parse(doc)
	out := &domain.LLMRecommendationOutput{}

	if v := root.Get(FieldNeedsRest); v.IsBool() {
		out.NeedsRest = domain.BoolPtr(v.Bool())
	} else if v.Type == gjson.String && (strings.EqualFold(v.Str, "true") || strings.EqualFold(v.Str, "false")) {
		out.NeedsRest = domain.BoolPtr(strings.EqualFold(v.Str, "true"))
	} else {
		out.MissingFields = append(out.MissingFields, FieldNeedsRest)
	}

	if v := root.Get(FieldFatigueLevel); v.Type == gjson.String && v.Str != "" {
		out.FatigueLevel = v.Str
	} else {
		out.MissingFields = append(out.MissingFields, FieldFatigueLevel)
	}

	if v := root.Get(FieldRecommendation); v.Type == gjson.String && v.Str != "" {
		out.Recommendation = v.Str
	} else {
		out.MissingFields = append(out.MissingFields, FieldRecommendation)
	}

	if v := root.Get(FieldRestMethods); v.IsArray() {
		for _, item := range v.Array() {
			if item.Type == gjson.String && item.Str != "" {
				out.RestMethods = append(out.RestMethods, item.Str)
			}
		}
	} else {
		out.MissingFields = append(out.MissingFields, FieldRestMethods)
	}

	if v := root.Get(FieldDurationAdvice); v.Type == gjson.String && v.Str != "" {
		out.DurationAdvice = v.Str
	} else {
		out.MissingFields = append(out.MissingFields, FieldDurationAdvice)
	}

	return out, nil
}

// extractJSONObject returns raw, or the outermost {...} span inside it,
// when that is a valid JSON object. Models sometimes wrap the payload in
// code fences or a sentence.
func extractJSONObject(raw string) string {
	s := strings.TrimSpace(raw)
	if gjson.Valid(s) && gjson.Parse(s).IsObject() {
		return s
	}

	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	s = s[start : end+1]
	if gjson.Valid(s) && gjson.Parse(s).IsObject() {
		return s
	}
	return ""
}
