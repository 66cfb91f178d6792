package domain

// RecommendationMode selects the recommendation strategy.
type RecommendationMode string

const (
	ModeRule       RecommendationMode = "rule"
	ModeGenerative RecommendationMode = "generative"
)

// RecommendationSource records which strategy produced a recommendation.
type RecommendationSource string

const (
	SourceRule       RecommendationSource = "rule"
	SourceGenerative RecommendationSource = "generative"
)

// RestRecommendation is the unified output of the rule engine and the
// generative provider. Generative results may leave rule-only fields unset.
// @Description Rest recommendation.
type RestRecommendation struct {
	// Whether the driver should rest; null when the provider omitted it
	NeedsRest *bool `json:"needs_rest" example:"true"`
	// Why rest is (not) needed
	Reason string `json:"reason,omitempty" example:"3 continuous driving periods exceeded 240 minutes"`
	// Recommendation text
	Recommendation string `json:"recommendation" example:"Take at least 15 minutes of rest after every 2 hours of driving"`
	// Fatigue level
	FatigueLevel FatigueLevel `json:"fatigue_level,omitempty" example:"moderate"`
	// WHO-aligned advisory for the fatigue level
	AdvisoryText string `json:"advisory_text,omitempty" example:"Rest immediately for at least 30 minutes"`
	// Concrete rest methods
	RestMethods []string `json:"rest_methods,omitempty"`
	// Suggested rest duration
	DurationAdvice string `json:"duration_advice,omitempty" example:"At least 30 minutes"`
	// Producing strategy
	Source RecommendationSource `json:"source" example:"rule"`
	// Fields the provider did not return
	MissingFields []string `json:"missing_fields,omitempty"`
	// Trace ID for feedback (only present when tracing is enabled)
	TraceID string `json:"trace_id,omitempty" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
}

// Degraded reports whether the provider left fields unset.
func (r *RestRecommendation) Degraded() bool {
	return len(r.MissingFields) > 0
}

// StreamFragment is one element of a streamed recommendation: zero or more
// content fragments are followed by exactly one finished fragment.
// @Description Streamed recommendation fragment.
type StreamFragment struct {
	Content        string              `json:"content,omitempty"`
	Finished       bool                `json:"finished,omitempty"`
	Recommendation *RestRecommendation `json:"recommendation,omitempty"`
}

// RecommendationContext is the structured input handed to the generative provider.
type RecommendationContext struct {
	DriverID        string                `json:"devid"`
	DrivingPatterns DrivingPatternSummary `json:"driving_patterns"`
	RecentDriving   RecentDriving         `json:"recent_driving"`
}

// LLMRecommendationOutput is the provider payload after schema checks.
// Pointer and nil-slice fields distinguish absent values from zero values.
type LLMRecommendationOutput struct {
	NeedsRest      *bool    `json:"needs_rest,omitempty"`
	FatigueLevel   string   `json:"fatigue_level,omitempty"`
	Recommendation string   `json:"recommendation,omitempty"`
	RestMethods    []string `json:"rest_methods,omitempty"`
	DurationAdvice string   `json:"duration_advice,omitempty"`
	// MissingFields lists schema fields absent or mistyped in the payload
	MissingFields []string `json:"-"`
}

// ToRecommendationContext builds the provider input from an analysis.
func (a *DrivingAnalysis) ToRecommendationContext() *RecommendationContext {
	return &RecommendationContext{
		DriverID:        a.DriverID,
		DrivingPatterns: a.Patterns,
		RecentDriving:   a.Recent,
	}
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// ParseRecommendationMode maps a query value onto a mode. Empty means rule.
func ParseRecommendationMode(s string) (RecommendationMode, bool) {
	switch RecommendationMode(s) {
	case "", ModeRule:
		return ModeRule, true
	case ModeGenerative, "llm":
		return ModeGenerative, true
	default:
		return "", false
	}
}

// FeedbackRequest is the request body for rating a recommendation.
// @Description Rating for a previous rest recommendation.
type FeedbackRequest struct {
	// Trace ID from the recommendation response
	TraceID string `json:"trace_id" validate:"required" example:"4bf92f3577b34da6a3ce929d0e0e4736"`
	// Rating score (1-5)
	Score int `json:"score" validate:"required,min=1,max=5" example:"4" minimum:"1" maximum:"5"`
	// Optional comment
	Comment string `json:"comment,omitempty" validate:"max=1000" example:"Advice matched how tired I felt"`
}
