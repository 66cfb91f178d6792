package fatigue

import "github.com/blaisecz/driver-fatigue/internal/domain"

// Thresholds tune the fatigue decision table. All values are minutes.
type Thresholds struct {
	SevereContinuousMinutes   float64 `yaml:"severe_continuous_minutes"`
	SevereNightMinutes        float64 `yaml:"severe_night_minutes"`
	ModerateContinuousMinutes float64 `yaml:"moderate_continuous_minutes"`
	ModerateDailyMinutes      float64 `yaml:"moderate_daily_minutes"`
	MildContinuousMinutes     float64 `yaml:"mild_continuous_minutes"`
}

// DefaultThresholds follow the WHO fatigue-driving guidance.
func DefaultThresholds() Thresholds {
	return Thresholds{
		SevereContinuousMinutes:   6 * 60,
		SevereNightMinutes:        2 * 60,
		ModerateContinuousMinutes: 4 * 60,
		ModerateDailyMinutes:      8 * 60,
		MildContinuousMinutes:     3 * 60,
	}
}

// Rule is one row of the decision table.
type Rule struct {
	Name     string
	Level    domain.FatigueLevel
	Advisory string
	Match    func(in domain.FatigueInputs) bool
}

const (
	AdvisorySevere   = "Stop driving and rest for at least 1 hour"
	AdvisoryModerate = "Rest immediately for at least 30 minutes"
	AdvisoryMild     = "Rest for at least 15 minutes"
	AdvisoryNormal   = "Continue driving and rest periodically"
)

// Classifier evaluates its rules top-down; the first match wins.
type Classifier struct {
	rules []Rule
}

// NewClassifier builds the ordered decision table from th.
func NewClassifier(th Thresholds) *Classifier {
	return &Classifier{rules: []Rule{
		{
			Name:     "severe",
			Level:    domain.FatigueSevere,
			Advisory: AdvisorySevere,
			Match: func(in domain.FatigueInputs) bool {
				return in.ContinuousMinutes > th.SevereContinuousMinutes && in.NightMinutes > th.SevereNightMinutes
			},
		},
		{
			Name:     "moderate",
			Level:    domain.FatigueModerate,
			Advisory: AdvisoryModerate,
			Match: func(in domain.FatigueInputs) bool {
				return in.ContinuousMinutes > th.ModerateContinuousMinutes || in.DailyMinutes > th.ModerateDailyMinutes
			},
		},
		{
			Name:     "mild",
			Level:    domain.FatigueMild,
			Advisory: AdvisoryMild,
			Match: func(in domain.FatigueInputs) bool {
				return in.ContinuousMinutes >= th.MildContinuousMinutes && in.ContinuousMinutes <= th.ModerateContinuousMinutes
			},
		},
		{
			Name:     "normal",
			Level:    domain.FatigueNormal,
			Advisory: AdvisoryNormal,
			Match:    func(domain.FatigueInputs) bool { return true },
		},
	}}
}

// Rules returns the decision table in evaluation order.
func (c *Classifier) Rules() []Rule {
	rules := make([]Rule, len(c.rules))
	copy(rules, c.rules)
	return rules
}

// Classify maps the inputs to a fatigue level and advisory.
func (c *Classifier) Classify(in domain.FatigueInputs) domain.FatigueAssessment {
	for _, rule := range c.rules {
		if rule.Match(in) {
			return domain.FatigueAssessment{
				Level:        rule.Level,
				AdvisoryText: rule.Advisory,
				Rule:         rule.Name,
				Inputs:       in,
			}
		}
	}
	return domain.FatigueAssessment{
		Level:        domain.FatigueNormal,
		AdvisoryText: AdvisoryNormal,
		Rule:         "normal",
		Inputs:       in,
	}
}
