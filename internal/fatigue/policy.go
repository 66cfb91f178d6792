package fatigue

import (
	"fmt"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

// Policy is the full set of tunable fatigue parameters.
type Policy struct {
	NightStartHour         int              `yaml:"night_start_hour"`
	NightEndHour           int              `yaml:"night_end_hour"`
	RestThresholdMinutes   float64          `yaml:"rest_threshold_minutes"`
	IncidentCeilingMinutes float64          `yaml:"incident_ceiling_minutes"`
	Thresholds             Thresholds       `yaml:"thresholds"`
	Advice                 AdviceThresholds `yaml:"advice"`
	RestKeywords           []string         `yaml:"rest_keywords"`
}

// DefaultPolicy uses a 15 minute rest gap and a 4 hour incident ceiling.
// Earlier revisions used 20 minutes and 3 hours; both are configurable.
func DefaultPolicy() Policy {
	return Policy{
		NightStartHour:         23,
		NightEndHour:           5,
		RestThresholdMinutes:   15,
		IncidentCeilingMinutes: 240,
		Thresholds:             DefaultThresholds(),
		Advice:                 DefaultAdviceThresholds(),
		RestKeywords:           DefaultRestKeywords(),
	}
}

// DefaultRestKeywords are phrases that signal a rest recommendation in
// free text.
func DefaultRestKeywords() []string {
	return []string{
		"need to rest", "needs rest", "should rest", "must rest",
		"take a break", "take a rest", "rest now", "rest immediately",
		"stop and rest", "pull over",
		"需要休息", "应该休息", "建议休息", "休息是必要的",
		"立即休息", "停车休息", "休息一下",
	}
}

// Validate checks ranges and the ordering the decision table relies on.
func (p Policy) Validate() error {
	if p.NightStartHour < 0 || p.NightStartHour > 23 || p.NightEndHour < 0 || p.NightEndHour > 23 {
		return fmt.Errorf("%w: night window hours must be within 0-23", domain.ErrInvalidInput)
	}
	if p.RestThresholdMinutes <= 0 {
		return fmt.Errorf("%w: rest_threshold_minutes must be positive", domain.ErrInvalidInput)
	}
	if p.IncidentCeilingMinutes <= 0 {
		return fmt.Errorf("%w: incident_ceiling_minutes must be positive", domain.ErrInvalidInput)
	}
	th := p.Thresholds
	if th.MildContinuousMinutes > th.ModerateContinuousMinutes {
		return fmt.Errorf("%w: mild_continuous_minutes exceeds moderate_continuous_minutes", domain.ErrInvalidInput)
	}
	if th.ModerateContinuousMinutes > th.SevereContinuousMinutes {
		return fmt.Errorf("%w: moderate_continuous_minutes exceeds severe_continuous_minutes", domain.ErrInvalidInput)
	}
	a := p.Advice
	if a.DeepNightStartHour < 0 || a.DeepNightEndHour > 23 || a.DeepNightStartHour > a.DeepNightEndHour {
		return fmt.Errorf("%w: deep night hours must be an ordered range within 0-23", domain.ErrInvalidInput)
	}
	return nil
}

// RestThreshold is the minimum gap that breaks a continuous segment.
func (p Policy) RestThreshold() time.Duration {
	return minutes(p.RestThresholdMinutes)
}

// IncidentCeiling is the segment length above which a segment is an incident.
func (p Policy) IncidentCeiling() time.Duration {
	return minutes(p.IncidentCeilingMinutes)
}

// NightWindow returns the configured window on loc's clock.
func (p Policy) NightWindow(loc *time.Location) NightWindow {
	return NightWindow{StartHour: p.NightStartHour, EndHour: p.NightEndHour, Location: loc}
}

func minutes(m float64) time.Duration {
	return time.Duration(m * float64(time.Minute))
}
