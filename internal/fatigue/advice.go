package fatigue

import (
	"fmt"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

// AdviceThresholds tune the rule engine's rest advice.
type AdviceThresholds struct {
	DailyLimitMinutes       float64 `yaml:"daily_limit_minutes"`
	NightSharePct           float64 `yaml:"night_share_pct"`
	DeepNightStartHour      int     `yaml:"deep_night_start_hour"`
	DeepNightEndHour        int     `yaml:"deep_night_end_hour"`
	DeepNightDrivingMinutes float64 `yaml:"deep_night_driving_minutes"`
}

func DefaultAdviceThresholds() AdviceThresholds {
	return AdviceThresholds{
		DailyLimitMinutes:       600,
		NightSharePct:           40,
		DeepNightStartHour:      1,
		DeepNightEndHour:        4,
		DeepNightDrivingMinutes: 120,
	}
}

// AdviceInputs are the pattern figures the advice rules read.
type AdviceInputs struct {
	Incidents              int
	IncidentCeilingMinutes float64
	RecentDrivingMinutes   float64
	NightDrivingPct        float64
	NowHour                int
	NightStartHour         int
	NightEndHour           int
}

// Advice is the rule engine's rest decision before fatigue grading.
type Advice struct {
	NeedsRest      bool
	Reason         string
	Recommendation string
}

const (
	ReasonNoRest         = "No immediate rest required"
	RecommendationNoRest = "Keep your current driving pattern"
)

// Advise applies the advice rules in order. Later rules override the
// reason and recommendation of earlier ones, except the night-share rule
// which only appends to the recommendation.
func Advise(th AdviceThresholds, in AdviceInputs) Advice {
	advice := Advice{
		Reason:         ReasonNoRest,
		Recommendation: RecommendationNoRest,
	}

	if in.Incidents > 0 {
		advice.NeedsRest = true
		advice.Reason = fmt.Sprintf("You have %d continuous driving periods longer than %.0f minutes", in.Incidents, in.IncidentCeilingMinutes)
		advice.Recommendation = "Take at least 15 minutes of rest after every 2 hours of continuous driving"
	}

	if in.RecentDrivingMinutes > th.DailyLimitMinutes {
		advice.NeedsRest = true
		advice.Reason = fmt.Sprintf("You have driven %.1f hours in the past 24 hours, above the recommended limit", in.RecentDrivingMinutes/60)
		advice.Recommendation = "Rest for at least 8 hours before driving again"
	}

	if in.NightDrivingPct > th.NightSharePct {
		if !advice.NeedsRest {
			advice.NeedsRest = true
			advice.Reason = fmt.Sprintf("High share of night driving (%.1f%%)", in.NightDrivingPct)
		}
		advice.Recommendation += fmt.Sprintf(". Shift driving away from the night window (%02d:00-%02d:00)", in.NightStartHour, in.NightEndHour)
	}

	if in.NowHour >= th.DeepNightStartHour && in.NowHour <= th.DeepNightEndHour &&
		in.RecentDrivingMinutes > th.DeepNightDrivingMinutes {
		advice.NeedsRest = true
		advice.Reason = fmt.Sprintf("Extended driving in the high-fatigue hours (%02d:00-%02d:59)", th.DeepNightStartHour, th.DeepNightEndHour)
		advice.Recommendation = "Rest for at least 20 minutes now, or stop and sleep"
	}

	return advice
}

// LevelGuidance is the concrete rest guidance attached to a fatigue level.
type LevelGuidance struct {
	RestMethods    []string
	DurationAdvice string
}

var levelGuidance = map[domain.FatigueLevel]LevelGuidance{
	domain.FatigueNormal: {
		RestMethods: []string{
			"Keep the cabin ventilated and the seat upright",
			"Drink water regularly and avoid heavy meals before driving",
		},
		DurationAdvice: "No rest required now; take a short break every 2 hours",
	},
	domain.FatigueMild: {
		RestMethods: []string{
			"Stop and walk for 5-10 minutes to loosen up",
			"Stretch your neck and shoulders",
			"Open a window for fresh air and drink some water",
		},
		DurationAdvice: "Rest for at least 15 minutes",
	},
	domain.FatigueModerate: {
		RestMethods: []string{
			"Leave the vehicle and walk for 5-10 minutes",
			"Stretch your neck, shoulders and back",
			"Wash your face with cold water or use a cool towel on your eyes",
			"Drink water and avoid large amounts of caffeine",
			"Do 3-5 minutes of slow deep breathing",
		},
		DurationAdvice: "Rest immediately for at least 30 minutes",
	},
	domain.FatigueSevere: {
		RestMethods: []string{
			"Stop driving at the nearest safe place",
			"Take a 20-30 minute nap in a safe parking area",
			"Hand over to another driver if one is available",
			"Call someone to stay alert while you find a place to rest",
		},
		DurationAdvice: "Stop driving and rest for at least 1 hour",
	},
}

// GuidanceFor returns the rest guidance for level.
func GuidanceFor(level domain.FatigueLevel) LevelGuidance {
	g, ok := levelGuidance[level]
	if !ok {
		return levelGuidance[domain.FatigueNormal]
	}
	methods := make([]string, len(g.RestMethods))
	copy(methods, g.RestMethods)
	return LevelGuidance{RestMethods: methods, DurationAdvice: g.DurationAdvice}
}
