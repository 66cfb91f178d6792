package domain

import (
	"strings"
	"time"
)

// FatigueLevel is the ordinal fatigue severity.
// @Description Fatigue severity: normal < mild < moderate < severe.
type FatigueLevel string

const (
	FatigueNormal   FatigueLevel = "normal"
	FatigueMild     FatigueLevel = "mild"
	FatigueModerate FatigueLevel = "moderate"
	FatigueSevere   FatigueLevel = "severe"
)

// Rank orders levels; unknown levels rank below normal.
func (l FatigueLevel) Rank() int {
	switch l {
	case FatigueNormal:
		return 0
	case FatigueMild:
		return 1
	case FatigueModerate:
		return 2
	case FatigueSevere:
		return 3
	default:
		return -1
	}
}

// AtLeast reports whether l is as severe as other.
func (l FatigueLevel) AtLeast(other FatigueLevel) bool {
	return l.Rank() >= other.Rank() && l.Rank() >= 0
}

var fatigueLevelAliases = map[string]FatigueLevel{
	"normal":   FatigueNormal,
	"none":     FatigueNormal,
	"正常":       FatigueNormal,
	"mild":     FatigueMild,
	"light":    FatigueMild,
	"轻度":       FatigueMild,
	"moderate": FatigueModerate,
	"medium":   FatigueModerate,
	"中度":       FatigueModerate,
	"severe":   FatigueSevere,
	"heavy":    FatigueSevere,
	"重度":       FatigueSevere,
}

// ParseFatigueLevel maps free-form level labels onto a FatigueLevel.
func ParseFatigueLevel(s string) (FatigueLevel, bool) {
	key := strings.ToLower(strings.TrimSpace(s))
	key = strings.TrimSuffix(key, " fatigue")
	level, ok := fatigueLevelAliases[key]
	return level, ok
}

// FatigueInputs are the aggregates the classifier decides on.
// @Description Classifier inputs in minutes.
type FatigueInputs struct {
	ContinuousMinutes float64 `json:"continuous_minutes" example:"270"`
	DailyMinutes      float64 `json:"daily_minutes" example:"420"`
	NightMinutes      float64 `json:"night_minutes" example:"0"`
}

// FatigueAssessment is the classifier verdict for one request.
// @Description Fatigue level and WHO-aligned advisory.
type FatigueAssessment struct {
	Level        FatigueLevel  `json:"level" example:"moderate"`
	AdvisoryText string        `json:"advisory_text" example:"Rest immediately for at least 30 minutes"`
	Rule         string        `json:"rule" example:"moderate"`
	Inputs       FatigueInputs `json:"inputs"`
}

// Segment is one continuous-driving period: a maximal run of trips whose
// gaps are all below the rest threshold.
// @Description Continuous driving segment.
type Segment struct {
	StartAt   time.Time `json:"start_at" example:"2024-01-15T09:00:00Z"`
	EndAt     time.Time `json:"end_at" example:"2024-01-15T16:00:00Z"`
	TripCount int       `json:"trip_count" example:"3"`
}

// Duration includes any sub-threshold gaps inside the segment.
func (s Segment) Duration() time.Duration {
	return s.EndAt.Sub(s.StartAt)
}

// Minutes is Duration in fractional minutes.
func (s Segment) Minutes() float64 {
	return s.Duration().Minutes()
}
