package fatigue

import (
	"testing"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

func TestClassifier_Classify(t *testing.T) {
	c := NewClassifier(DefaultThresholds())

	tests := []struct {
		name      string
		in        domain.FatigueInputs
		wantLevel domain.FatigueLevel
		wantRule  string
	}{
		{
			name:      "short drive",
			in:        domain.FatigueInputs{ContinuousMinutes: 45, DailyMinutes: 90},
			wantLevel: domain.FatigueNormal,
			wantRule:  "normal",
		},
		{
			name:      "just under three hours",
			in:        domain.FatigueInputs{ContinuousMinutes: 179, DailyMinutes: 179},
			wantLevel: domain.FatigueNormal,
			wantRule:  "normal",
		},
		{
			name:      "exactly three hours",
			in:        domain.FatigueInputs{ContinuousMinutes: 180, DailyMinutes: 180},
			wantLevel: domain.FatigueMild,
			wantRule:  "mild",
		},
		{
			name:      "exactly four hours is mild",
			in:        domain.FatigueInputs{ContinuousMinutes: 240, DailyMinutes: 240},
			wantLevel: domain.FatigueMild,
			wantRule:  "mild",
		},
		{
			name:      "just over four hours",
			in:        domain.FatigueInputs{ContinuousMinutes: 241, DailyMinutes: 241},
			wantLevel: domain.FatigueModerate,
			wantRule:  "moderate",
		},
		{
			name:      "daily total over eight hours",
			in:        domain.FatigueInputs{ContinuousMinutes: 100, DailyMinutes: 481},
			wantLevel: domain.FatigueModerate,
			wantRule:  "moderate",
		},
		{
			name:      "long continuous run without night driving",
			in:        domain.FatigueInputs{ContinuousMinutes: 420, DailyMinutes: 395},
			wantLevel: domain.FatigueModerate,
			wantRule:  "moderate",
		},
		{
			name:      "long night run",
			in:        domain.FatigueInputs{ContinuousMinutes: 361, DailyMinutes: 400, NightMinutes: 121},
			wantLevel: domain.FatigueSevere,
			wantRule:  "severe",
		},
		{
			name:      "six hours exactly with night driving",
			in:        domain.FatigueInputs{ContinuousMinutes: 360, DailyMinutes: 360, NightMinutes: 200},
			wantLevel: domain.FatigueModerate,
			wantRule:  "moderate",
		},
		{
			name:      "no driving",
			in:        domain.FatigueInputs{},
			wantLevel: domain.FatigueNormal,
			wantRule:  "normal",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.Classify(tt.in)
			if got.Level != tt.wantLevel {
				t.Errorf("Level = %v, want %v", got.Level, tt.wantLevel)
			}
			if got.Rule != tt.wantRule {
				t.Errorf("Rule = %q, want %q", got.Rule, tt.wantRule)
			}
			if got.AdvisoryText == "" {
				t.Error("expected advisory text")
			}
			if got.Inputs != tt.in {
				t.Errorf("Inputs = %+v, want %+v", got.Inputs, tt.in)
			}
		})
	}
}

func TestClassifier_RulesOrder(t *testing.T) {
	rules := NewClassifier(DefaultThresholds()).Rules()

	want := []domain.FatigueLevel{domain.FatigueSevere, domain.FatigueModerate, domain.FatigueMild, domain.FatigueNormal}
	if len(rules) != len(want) {
		t.Fatalf("expected %d rules, got %d", len(want), len(rules))
	}
	for i, level := range want {
		if rules[i].Level != level {
			t.Errorf("rule %d level = %v, want %v", i, rules[i].Level, level)
		}
	}

	// Mutating the returned slice does not affect the classifier
	rules[0] = Rule{}
	if NewClassifier(DefaultThresholds()).Rules()[0].Name != "severe" {
		t.Error("Rules() leaked internal slice")
	}
}

func TestClassifier_ScenarioFromTrips(t *testing.T) {
	trips := []domain.Trip{
		tripAt(1, utc(15, 9, 0), utc(15, 9, 30)),
		tripAt(2, utc(15, 9, 45), utc(15, 13, 0)),
		tripAt(3, utc(15, 13, 10), utc(15, 16, 0)),
	}

	stats := SummarizeSegments(BuildSegments(trips, 20*time.Minute), 4*time.Hour)
	var daily float64
	for _, trip := range trips {
		daily += trip.Duration().Minutes()
	}

	got := NewClassifier(DefaultThresholds()).Classify(domain.FatigueInputs{
		ContinuousMinutes: stats.LongestMinutes,
		DailyMinutes:      daily,
		NightMinutes:      DefaultNightWindow().NightMinutes(trips),
	})

	if got.Level != domain.FatigueModerate {
		t.Errorf("Level = %v, want moderate", got.Level)
	}
	if got.Inputs.ContinuousMinutes != 420 {
		t.Errorf("ContinuousMinutes = %v, want 420", got.Inputs.ContinuousMinutes)
	}
	if got.Inputs.DailyMinutes != 395 {
		t.Errorf("DailyMinutes = %v, want 395", got.Inputs.DailyMinutes)
	}
}
