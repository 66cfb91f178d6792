package llm

import (
	"errors"
	"reflect"
	"testing"
)

func TestParseRecommendation(t *testing.T) {
	tests := []struct {
		name          string
		raw           string
		wantErr       bool
		wantNeedsRest *bool
		wantLevel     string
		wantMethods   int
		wantMissing   []string
	}{
		{
			name:          "complete payload",
			raw:           `{"needs_rest": true, "fatigue_level": "moderate", "recommendation": "Rest now", "rest_methods": ["walk", "stretch"], "duration_advice": "30 minutes"}`,
			wantNeedsRest: boolPtr(true),
			wantLevel:     "moderate",
			wantMethods:   2,
		},
		{
			name:          "fenced payload",
			raw:           "```json\n{\"needs_rest\": false, \"fatigue_level\": \"normal\", \"recommendation\": \"Keep going\", \"rest_methods\": [], \"duration_advice\": \"none\"}\n```",
			wantNeedsRest: boolPtr(false),
			wantLevel:     "normal",
			wantMethods:   0,
		},
		{
			name:          "needs_rest as string",
			raw:           `{"needs_rest": "True", "fatigue_level": "mild", "recommendation": "r", "rest_methods": ["a"], "duration_advice": "d"}`,
			wantNeedsRest: boolPtr(true),
			wantLevel:     "mild",
			wantMethods:   1,
		},
		{
			name:        "missing needs_rest",
			raw:         `{"fatigue_level": "mild", "recommendation": "r", "rest_methods": ["a"], "duration_advice": "d"}`,
			wantLevel:   "mild",
			wantMethods: 1,
			wantMissing: []string{FieldNeedsRest},
		},
		{
			name:        "mistyped fields",
			raw:         `{"needs_rest": 1, "fatigue_level": 2, "recommendation": "r", "rest_methods": "walk", "duration_advice": ""}`,
			wantMissing: []string{FieldNeedsRest, FieldFatigueLevel, FieldRestMethods, FieldDurationAdvice},
		},
		{
			name:    "prose only",
			raw:     "You should take a break.",
			wantErr: true,
		},
		{
			name:    "json array",
			raw:     `["needs_rest"]`,
			wantErr: true,
		},
		{
			name:    "truncated object",
			raw:     `{"needs_rest": true, "fatigue_level": "mo`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ParseRecommendation(tt.raw)
			if tt.wantErr {
				if !errors.Is(err, ErrProviderResponse) {
					t.Fatalf("expected ErrProviderResponse, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if !reflect.DeepEqual(out.NeedsRest, tt.wantNeedsRest) {
				t.Errorf("NeedsRest = %v, want %v", fmtBool(out.NeedsRest), fmtBool(tt.wantNeedsRest))
			}
			if out.FatigueLevel != tt.wantLevel {
				t.Errorf("FatigueLevel = %q, want %q", out.FatigueLevel, tt.wantLevel)
			}
			if len(out.RestMethods) != tt.wantMethods {
				t.Errorf("RestMethods = %v, want %d items", out.RestMethods, tt.wantMethods)
			}
			if !reflect.DeepEqual(out.MissingFields, tt.wantMissing) {
				t.Errorf("MissingFields = %v, want %v", out.MissingFields, tt.wantMissing)
			}
		})
	}
}

func TestContainsRestKeyword(t *testing.T) {
	keywords := []string{"take a break", "need to rest", "需要休息"}

	tests := []struct {
		text string
		want bool
	}{
		{"Please Take A Break at the next stop.", true},
		{"您已连续驾驶4小时，需要休息30分钟", true},
		{"Keep driving safely.", false},
		{"", false},
		{"You need to rest now.", true},
		{"You don't need to rest yet.", false},
		{"You don’t need to rest yet.", false},
		{"You do not need to rest.", false},
		{"There is no need to take a break.", false},
		{"Don't wait. You need to rest now.", true},
		{"No need to rest yet, but take a break if you feel tired.", true},
		{"You don't need to rest now, yet you need to rest before the night shift.", true},
		{"目前不需要休息", false},
	}

	for _, tt := range tests {
		if got := ContainsRestKeyword(tt.text, keywords); got != tt.want {
			t.Errorf("ContainsRestKeyword(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}
}

func boolPtr(b bool) *bool { return &b }

func fmtBool(b *bool) any {
	if b == nil {
		return nil
	}
	return *b
}
