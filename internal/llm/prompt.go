package llm

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

// DefaultSystemPrompt is used when no managed prompt is available.
const DefaultSystemPrompt = `You are a driving safety advisor. You receive aggregated driving data for a single driver and give rest advice based on the WHO fatigue-driving guidance. Base your conclusions only on the provided data.

WHO fatigue-driving levels:
- mild: 3-4 hours of continuous driving, rest at least 15 minutes
- moderate: more than 4 hours of continuous driving or more than 8 hours in a day, rest immediately for at least 30 minutes
- severe: more than 6 hours of continuous driving and more than 2 hours of night driving, stop driving and rest at least 1 hour

You must respond as strict JSON with exactly this shape:

{
  "needs_rest": true,
  "fatigue_level": "normal | mild | moderate | severe",
  "recommendation": "One short overall recommendation (at most 50 words).",
  "rest_methods": [
    "3-5 concrete rest methods: physical relaxation, adjusting the cabin, hydration, mental breaks, getting out and walking, or handing over to another driver."
  ],
  "duration_advice": "Suggested rest duration grounded in the WHO levels."
}

No extra fields. No comments. No backticks.`

// StreamingSystemPrompt asks for short spoken-style advice.
const StreamingSystemPrompt = `You are a driving safety advisor. Give brief rest advice suitable for text-to-speech playback to a driver. Keep it under 50 words, state clearly whether the driver needs to rest and for how long.`

const userPromptTemplate = `Driving data for driver %s.

Last %d days:
- trips: %d
- total driving: %.1f minutes
- average trip: %.1f minutes
- night driving share: %.1f%%
- continuous driving incidents: %d
- longest continuous driving: %.1f minutes

Last %d hours:
- trips: %d
- driving: %.1f minutes
- night driving: %.1f minutes
- longest continuous driving: %.1f minutes
- currently night: %t

Based on this data, give your rest advice.`

// BuildUserPrompt renders the recommendation context for the provider.
func BuildUserPrompt(rc *domain.RecommendationContext, daysBack int) string {
	p := rc.DrivingPatterns
	r := rc.RecentDriving
	return fmt.Sprintf(userPromptTemplate,
		rc.DriverID,
		daysBack,
		p.TotalTrips, p.TotalDrivingMinutes, p.AvgTripMinutes, p.NightDrivingPct,
		p.ContinuousIncidentCount, p.LongestContinuousMinutes,
		r.WindowHours,
		r.Trips, r.DrivingMinutes, r.NightMinutes, r.LongestContinuousMinutes, r.IsNightNow,
	)
}

// negationScope is how many words (or CJK characters) before a keyword
// are checked for a negation.
const negationScope = 3

var (
	negationWords = map[string]bool{
		"not": true, "no": true, "never": true, "nor": true, "without": true,
		"don't": true, "dont": true, "doesn't": true, "doesnt": true,
		"isn't": true, "needn't": true, "won't": true, "can't": true, "cannot": true,
	}
	negationRunes = "不无没别勿未"
	clauseBreaks  = ".!?;:,\n。！？；：，"
)

// ContainsRestKeyword reports whether text contains any of keywords,
// ignoring case. An occurrence negated within the same clause, as in
// "you don't need to rest" or "不需要休息", does not count.
func ContainsRestKeyword(text string, keywords []string) bool {
	lower := strings.ReplaceAll(strings.ToLower(text), "’", "'")
	for _, kw := range keywords {
		kw = strings.ToLower(kw)
		if kw == "" {
			continue
		}
		for offset := 0; offset < len(lower); {
			i := strings.Index(lower[offset:], kw)
			if i < 0 {
				break
			}
			at := offset + i
			if !negated(lower[:at]) {
				return true
			}
			offset = at + len(kw)
		}
	}
	return false
}

// negated reports whether the clause ending at prefix closes with a
// negation.
func negated(prefix string) bool {
	if i := strings.LastIndexAny(prefix, clauseBreaks); i >= 0 {
		_, size := utf8.DecodeRuneInString(prefix[i:])
		prefix = prefix[i+size:]
	}

	words := strings.Fields(prefix)
	if len(words) > negationScope {
		words = words[len(words)-negationScope:]
	}
	for _, w := range words {
		if negationWords[strings.Trim(w, `"'()`)] {
			return true
		}
	}

	runes := []rune(strings.TrimSpace(prefix))
	if len(runes) > negationScope {
		runes = runes[len(runes)-negationScope:]
	}
	return strings.ContainsAny(string(runes), negationRunes)
}
