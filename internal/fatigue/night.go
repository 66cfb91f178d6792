// Package fatigue holds the pure continuous-driving and fatigue rules.
// Nothing here performs I/O; every function is safe for concurrent use.
package fatigue

import (
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

// NightWindow is a local-clock hour range [StartHour, EndHour).
// A StartHour greater than EndHour wraps past midnight.
type NightWindow struct {
	StartHour int
	EndHour   int
	Location  *time.Location
}

// DefaultNightWindow is 23:00-05:00 UTC.
func DefaultNightWindow() NightWindow {
	return NightWindow{StartHour: 23, EndHour: 5, Location: time.UTC}
}

func (w NightWindow) location() *time.Location {
	if w.Location == nil {
		return time.UTC
	}
	return w.Location
}

// ContainsHour reports whether a local hour lies in the window.
func (w NightWindow) ContainsHour(hour int) bool {
	switch {
	case w.StartHour == w.EndHour:
		return false
	case w.StartHour > w.EndHour:
		return hour >= w.StartHour || hour < w.EndHour
	default:
		return hour >= w.StartHour && hour < w.EndHour
	}
}

// Contains reports whether t falls in the window on the local clock.
func (w NightWindow) Contains(t time.Time) bool {
	return w.ContainsHour(t.In(w.location()).Hour())
}

// Overlap returns how much of [start, end) lies inside the window.
// The interval is walked in hour-aligned local steps; each step counts
// when the local hour it starts in is a night hour.
func (w NightWindow) Overlap(start, end time.Time) time.Duration {
	var total time.Duration
	cursor := start.In(w.location())
	for cursor.Before(end) {
		next := nextHourBoundary(cursor)
		stepEnd := next
		if end.Before(stepEnd) {
			stepEnd = end
		}
		if w.ContainsHour(cursor.Hour()) {
			total += stepEnd.Sub(cursor)
		}
		cursor = next
	}
	return total
}

// nextHourBoundary moves forward on the absolute timeline so repeated
// local hours around DST changes cannot stall the walk.
func nextHourBoundary(t time.Time) time.Time {
	intoHour := time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second +
		time.Duration(t.Nanosecond())
	return t.Add(time.Hour - intoHour)
}

// NightMinutes sums the night-window overlap of every trip, in minutes.
func (w NightWindow) NightMinutes(trips []domain.Trip) float64 {
	var total time.Duration
	for _, trip := range trips {
		total += w.Overlap(trip.StartAt(), trip.EndAt())
	}
	return total.Minutes()
}
