package fatigue

import (
	"sort"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
)

// BuildSegments merges trips into continuous-driving segments. A gap
// shorter than restThreshold does not count as rest, so the trips on
// either side belong to the same segment.
//
// Input order does not matter: a copy is sorted by start time (stable, so
// ties keep retrieval order) before the scan.
func BuildSegments(trips []domain.Trip, restThreshold time.Duration) []domain.Segment {
	if len(trips) == 0 {
		return nil
	}

	sorted := make([]domain.Trip, len(trips))
	copy(sorted, trips)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].BeginTime < sorted[j].BeginTime
	})

	var segments []domain.Segment
	current := domain.Segment{
		StartAt:   sorted[0].StartAt(),
		EndAt:     sorted[0].EndAt(),
		TripCount: 1,
	}

	for _, trip := range sorted[1:] {
		gap := trip.StartAt().Sub(current.EndAt)
		if gap < restThreshold {
			if trip.EndAt().After(current.EndAt) {
				current.EndAt = trip.EndAt()
			}
			current.TripCount++
			continue
		}

		segments = append(segments, current)
		current = domain.Segment{
			StartAt:   trip.StartAt(),
			EndAt:     trip.EndAt(),
			TripCount: 1,
		}
	}

	return append(segments, current)
}

// SegmentStats summarises a segment list against the incident ceiling.
type SegmentStats struct {
	Count          int
	Incidents      int
	LongestMinutes float64
}

// SummarizeSegments counts segments strictly longer than ceiling as
// incidents and reports the longest segment regardless.
func SummarizeSegments(segments []domain.Segment, ceiling time.Duration) SegmentStats {
	stats := SegmentStats{Count: len(segments)}
	for _, seg := range segments {
		d := seg.Duration()
		if d > ceiling {
			stats.Incidents++
		}
		if m := d.Minutes(); m > stats.LongestMinutes {
			stats.LongestMinutes = m
		}
	}
	return stats
}
