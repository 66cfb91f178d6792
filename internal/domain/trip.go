package domain

import (
	"fmt"
	"time"
)

// Trip is a single trajectory-derived trip of a driver.
// Rows are produced by the trajectory ETL; the service only reads them.
type Trip struct {
	ID         int64  `gorm:"column:traj_id;primaryKey" json:"trip_id"`
	DriverID   string `gorm:"column:devid;type:varchar(64);not null;index:idx_trip_driver_begin" json:"driver_id"`
	TravelTime int64  `gorm:"column:travel_time;not null" json:"duration_seconds"`
	BeginTime  int64  `gorm:"column:begin_time;not null;index:idx_trip_driver_begin" json:"begin_time"`
	EndTime    int64  `gorm:"column:end_time;not null" json:"end_time"`
}

func (Trip) TableName() string {
	return "dwd_trip_info"
}

// StartAt returns the trip start as a UTC instant.
func (t Trip) StartAt() time.Time {
	return time.Unix(t.BeginTime, 0).UTC()
}

// EndAt returns the trip end as a UTC instant.
func (t Trip) EndAt() time.Time {
	return time.Unix(t.EndTime, 0).UTC()
}

// Duration is the recorded travel time.
func (t Trip) Duration() time.Duration {
	return time.Duration(t.TravelTime) * time.Second
}

// Validate rejects trips whose end precedes their start or whose recorded
// duration is negative.
func (t Trip) Validate() error {
	if t.EndTime < t.BeginTime {
		return fmt.Errorf("%w: trip %d ends before it starts", ErrInvalidTrip, t.ID)
	}
	if t.TravelTime < 0 {
		return fmt.Errorf("%w: trip %d has negative duration %ds", ErrInvalidTrip, t.ID, t.TravelTime)
	}
	return nil
}

// ValidateTrips returns the first validation error in trips, if any.
func ValidateTrips(trips []Trip) error {
	for _, t := range trips {
		if err := t.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// TripResponse is the response body for trip listing.
// @Description Trip record with UTC and local times.
type TripResponse struct {
	// Trajectory identifier
	ID int64 `json:"trip_id" example:"1024"`
	// Driver device identifier
	DriverID string `json:"driver_id" example:"dev-00042"`
	// Trip start (UTC)
	StartAt time.Time `json:"start_at" example:"2024-01-15T09:00:00Z"`
	// Trip end (UTC)
	EndAt time.Time `json:"end_at" example:"2024-01-15T09:30:00Z"`
	// Recorded travel time in seconds
	DurationSeconds int64 `json:"duration_seconds" example:"1800"`
	// Trip start in the driver's timezone
	LocalStartAt time.Time `json:"local_start_at" example:"2024-01-15T17:00:00+08:00"`
	// Trip end in the driver's timezone
	LocalEndAt time.Time `json:"local_end_at" example:"2024-01-15T17:30:00+08:00"`
}

func (t *Trip) ToResponse(loc *time.Location) TripResponse {
	if loc == nil {
		loc = time.UTC
	}
	return TripResponse{
		ID:              t.ID,
		DriverID:        t.DriverID,
		StartAt:         t.StartAt(),
		EndAt:           t.EndAt(),
		DurationSeconds: t.TravelTime,
		LocalStartAt:    t.StartAt().In(loc),
		LocalEndAt:      t.EndAt().In(loc),
	}
}

// TripListResponse is the response body for listing trips.
// @Description Paginated list of trips.
type TripListResponse struct {
	// Array of trip records
	Data []TripResponse `json:"data"`
	// Pagination metadata
	Pagination PaginationResponse `json:"pagination"`
}

// PaginationResponse contains pagination metadata.
// @Description Cursor-based pagination info.
type PaginationResponse struct {
	// Cursor for fetching the next page (empty if no more pages)
	NextCursor string `json:"next_cursor,omitempty" example:"eyJpZCI6MTAyNCwiYmVnaW5fdGltZSI6MTcwNTMwOTIwMH0"`
	// True if more results are available
	HasMore bool `json:"has_more" example:"true"`
}

// TripFilter contains filter parameters for listing trips
type TripFilter struct {
	From   *time.Time
	To     *time.Time
	Limit  int
	Cursor string
}
