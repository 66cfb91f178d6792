package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/pkg/pagination"
)

func TestTripService_List_DefaultsAndCursor(t *testing.T) {
	var trips []domain.Trip
	for i := 0; i < 25; i++ {
		start := at(1, 8, 0).Add(time.Duration(i) * time.Hour)
		trips = append(trips, trip(int64(i+1), start, start.Add(30*time.Minute)))
	}
	drivers := NewMockDriverRepository()
	drivers.profiles["dev-1"] = &domain.DriverProfile{DriverID: "dev-1", Timezone: "Asia/Shanghai"}
	svc := NewTripService(NewMockTripRepository(trips...), NewDriverService(drivers, time.UTC), time.Second)

	got, err := svc.List(context.Background(), "dev-1", domain.TripFilter{})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}

	if len(got.Data) != pagination.DefaultLimit {
		t.Fatalf("len(Data) = %d, want %d", len(got.Data), pagination.DefaultLimit)
	}
	if !got.Pagination.HasMore || got.Pagination.NextCursor == "" {
		t.Fatalf("Pagination = %+v", got.Pagination)
	}

	last := got.Data[len(got.Data)-1]
	cursor, err := pagination.DecodeCursor(got.Pagination.NextCursor)
	if err != nil {
		t.Fatalf("DecodeCursor() error = %v", err)
	}
	if cursor.ID != last.ID || cursor.BeginTime != last.StartAt.Unix() {
		t.Errorf("cursor = %+v, want last trip %d", cursor, last.ID)
	}

	// Newest first, rendered in the driver's timezone
	if got.Data[0].ID != 25 {
		t.Errorf("first trip = %d, want 25", got.Data[0].ID)
	}
	if got.Data[0].LocalStartAt.Location().String() != "Asia/Shanghai" {
		t.Errorf("local start location = %s", got.Data[0].LocalStartAt.Location())
	}
}

func TestTripService_List_LastPage(t *testing.T) {
	svc := NewTripService(
		NewMockTripRepository(trip(1, at(1, 8, 0), at(1, 9, 0))),
		NewDriverService(NewMockDriverRepository(), time.UTC),
		time.Second,
	)

	got, err := svc.List(context.Background(), "dev-1", domain.TripFilter{Limit: 10})
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if got.Pagination.HasMore || got.Pagination.NextCursor != "" {
		t.Errorf("Pagination = %+v, want last page", got.Pagination)
	}
}

func TestTripService_List_InvalidCursor(t *testing.T) {
	svc := NewTripService(NewMockTripRepository(), NewDriverService(NewMockDriverRepository(), time.UTC), time.Second)

	_, err := svc.List(context.Background(), "dev-1", domain.TripFilter{Cursor: "not-base64!"})
	if !errors.Is(err, domain.ErrInvalidInput) {
		t.Errorf("List() error = %v, want ErrInvalidInput", err)
	}
}
