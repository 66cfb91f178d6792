package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/repository"
	"github.com/blaisecz/driver-fatigue/pkg/pagination"
)

type TripService interface {
	List(ctx context.Context, driverID string, filter domain.TripFilter) (*domain.TripListResponse, error)
}

type tripService struct {
	repo         repository.TripRepository
	drivers      DriverService
	queryTimeout time.Duration
}

func NewTripService(repo repository.TripRepository, drivers DriverService, queryTimeout time.Duration) TripService {
	return &tripService{
		repo:         repo,
		drivers:      drivers,
		queryTimeout: queryTimeout,
	}
}

func (s *tripService) List(ctx context.Context, driverID string, filter domain.TripFilter) (*domain.TripListResponse, error) {
	if _, err := pagination.DecodeCursor(filter.Cursor); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	loc, err := s.drivers.Location(ctx, driverID)
	if err != nil {
		return nil, err
	}

	queryCtx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	trips, err := s.repo.List(queryCtx, driverID, filter)
	if err != nil {
		if errors.Is(err, pagination.ErrInvalidCursor) {
			return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
		}
		return nil, err
	}

	trips, hasMore := pagination.Page(trips, pagination.NormalizeLimit(filter.Limit))

	response := &domain.TripListResponse{
		Data: make([]domain.TripResponse, len(trips)),
		Pagination: domain.PaginationResponse{
			HasMore: hasMore,
		},
	}

	for i := range trips {
		response.Data[i] = trips[i].ToResponse(loc)
	}

	// Set next cursor if there are more results
	if hasMore && len(trips) > 0 {
		last := trips[len(trips)-1]
		cursor := &pagination.Cursor{
			ID:        last.ID,
			BeginTime: last.BeginTime,
		}
		response.Pagination.NextCursor = cursor.Encode()
	}

	return response, nil
}

// withTimeout applies d when positive.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}
