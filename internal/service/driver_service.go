package service

import (
	"context"
	"errors"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/internal/repository"
)

type DriverService interface {
	GetProfile(ctx context.Context, driverID string) (*domain.DriverProfile, error)
	UpsertProfile(ctx context.Context, driverID string, req *domain.UpsertDriverProfileRequest) (*domain.DriverProfile, error)
	// Location returns the driver's timezone, or the service default when
	// the driver has no profile.
	Location(ctx context.Context, driverID string) (*time.Location, error)
}

type driverService struct {
	repo       repository.DriverRepository
	defaultLoc *time.Location
}

func NewDriverService(repo repository.DriverRepository, defaultLoc *time.Location) DriverService {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &driverService{repo: repo, defaultLoc: defaultLoc}
}

func (s *driverService) GetProfile(ctx context.Context, driverID string) (*domain.DriverProfile, error) {
	return s.repo.GetByID(ctx, driverID)
}

func (s *driverService) UpsertProfile(ctx context.Context, driverID string, req *domain.UpsertDriverProfileRequest) (*domain.DriverProfile, error) {
	if driverID == "" {
		return nil, domain.ErrInvalidInput
	}

	profile := &domain.DriverProfile{
		DriverID: driverID,
		Timezone: req.Timezone,
	}
	if err := s.repo.Upsert(ctx, profile); err != nil {
		return nil, err
	}

	// Re-read so created_at reflects the original insert
	return s.repo.GetByID(ctx, driverID)
}

func (s *driverService) Location(ctx context.Context, driverID string) (*time.Location, error) {
	profile, err := s.repo.GetByID(ctx, driverID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return s.defaultLoc, nil
		}
		return nil, err
	}
	return profile.Location(s.defaultLoc), nil
}
