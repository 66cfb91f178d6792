package repository

import (
	"context"
	"errors"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type DriverRepository interface {
	GetByID(ctx context.Context, driverID string) (*domain.DriverProfile, error)
	Upsert(ctx context.Context, profile *domain.DriverProfile) error
}

type driverRepository struct {
	db *gorm.DB
}

func NewDriverRepository(db *gorm.DB) DriverRepository {
	return &driverRepository{db: db}
}

func (r *driverRepository) GetByID(ctx context.Context, driverID string) (*domain.DriverProfile, error) {
	var profile domain.DriverProfile
	err := r.db.WithContext(ctx).First(&profile, "devid = ?", driverID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *driverRepository) Upsert(ctx context.Context, profile *domain.DriverProfile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "devid"}},
		DoUpdates: clause.AssignmentColumns([]string{"timezone", "updated_at"}),
	}).Create(profile).Error
}
