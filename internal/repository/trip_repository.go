package repository

import (
	"context"
	"time"

	"github.com/blaisecz/driver-fatigue/internal/domain"
	"github.com/blaisecz/driver-fatigue/pkg/pagination"
	"gorm.io/gorm"
)

// TripRepository reads trips written by the trajectory ETL.
type TripRepository interface {
	// ListByStartRange returns trips starting in [from, to], oldest first.
	ListByStartRange(ctx context.Context, driverID string, from, to time.Time) ([]domain.Trip, error)
	// List returns one page (plus one lookahead row), newest first.
	List(ctx context.Context, driverID string, filter domain.TripFilter) ([]domain.Trip, error)
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func (r *tripRepository) ListByStartRange(ctx context.Context, driverID string, from, to time.Time) ([]domain.Trip, error) {
	var trips []domain.Trip
	err := r.db.WithContext(ctx).
		Where("devid = ?", driverID).
		Where("begin_time >= ? AND begin_time <= ?", from.Unix(), to.Unix()).
		Order("begin_time ASC, traj_id ASC").
		Find(&trips).Error
	if err != nil {
		return nil, err
	}
	return trips, nil
}

func (r *tripRepository) List(ctx context.Context, driverID string, filter domain.TripFilter) ([]domain.Trip, error) {
	query := r.db.WithContext(ctx).
		Where("devid = ?", driverID).
		Order("begin_time DESC, traj_id DESC")

	if filter.From != nil {
		query = query.Where("begin_time >= ?", filter.From.Unix())
	}
	if filter.To != nil {
		query = query.Where("begin_time <= ?", filter.To.Unix())
	}

	if filter.Cursor != "" {
		cursor, err := pagination.DecodeCursor(filter.Cursor)
		if err != nil {
			return nil, err
		}
		if cursor != nil {
			query = query.Where(
				"(begin_time < ?) OR (begin_time = ? AND traj_id < ?)",
				cursor.BeginTime, cursor.BeginTime, cursor.ID,
			)
		}
	}

	// Fetch one extra to determine if there are more results
	limit := pagination.NormalizeLimit(filter.Limit)
	query = query.Limit(limit + 1)

	var trips []domain.Trip
	if err := query.Find(&trips).Error; err != nil {
		return nil, err
	}
	return trips, nil
}
