// internal/repositories/trip_repository.go
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	dbm "tripspark/internal/models/db_models"
)

type TripRepository interface {
	CreateTrip(ctx context.Context, trip *dbm.Trip) (uuid.UUID, error)
	UpdateTrip(ctx context.Context, trip *dbm.Trip) error
	DeleteTrip(ctx context.Context, tripID uuid.UUID) error
	GetTripByID(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error)
	ListTrips(ctx context.Context, page, pageSize int) ([]dbm.Trip, error)

	CreatePathSegment(ctx context.Context, segment *dbm.PathSegment) error
}

type tripRepository struct {
	db *gorm.DB
}

func NewTripRepository(db *gorm.DB) TripRepository {
	return &tripRepository{db: db}
}

func orderedSegments(db *gorm.DB) *gorm.DB {
	return db.Order("day, path_index")
}

func (r *tripRepository) CreateTrip(ctx context.Context, trip *dbm.Trip) (uuid.UUID, error) {
	if err := r.db.WithContext(ctx).Create(trip).Error; err != nil {
		return uuid.Nil, err
	}
	return trip.ID, nil
}

func (r *tripRepository) UpdateTrip(ctx context.Context, trip *dbm.Trip) error {
	result := r.db.WithContext(ctx).
		Model(&dbm.Trip{}).
		Where("id = ?", trip.ID).
		Updates(map[string]interface{}{
			"name":             trip.Name,
			"types":            trip.Types,
			"days":             trip.Days,
			"condition_id":     trip.ConditionID,
			"accommodation_id": trip.AccommodationID,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteTrip removes the trip's path segments before the trip itself.
func (r *tripRepository) DeleteTrip(ctx context.Context, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("trip_id = ?", tripID).Delete(&dbm.PathSegment{}).Error; err != nil {
			return err
		}
		result := tx.Delete(&dbm.Trip{}, "id = ?", tripID)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

func (r *tripRepository) GetTripByID(ctx context.Context, tripID uuid.UUID) (*dbm.Trip, error) {
	var trip dbm.Trip
	err := r.db.WithContext(ctx).
		Preload("PathSegments", orderedSegments).
		First(&trip, "id = ?", tripID).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return &trip, nil
}

func (r *tripRepository) ListTrips(ctx context.Context, page, pageSize int) ([]dbm.Trip, error) {
	var trips []dbm.Trip
	err := r.db.WithContext(ctx).
		Preload("PathSegments", orderedSegments).
		Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&trips).Error

	if err != nil {
		return nil, err
	}

	return trips, nil
}

func (r *tripRepository) CreatePathSegment(ctx context.Context, segment *dbm.PathSegment) error {
	return r.db.WithContext(ctx).Create(segment).Error
}
