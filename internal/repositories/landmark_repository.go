package repositories

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"tripspark/internal/models/db_models"
)

type LandmarkRepository interface {
	ListLandmarks(ctx context.Context) ([]db_models.Landmark, error)
	GetLandmarkByID(ctx context.Context, id uint) (*db_models.Landmark, error)
}

type landmarkRepository struct {
	db *gorm.DB
}

func NewLandmarkRepository(db *gorm.DB) LandmarkRepository {
	return &landmarkRepository{db: db}
}

func (r *landmarkRepository) ListLandmarks(ctx context.Context) ([]db_models.Landmark, error) {
	var landmarks []db_models.Landmark
	if err := r.db.WithContext(ctx).Order("id").Find(&landmarks).Error; err != nil {
		return nil, err
	}
	return landmarks, nil
}

func (r *landmarkRepository) GetLandmarkByID(ctx context.Context, id uint) (*db_models.Landmark, error) {
	var landmark db_models.Landmark
	err := r.db.WithContext(ctx).First(&landmark, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &landmark, nil
}
