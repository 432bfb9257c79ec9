package services

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"tripspark/internal/models/db_models"
	"tripspark/internal/models/response_models"
	"tripspark/internal/repositories"
	"tripspark/pkg/utils"
)

type LandmarkServiceInterface interface {
	ListLandmarks(ctx context.Context) ([]response_models.LandmarkResponse, error)
	FindByKeyword(ctx context.Context, keyword string) (*db_models.Landmark, error)
}

type LandmarkService struct {
	landmarkRepo repositories.LandmarkRepository
	logger       *zap.Logger
}

func NewLandmarkService(landmarkRepo repositories.LandmarkRepository, logger *zap.Logger) LandmarkServiceInterface {
	return &LandmarkService{
		landmarkRepo: landmarkRepo,
		logger:       logger,
	}
}

func (l *LandmarkService) ListLandmarks(ctx context.Context) ([]response_models.LandmarkResponse, error) {
	landmarks, err := l.landmarkRepo.ListLandmarks(ctx)
	if err != nil {
		l.logger.Error("list landmarks", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.LandmarkResponse, 0, len(landmarks))
	for _, lm := range landmarks {
		out = append(out, response_models.LandmarkResponse{
			ID:      lm.ID,
			Name:    lm.Name,
			Aliases: lm.Aliases,
		})
	}
	return out, nil
}

// FindByKeyword returns the first landmark whose name contains keyword, ignoring case;
// aliases are only consulted when no name matches.
func (l *LandmarkService) FindByKeyword(ctx context.Context, keyword string) (*db_models.Landmark, error) {
	needle := strings.ToLower(strings.TrimSpace(keyword))
	if needle == "" {
		return nil, utils.ErrInvalidInput
	}

	landmarks, err := l.landmarkRepo.ListLandmarks(ctx)
	if err != nil {
		l.logger.Error("list landmarks", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	for i := range landmarks {
		if strings.Contains(strings.ToLower(landmarks[i].Name), needle) {
			return &landmarks[i], nil
		}
	}
	for i := range landmarks {
		for _, alias := range landmarks[i].Aliases {
			if strings.Contains(strings.ToLower(alias), needle) {
				return &landmarks[i], nil
			}
		}
	}
	return nil, utils.ErrLandmarkNotFound
}
