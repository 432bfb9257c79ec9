package landmark_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripspark/internal/repositories"
	"tripspark/internal/services"
)

var Module = fx.Provide(
	provideLandmarkRepo, provideLandmarkService)

func provideLandmarkRepo(db *gorm.DB) repositories.LandmarkRepository {
	return repositories.NewLandmarkRepository(db)
}

func provideLandmarkService(landmarkRepo repositories.LandmarkRepository, logger *zap.Logger) services.LandmarkServiceInterface {
	return services.NewLandmarkService(landmarkRepo, logger)
}
