package trip_fx

import (
	"strings"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripspark/internal/config"
	"tripspark/internal/repositories"
	"tripspark/internal/services"
	"tripspark/pkg/metrics"
)

var Module = fx.Provide(provideTripRepo, provideTripExporter, provideTripService)

func provideTripRepo(db *gorm.DB) repositories.TripRepository {
	return repositories.NewTripRepository(db)
}

func provideTripExporter(cfg *config.Config, logger *zap.Logger) services.TripExporter {
	ex := cfg.Export
	if strings.ToLower(ex.Provider) == "pdf" {
		logger.Info("trips exported as local PDF", zap.String("dir", ex.Dir))
		return services.NewPDFTripExporter(ex.Dir, ex.PublicBaseURL, ex.FontPath)
	}
	if ex.APIKey == "" || ex.TemplateID == "" {
		logger.Warn("apitemplate export is missing api key or template id; exports will fail")
	}
	return services.NewAPITemplateExporter(ex.APIURL, ex.APIKey, ex.TemplateID, ex.Timeout)
}

func provideTripService(
	tripRepo repositories.TripRepository,
	exporter services.TripExporter,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.TripServiceInterface {

	return services.NewTripService(tripRepo, exporter, m, logger)
}
