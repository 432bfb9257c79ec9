package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"tripspark/internal/models/db_models"
	"tripspark/internal/models/request_models"
	"tripspark/internal/models/response_models"
	"tripspark/internal/repositories"
	"tripspark/pkg/metrics"
	"tripspark/pkg/utils"
)

type TripServiceInterface interface {
	CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.TripResponse, error)
	GetTrip(ctx context.Context, tripID string) (*response_models.TripResponse, error)
	ListTrips(ctx context.Context, page, pageSize int) ([]response_models.TripResponse, error)
	UpdateTrip(ctx context.Context, tripID string, req request_models.UpdateTripRequest) (*response_models.TripResponse, error)
	DeleteTrip(ctx context.Context, tripID string) error
	CreatePathSegment(ctx context.Context, req request_models.CreatePathSegmentRequest) (*response_models.PathSegmentResponse, error)
	PersistSegments(ctx context.Context, segments []db_models.PathSegment) PersistReport
	ExportTrip(ctx context.Context, tripID string) (string, error)
}

// PersistReport counts the outcome of a best-effort segment batch.
type PersistReport struct {
	Saved  int
	Failed []int // path indexes that could not be written
}

type TripService struct {
	tripRepo repositories.TripRepository
	exporter TripExporter
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewTripService(
	tripRepo repositories.TripRepository,
	exporter TripExporter,
	m *metrics.Metrics,
	logger *zap.Logger,
) TripServiceInterface {
	return &TripService{
		tripRepo: tripRepo,
		exporter: exporter,
		metrics:  m,
		logger:   logger,
	}
}

func parseTripID(tripID string) (uuid.UUID, error) {
	id, err := uuid.Parse(tripID)
	if err != nil {
		return uuid.Nil, utils.ErrInvalidInput
	}
	return id, nil
}

func (t *TripService) CreateTrip(ctx context.Context, req request_models.CreateTripRequest) (*response_models.TripResponse, error) {
	if req.Name == "" || req.Days < 1 {
		return nil, utils.ErrInvalidInput
	}

	trip := &db_models.Trip{
		Name:            req.Name,
		Types:           req.Types,
		Days:            req.Days,
		ConditionID:     req.ConditionID,
		AccommodationID: req.AccommodationID,
	}
	if _, err := t.tripRepo.CreateTrip(ctx, trip); err != nil {
		t.logger.Error("create trip", zap.String("name", req.Name), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return db_models.BuildTripResponse(trip), nil
}

func (t *TripService) loadTrip(ctx context.Context, tripID string) (*db_models.Trip, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	trip, err := t.tripRepo.GetTripByID(ctx, id)
	if err != nil {
		t.logger.Error("get trip", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}
	if trip == nil {
		return nil, utils.ErrTripNotFound
	}
	return trip, nil
}

func (t *TripService) GetTrip(ctx context.Context, tripID string) (*response_models.TripResponse, error) {
	trip, err := t.loadTrip(ctx, tripID)
	if err != nil {
		return nil, err
	}
	return db_models.BuildTripResponse(trip), nil
}

func (t *TripService) ListTrips(ctx context.Context, page, pageSize int) ([]response_models.TripResponse, error) {
	if page < 1 {
		return nil, utils.ErrInvalidPage
	}
	if pageSize < 1 {
		return nil, utils.ErrInvalidPageSize
	}

	trips, err := t.tripRepo.ListTrips(ctx, page, pageSize)
	if err != nil {
		t.logger.Error("list trips", zap.Int("page", page), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.TripResponse, 0, len(trips))
	for i := range trips {
		out = append(out, *db_models.BuildTripResponse(&trips[i]))
	}
	return out, nil
}

func (t *TripService) UpdateTrip(ctx context.Context, tripID string, req request_models.UpdateTripRequest) (*response_models.TripResponse, error) {
	id, err := parseTripID(tripID)
	if err != nil {
		return nil, err
	}
	if req.Name == "" || req.Days < 1 {
		return nil, utils.ErrInvalidInput
	}

	trip := &db_models.Trip{
		Name:            req.Name,
		Types:           req.Types,
		Days:            req.Days,
		ConditionID:     req.ConditionID,
		AccommodationID: req.AccommodationID,
	}
	trip.ID = id
	if err := t.tripRepo.UpdateTrip(ctx, trip); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrTripNotFound
		}
		t.logger.Error("update trip", zap.String("trip_id", tripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return t.GetTrip(ctx, tripID)
}

func (t *TripService) DeleteTrip(ctx context.Context, tripID string) error {
	id, err := parseTripID(tripID)
	if err != nil {
		return err
	}
	if err := t.tripRepo.DeleteTrip(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrTripNotFound
		}
		t.logger.Error("delete trip", zap.String("trip_id", tripID), zap.Error(err))
		return utils.ErrDatabaseError
	}
	return nil
}

func (t *TripService) CreatePathSegment(ctx context.Context, req request_models.CreatePathSegmentRequest) (*response_models.PathSegmentResponse, error) {
	id, err := parseTripID(req.TripID)
	if err != nil {
		return nil, err
	}
	segType := req.Type
	if segType == "" {
		segType = db_models.PathSegmentTypeActivity
	}

	seg := &db_models.PathSegment{
		TripID:              id,
		Day:                 req.Day,
		PathIndex:           req.PathIndex,
		FromCode:            req.FromCode,
		ToCode:              req.ToCode,
		Type:                segType,
		Distance:            req.Distance,
		ActivityDescription: req.ActivityDescription,
		StartTime:           req.StartTime,
		EndTime:             req.EndTime,
	}
	if err := t.tripRepo.CreatePathSegment(ctx, seg); err != nil {
		t.logger.Error("create path segment", zap.String("trip_id", req.TripID), zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	return &response_models.PathSegmentResponse{
		ID:                  seg.ID.String(),
		Day:                 seg.Day,
		PathIndex:           seg.PathIndex,
		FromCode:            seg.FromCode,
		ToCode:              seg.ToCode,
		Type:                seg.Type,
		Distance:            seg.Distance,
		ActivityDescription: seg.ActivityDescription,
		StartTime:           seg.StartTime,
		EndTime:             seg.EndTime,
	}, nil
}

// PersistSegments writes segments one at a time in order. A failed write is logged and
// skipped; the remaining segments are still submitted.
func (t *TripService) PersistSegments(ctx context.Context, segments []db_models.PathSegment) PersistReport {
	var report PersistReport
	for i := range segments {
		seg := segments[i]
		if err := t.tripRepo.CreatePathSegment(ctx, &seg); err != nil {
			t.logger.Warn("path segment not saved",
				zap.String("trip_id", seg.TripID.String()),
				zap.Int("day", seg.Day),
				zap.Int("path_index", seg.PathIndex),
				zap.Error(fmt.Errorf("%w: %v", utils.ErrSegmentPersistFailure, err)),
			)
			t.metrics.SegmentFailures.Inc()
			report.Failed = append(report.Failed, seg.PathIndex)
			continue
		}
		t.metrics.SegmentsPersisted.Inc()
		report.Saved++
	}
	return report
}

func (t *TripService) ExportTrip(ctx context.Context, tripID string) (string, error) {
	trip, err := t.loadTrip(ctx, tripID)
	if err != nil {
		return "", err
	}

	link, err := t.exporter.Export(ctx, trip)
	if err != nil {
		t.metrics.ExportFailures.Inc()
		t.logger.Error("export trip", zap.String("trip_id", tripID), zap.Error(err))
		if errors.Is(err, utils.ErrExportFailure) {
			return "", err
		}
		return "", fmt.Errorf("%w: %v", utils.ErrExportFailure, err)
	}
	return link, nil
}
