package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"tripspark/internal/models/request_models"
	"tripspark/internal/models/response_models"
	"tripspark/internal/services"
	"tripspark/pkg/utils"
)

type TripController struct {
	tripService services.TripServiceInterface
}

func NewTripController(tripService services.TripServiceInterface) *TripController {
	return &TripController{
		tripService: tripService,
	}
}

// CreateTrip godoc
// @Summary Create a trip
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreateTripRequest true "Trip"
// @Success 200 {object} response_models.TripResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips [post]
func (t *TripController) CreateTrip(c *gin.Context) {
	var req request_models.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name and days are required")
		return
	}

	trip, err := t.tripService.CreateTrip(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip created successfully")
}

// ListTrips godoc
// @Summary List trips
// @Description Fetch a paginated list of trips, newest first
// @Tags Trip
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param pageSize query int false "Page size" default(10) minimum(1) maximum(100)
// @Success 200 {array} response_models.TripResponse
// @Security BearerAuth
// @Router /trips [get]
func (t *TripController) ListTrips(c *gin.Context) {
	pageStr := c.DefaultQuery("page", "1")
	pageSizeStr := c.DefaultQuery("pageSize", "10")

	page, err := strconv.Atoi(pageStr)
	if err != nil || page < 1 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page number")
		return
	}

	pageSize, err := strconv.Atoi(pageSizeStr)
	if err != nil || pageSize < 1 || pageSize > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid page size (must be 1-100)")
		return
	}

	trips, err := t.tripService.ListTrips(c.Request.Context(), page, pageSize)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trips, "Trips fetched successfully")
}

// GetTrip godoc
// @Summary Get a trip with its path segments
// @Tags Trip
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [get]
func (t *TripController) GetTrip(c *gin.Context) {
	trip, err := t.tripService.GetTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip fetched successfully")
}

// UpdateTrip godoc
// @Summary Update a trip
// @Tags Trip
// @Accept json
// @Produce json
// @Param id path string true "Trip ID"
// @Param request body request_models.UpdateTripRequest true "Trip"
// @Success 200 {object} response_models.TripResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [put]
func (t *TripController) UpdateTrip(c *gin.Context) {
	var req request_models.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Name and days are required")
		return
	}

	trip, err := t.tripService.UpdateTrip(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, trip, "Trip updated successfully")
}

// DeleteTrip godoc
// @Summary Delete a trip and its path segments
// @Tags Trip
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id} [delete]
func (t *TripController) DeleteTrip(c *gin.Context) {
	if err := t.tripService.DeleteTrip(c.Request.Context(), c.Param("id")); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, nil, "Trip deleted successfully")
}

// ExportTrip godoc
// @Summary Export a trip as a document
// @Tags Trip
// @Produce json
// @Param id path string true "Trip ID"
// @Success 200 {object} response_models.ExportResponse
// @Failure 502 {object} utils.APIResponse
// @Security BearerAuth
// @Router /trips/{id}/export [post]
func (t *TripController) ExportTrip(c *gin.Context) {
	link, err := t.tripService.ExportTrip(c.Request.Context(), c.Param("id"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.ExportResponse{DownloadURL: link}, "Trip exported successfully")
}

// CreatePathSegment godoc
// @Summary Add a path segment to a trip
// @Tags Trip
// @Accept json
// @Produce json
// @Param request body request_models.CreatePathSegmentRequest true "Path segment"
// @Success 200 {object} response_models.PathSegmentResponse
// @Failure 400 {object} utils.APIResponse
// @Security BearerAuth
// @Router /path-segments [post]
func (t *TripController) CreatePathSegment(c *gin.Context) {
	var req request_models.CreatePathSegmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "trip_id, day and path_index are required")
		return
	}

	seg, err := t.tripService.CreatePathSegment(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, seg, "Path segment created successfully")
}
