package controllers

import (
	"github.com/gin-gonic/gin"
	"tripspark/internal/services"
	"tripspark/pkg/utils"
)

type LandmarkController struct {
	landmarkService services.LandmarkServiceInterface
}

func NewLandmarkController(landmarkService services.LandmarkServiceInterface) *LandmarkController {
	return &LandmarkController{
		landmarkService: landmarkService,
	}
}

// ListLandmarks godoc
// @Summary List landmarks
// @Description Landmarks a trip can be planned around
// @Tags Landmark
// @Produce json
// @Success 200 {array} response_models.LandmarkResponse
// @Router /landmarks [get]
func (l *LandmarkController) ListLandmarks(c *gin.Context) {
	landmarks, err := l.landmarkService.ListLandmarks(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, landmarks, "Landmarks fetched successfully")
}
