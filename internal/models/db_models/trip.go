package db_models

import "tripspark/internal/models/response_models"

type Trip struct {
	BaseModel
	Name            string
	Types           string
	Days            int
	ConditionID     uint
	AccommodationID *uint

	PathSegments []PathSegment `gorm:"foreignKey:TripID"`
}

func BuildTripResponse(trip *Trip) *response_models.TripResponse {
	out := &response_models.TripResponse{
		ID:              trip.ID.String(),
		Name:            trip.Name,
		Types:           trip.Types,
		Days:            trip.Days,
		ConditionID:     trip.ConditionID,
		AccommodationID: trip.AccommodationID,
	}
	for _, seg := range trip.PathSegments {
		out.PathSegments = append(out.PathSegments, response_models.PathSegmentResponse{
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
		})
	}
	return out
}
