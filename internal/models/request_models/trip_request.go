package request_models

type CreateTripRequest struct {
	Name            string `json:"name" binding:"required"`
	Types           string `json:"types"`
	Days            int    `json:"days" binding:"required,min=1"`
	ConditionID     uint   `json:"condition_id"`
	AccommodationID *uint  `json:"accommodation_id"`
}

type UpdateTripRequest = CreateTripRequest

type CreatePathSegmentRequest struct {
	TripID              string  `json:"trip_id" binding:"required"`
	Day                 int     `json:"day" binding:"required,min=1"`
	PathIndex           int     `json:"path_index" binding:"required,min=1"`
	FromCode            string  `json:"from_code"`
	ToCode              string  `json:"to_code"`
	Type                string  `json:"type"`
	Distance            float64 `json:"distance"`
	ActivityDescription string  `json:"activity_description"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
}
