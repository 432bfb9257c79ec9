package db_models

import "github.com/google/uuid"

// PathSegmentTypeActivity is the only segment type the itinerary pipeline writes.
const PathSegmentTypeActivity = "Activity"

// PathSegment links two route node codes (P/R/A prefixed) for one timed activity of a trip day.
type PathSegment struct {
	BaseModel
	TripID              uuid.UUID `gorm:"type:uuid;index"`
	Day                 int
	PathIndex           int
	FromCode            string
	ToCode              string
	Type                string
	Distance            float64
	ActivityDescription string
	StartTime           string
	EndTime             string
}
