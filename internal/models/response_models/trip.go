package response_models

type TripResponse struct {
	ID              string                `json:"id"`
	Name            string                `json:"name"`
	Types           string                `json:"types"`
	Days            int                   `json:"days"`
	ConditionID     uint                  `json:"condition_id"`
	AccommodationID *uint                 `json:"accommodation_id,omitempty"`
	PathSegments    []PathSegmentResponse `json:"path_segments,omitempty"`
}

type PathSegmentResponse struct {
	ID                  string  `json:"id"`
	Day                 int     `json:"day"`
	PathIndex           int     `json:"path_index"`
	FromCode            string  `json:"from_code"`
	ToCode              string  `json:"to_code"`
	Type                string  `json:"type"`
	Distance            float64 `json:"distance"`
	ActivityDescription string  `json:"activity_description"`
	StartTime           string  `json:"start_time"`
	EndTime             string  `json:"end_time"`
}

type ExportResponse struct {
	DownloadURL string `json:"download_url"`
}

type LandmarkResponse struct {
	ID      uint     `json:"id"`
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
}
