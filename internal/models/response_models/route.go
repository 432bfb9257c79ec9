package response_models

// RouteData is the gen-route payload: a precomputed multi-day visiting route.
type RouteData struct {
	StartName       string     `json:"start_name"`
	AccommodationID *uint      `json:"accommodation,omitempty"`
	Paths           []RouteLeg `json:"paths"`
	TripPlan        []DayPlan  `json:"trip_plan"`
}

// RouteLeg is one precomputed edge between two node codes.
type RouteLeg struct {
	From     string  `json:"from"`
	To       string  `json:"to"`
	FromName string  `json:"from_name,omitempty"`
	ToName   string  `json:"to_name,omitempty"`
	Distance float64 `json:"distance"`
}

// DayPlan lists, for one day, the accommodation code and the ordered node codes to visit.
type DayPlan struct {
	Day           int      `json:"day"`
	Accommodation string   `json:"accommodation"`
	Plan          []string `json:"plan"`
}
