package services

import "strings"

type ActivityKind int

const (
	ActivityKindVisit ActivityKind = iota
	ActivityKindCheckIn
	ActivityKindRest
	ActivityKindCheckOut
)

func (k ActivityKind) String() string {
	switch k {
	case ActivityKindCheckIn:
		return "check_in"
	case ActivityKindRest:
		return "rest"
	case ActivityKindCheckOut:
		return "check_out"
	default:
		return "visit"
	}
}

// IsAccommodation reports whether the activity happens at the day's accommodation.
func (k ActivityKind) IsAccommodation() bool {
	return k != ActivityKindVisit
}

var accommodationMarkers = []struct {
	kind   ActivityKind
	marker string
}{
	{ActivityKindCheckIn, "เช็คอิน"},
	{ActivityKindRest, "พักผ่อน"},
	{ActivityKindCheckOut, "เช็คเอาท์"},
}

// ClassifyActivity looks for an accommodation marker anywhere in the description;
// anything without one is a visit.
func ClassifyActivity(description string) ActivityKind {
	for _, m := range accommodationMarkers {
		if strings.Contains(description, m.marker) {
			return m.kind
		}
	}
	return ActivityKindVisit
}
