package services

import (
	"github.com/google/uuid"
	"tripspark/internal/models/db_models"
	"tripspark/internal/models/response_models"
)

// DefaultAccommodationCode stands in when the route leaves a day's accommodation blank.
const DefaultAccommodationCode = "A1"

type ReconcileResult struct {
	Segments []db_models.PathSegment
	// Skipped holds activities whose day has no plan in the route.
	Skipped []Activity
}

type dayCursor struct {
	plan    response_models.DayPlan
	visited int
	at      string
}

// ReconcileRoute links each activity to a from/to node pair of the route's day plan.
// Accommodation activities stay at the day's accommodation; visits walk the plan in
// order starting from the accommodation. Path indexes are numbered from 1 across the
// whole trip and only emitted segments consume one.
func ReconcileRoute(activities []Activity, route *response_models.RouteData, tripID uuid.UUID) ReconcileResult {
	plans := make(map[int]response_models.DayPlan, len(route.TripPlan))
	for _, dp := range route.TripPlan {
		if _, dup := plans[dp.Day]; !dup {
			plans[dp.Day] = dp
		}
	}

	cursors := make(map[int]*dayCursor)
	result := ReconcileResult{Segments: []db_models.PathSegment{}}
	pathIndex := 1

	for _, act := range activities {
		plan, ok := plans[act.Day]
		if !ok {
			result.Skipped = append(result.Skipped, act)
			continue
		}

		accommodation := plan.Accommodation
		if accommodation == "" {
			accommodation = DefaultAccommodationCode
		}

		cur, ok := cursors[act.Day]
		if !ok {
			cur = &dayCursor{plan: plan, at: accommodation}
			cursors[act.Day] = cur
		}

		var from, to string
		if ClassifyActivity(act.Description).IsAccommodation() {
			from, to = accommodation, accommodation
		} else {
			from = cur.at
			if cur.visited < len(cur.plan.Plan) {
				to = cur.plan.Plan[cur.visited]
			} else {
				to = accommodation
			}
			cur.visited++
			cur.at = to
		}

		result.Segments = append(result.Segments, db_models.PathSegment{
			TripID:              tripID,
			Day:                 act.Day,
			PathIndex:           pathIndex,
			FromCode:            from,
			ToCode:              to,
			Type:                db_models.PathSegmentTypeActivity,
			Distance:            0,
			ActivityDescription: act.Description,
			StartTime:           act.StartTime,
			EndTime:             act.EndTime,
		})
		pathIndex++
	}

	return result
}
