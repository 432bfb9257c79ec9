// Package metrics holds the Prometheus collectors of the trip planning pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "tripspark"

// Generation outcomes.
const (
	OutcomeSuccess          = "success"
	OutcomeRouteUnavailable = "route_unavailable"
	OutcomeModelEmpty       = "model_empty"
	OutcomeTripNotSaved     = "trip_not_saved"
)

type Metrics struct {
	Utterances          *prometheus.CounterVec
	Generations         *prometheus.CounterVec
	SegmentsPersisted   prometheus.Counter
	SegmentFailures     prometheus.Counter
	ActivitiesSkipped   prometheus.Counter
	ExportFailures      prometheus.Counter
	GenerationDurations prometheus.Histogram
}

// New registers the collectors on reg. Tests pass a fresh prometheus.NewRegistry().
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Utterances: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "utterances_total",
			Help:      "Chat utterances handled, by how they were resolved.",
		}, []string{"result"}),
		Generations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "generations_total",
			Help:      "Trip plan generation runs, by outcome.",
		}, []string{"outcome"}),
		SegmentsPersisted: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_segments_persisted_total",
			Help:      "Path segments written.",
		}),
		SegmentFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "path_segment_failures_total",
			Help:      "Path segments that failed to persist and were skipped.",
		}),
		ActivitiesSkipped: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "activities_without_day_plan_total",
			Help:      "Parsed activities dropped because the route had no plan for their day.",
		}),
		ExportFailures: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "export_failures_total",
			Help:      "Trip exports that failed after the trip was saved.",
		}),
		GenerationDurations: f.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "generation_duration_seconds",
			Help:      "Wall time of a full generation run.",
			Buckets:   []float64{1, 2, 5, 10, 20, 40, 80},
		}),
	}
}
