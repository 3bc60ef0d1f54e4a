// Package metrics exports save and load counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/pixil98/mudsave/internal/objsave"
)

const (
	namespace = "mudsave"

	LabelKind    = "kind"
	LabelReason  = "reason"
	LabelResult  = "result"
	LabelOutcome = "outcome"

	KindRent = "rent"
	KindRoom = "room"

	ResultOK      = "ok"
	ResultError   = "error"
	ResultMissing = "missing"
)

// Recorder holds the save/load metrics. A nil *Recorder records nothing,
// so callers never need to check whether metrics are enabled.
type Recorder struct {
	saves   *prometheus.CounterVec
	loads   *prometheus.CounterVec
	objects *prometheus.CounterVec
	sweeps  *prometheus.HistogramVec
}

// NewRecorder registers the metrics with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		saves: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "saves_total",
			Help:      "Save files written, by kind, reason and result.",
		}, []string{LabelKind, LabelReason, LabelResult}),
		loads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "loads_total",
			Help:      "Save files read, by kind and result.",
		}, []string{LabelKind, LabelResult}),
		objects: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "objects_loaded_total",
			Help:      "Objects rebuilt on load, by kind and where they ended up.",
		}, []string{LabelKind, LabelOutcome}),
		sweeps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "sweep_duration_seconds",
			Help:      "Time taken by periodic save sweeps.",
			Buckets:   prometheus.DefBuckets,
		}, []string{LabelKind}),
	}
}

// Save counts a save attempt.
func (r *Recorder) Save(kind, reason string, err error) {
	if r == nil {
		return
	}
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.saves.WithLabelValues(kind, reason, result).Inc()
}

// Load counts a load attempt.
func (r *Recorder) Load(kind, result string) {
	if r == nil {
		return
	}
	r.loads.WithLabelValues(kind, result).Inc()
}

// Objects counts what happened to the objects of one load.
func (r *Recorder) Objects(kind string, s objsave.Stats) {
	if r == nil {
		return
	}
	r.objects.WithLabelValues(kind, "restored").Add(float64(s.Restored))
	r.objects.WithLabelValues(kind, "placeholder").Add(float64(s.Placeholders))
	r.objects.WithLabelValues(kind, "spilled").Add(float64(s.Spilled))
	r.objects.WithLabelValues(kind, "redirected").Add(float64(s.Redirected))
	r.objects.WithLabelValues(kind, "clamped").Add(float64(s.Clamped))
}

// Sweep records how long a periodic sweep took.
func (r *Recorder) Sweep(kind string, seconds float64) {
	if r == nil {
		return
	}
	r.sweeps.WithLabelValues(kind).Observe(seconds)
}
