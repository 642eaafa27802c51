package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Wheel Metrics
var (
	// WheelSpins counts spins by whether they were applied and whether a visible rig decided them.
	// Hidden rigs are counted as unrigged so the metric never reveals them.
	WheelSpins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWheelSpins,
			Help: HelpTextWheelSpins,
		},
		[]string{LabelApplied, LabelRigged},
	)

	WheelResets = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWheelResets,
			Help: HelpTextWheelResets,
		},
	)

	WheelParticipantsRemoved = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWheelParticipantsRemoved,
			Help: HelpTextWheelParticipantsRemoved,
		},
	)

	WheelRigsSet = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWheelRigsSet,
			Help: HelpTextWheelRigsSet,
		},
		[]string{LabelHidden},
	)

	// WheelRigsConsumed counts applied spins a rig decided, hidden rigs included
	WheelRigsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameWheelRigsConsumed,
			Help: HelpTextWheelRigsConsumed,
		},
		[]string{LabelHidden},
	)

	// WheelSpinConflicts is incremented directly by the wheel service on every retried conflict
	WheelSpinConflicts = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameWheelSpinConflicts,
			Help: HelpTextWheelSpinConflicts,
		},
	)

	LiveConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameLiveConnections,
			Help: HelpTextLiveConnections,
		},
	)

	// Wheels and WheelParticipants are set by the periodic stats job
	Wheels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWheels,
			Help: HelpTextWheels,
		},
	)

	WheelParticipants = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameWheelParticipants,
			Help: HelpTextWheelParticipants,
		},
	)
)
