package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Wheel metric names
const (
	MetricNameWheelSpins               = "wheel_spins_total"
	MetricNameWheelResets              = "wheel_resets_total"
	MetricNameWheelParticipantsRemoved = "wheel_participants_removed_total"
	MetricNameWheelRigsSet             = "wheel_rigs_set_total"
	MetricNameWheelRigsConsumed        = "wheel_rigs_consumed_total"
	MetricNameWheelSpinConflicts       = "wheel_spin_conflicts_total"
	MetricNameLiveConnections          = "wheel_live_connections"
	MetricNameWheels                   = "wheels"
	MetricNameWheelParticipants        = "wheel_participants"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Wheel metric help text
const (
	HelpTextWheelSpins               = "Total number of wheel spins"
	HelpTextWheelResets              = "Total number of wheel resets"
	HelpTextWheelParticipantsRemoved = "Total number of participants removed from wheels"
	HelpTextWheelRigsSet             = "Total number of rigs set"
	HelpTextWheelRigsConsumed        = "Total number of applied spins decided by a rig"
	HelpTextWheelSpinConflicts       = "Total number of concurrent-write conflicts retried by the wheel service"
	HelpTextLiveConnections          = "Current number of live feed websocket connections"
	HelpTextWheels                   = "Number of wheels, refreshed periodically"
	HelpTextWheelParticipants        = "Number of participants across all wheels, refreshed periodically"
)

// ============================================================================
// Metric Label Names
// ============================================================================

// Common label names used across metrics
const (
	LabelMethod  = "method"
	LabelPath    = "path"
	LabelStatus  = "status"
	LabelType    = "type"
	LabelApplied = "applied"
	LabelRigged  = "rigged"
	LabelHidden  = "hidden"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets defines the histogram buckets for HTTP request duration
// in seconds, from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// ============================================================================
// Log Messages
// ============================================================================

// Debug log messages
const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)

// UnmatchedRoutePath is the path label for requests that matched no route
const UnmatchedRoutePath = "unmatched"
