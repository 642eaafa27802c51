package handler

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/osse101/SpinWheel_Go/internal/live"
	"github.com/osse101/SpinWheel_Go/internal/metrics"
)

// AdminMetricsResponse contains JSON-formatted metrics for the admin dashboard
type AdminMetricsResponse struct {
	HTTP     HTTPMetrics     `json:"http"`
	Events   EventMetrics    `json:"events"`
	Business BusinessMetrics `json:"business"`
	Live     LiveMetrics     `json:"live"`
}

type HTTPMetrics struct {
	RequestsTotalByStatus map[string]float64 `json:"requests_total_by_status"`
	AvgLatencyMs          float64            `json:"avg_latency_ms"`
	P95LatencyMs          float64            `json:"p95_latency_ms"`
	InFlight              float64            `json:"in_flight"`
}

type EventMetrics struct {
	PublishedTotalByType map[string]float64 `json:"published_total_by_type"`
	HandlerErrorsByType  map[string]float64 `json:"handler_errors_by_type"`
}

type BusinessMetrics struct {
	SpinsApplied        float64 `json:"spins_applied"`
	SpinsPreviewed      float64 `json:"spins_previewed"`
	SpinsRigged         float64 `json:"spins_rigged"`
	Resets              float64 `json:"resets"`
	ParticipantsRemoved float64 `json:"participants_removed"`
	RigsSet             float64 `json:"rigs_set"`
	RigsConsumed        float64 `json:"rigs_consumed"`
	SpinConflicts       float64 `json:"spin_conflicts"`
}

type LiveMetrics struct {
	ClientCount int `json:"client_count"`
}

// AdminMetricsHandler handles admin metrics requests
type AdminMetricsHandler struct {
	hub      *live.Hub
	gatherer prometheus.Gatherer
}

// NewAdminMetricsHandler creates a new admin metrics handler reading the default registry
func NewAdminMetricsHandler(hub *live.Hub) *AdminMetricsHandler {
	return &AdminMetricsHandler{hub: hub, gatherer: prometheus.DefaultGatherer}
}

// HandleGetMetrics returns JSON-formatted metrics from Prometheus
// GET /api/v1/admin/metrics
// @Summary Get metrics summary
// @Description JSON digest of the Prometheus registry for the admin dashboard
// @Tags admin
// @Produce json
// @Success 200 {object} AdminMetricsResponse
// @Router /api/v1/admin/metrics [get]
func (h *AdminMetricsHandler) HandleGetMetrics(w http.ResponseWriter, r *http.Request) {
	resp, err := gatherMetrics(h.gatherer)
	if err != nil {
		respondServiceError(w, r, ErrMsgGatherMetricsFailed, err)
		return
	}

	if h.hub != nil {
		resp.Live.ClientCount = h.hub.ClientCount()
	}

	respondJSON(w, http.StatusOK, resp)
}

func gatherMetrics(gatherer prometheus.Gatherer) (*AdminMetricsResponse, error) {
	metricFamilies, err := gatherer.Gather()
	if err != nil {
		return nil, err
	}

	resp := &AdminMetricsResponse{
		HTTP: HTTPMetrics{
			RequestsTotalByStatus: make(map[string]float64),
		},
		Events: EventMetrics{
			PublishedTotalByType: make(map[string]float64),
			HandlerErrorsByType:  make(map[string]float64),
		},
	}

	for _, mf := range metricFamilies {
		switch mf.GetName() {
		case metrics.MetricNameHTTPRequestsTotal:
			for _, m := range mf.GetMetric() {
				status := getLabelValue(m, metrics.LabelStatus)
				if status != "" {
					resp.HTTP.RequestsTotalByStatus[status] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameHTTPRequestDuration:
			// Calculate avg and p95 from histogram
			for _, m := range mf.GetMetric() {
				hist := m.GetHistogram()
				if hist != nil {
					// Average latency
					if hist.GetSampleCount() > 0 {
						resp.HTTP.AvgLatencyMs = (hist.GetSampleSum() / float64(hist.GetSampleCount())) * 1000
					}
					// P95 approximation from buckets
					resp.HTTP.P95LatencyMs = estimateQuantile(hist, 0.95) * 1000
				}
			}
		case metrics.MetricNameHTTPRequestsInFlight:
			for _, m := range mf.GetMetric() {
				resp.HTTP.InFlight += m.GetGauge().GetValue()
			}
		case metrics.MetricNameEventsPublished:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.PublishedTotalByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameEventHandlerErrors:
			for _, m := range mf.GetMetric() {
				eventType := getLabelValue(m, metrics.LabelType)
				if eventType != "" {
					resp.Events.HandlerErrorsByType[eventType] += m.GetCounter().GetValue()
				}
			}
		case metrics.MetricNameWheelSpins:
			for _, m := range mf.GetMetric() {
				v := m.GetCounter().GetValue()
				if getLabelValue(m, metrics.LabelApplied) == "true" {
					resp.Business.SpinsApplied += v
				} else {
					resp.Business.SpinsPreviewed += v
				}
				if getLabelValue(m, metrics.LabelRigged) == "true" {
					resp.Business.SpinsRigged += v
				}
			}
		case metrics.MetricNameWheelResets:
			resp.Business.Resets += sumCounters(mf)
		case metrics.MetricNameWheelParticipantsRemoved:
			resp.Business.ParticipantsRemoved += sumCounters(mf)
		case metrics.MetricNameWheelRigsSet:
			resp.Business.RigsSet += sumCounters(mf)
		case metrics.MetricNameWheelRigsConsumed:
			resp.Business.RigsConsumed += sumCounters(mf)
		case metrics.MetricNameWheelSpinConflicts:
			resp.Business.SpinConflicts += sumCounters(mf)
		}
	}

	return resp, nil
}

func sumCounters(mf *dto.MetricFamily) float64 {
	var total float64
	for _, m := range mf.GetMetric() {
		total += m.GetCounter().GetValue()
	}
	return total
}

func getLabelValue(m *dto.Metric, labelName string) string {
	for _, label := range m.GetLabel() {
		if label.GetName() == labelName {
			return label.GetValue()
		}
	}
	return ""
}

// estimateQuantile approximates the given quantile from a histogram
func estimateQuantile(hist *dto.Histogram, quantile float64) float64 {
	totalCount := hist.GetSampleCount()
	if totalCount == 0 {
		return 0
	}

	targetCount := float64(totalCount) * quantile
	var cumulativeCount uint64

	buckets := hist.GetBucket()
	for _, bucket := range buckets {
		cumulativeCount = bucket.GetCumulativeCount()
		if float64(cumulativeCount) >= targetCount {
			return bucket.GetUpperBound()
		}
	}

	// If we reach here, return the last bucket's upper bound
	if len(buckets) > 0 {
		return buckets[len(buckets)-1].GetUpperBound()
	}
	return 0
}
