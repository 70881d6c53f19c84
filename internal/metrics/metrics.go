package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds all Prometheus metrics for the watcher. A nil *Metrics is a
// valid no-op receiver so call sites never need to guard.
type Metrics struct {
	CheckStartTotal    prometheus.Counter
	CheckSuccessTotal  prometheus.Counter
	CheckFailureTotal  prometheus.Counter
	CheckDurationSecs  prometheus.Histogram
	LastCheckTimestamp prometheus.Gauge
	LastRunStatus      prometheus.Gauge // 0 = unknown, 1 = success, 2 = failure

	EntriesParsedTotal   prometheus.Counter
	EntriesNewTotal      prometheus.Counter
	EntriesNotifiedTotal prometheus.Counter

	FetchErrorsTotal      prometheus.Counter
	CheckpointErrorsTotal prometheus.Counter

	DeliveriesTotal      *prometheus.CounterVec // labels: platform, outcome
	DeliveryDurationSecs prometheus.Histogram

	registry *prometheus.Registry
}

// New creates a Metrics instance with its own registry.
func New() *Metrics {
	m := &Metrics{
		CheckStartTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_check_start_total",
			Help: "Total number of check rounds started",
		}),
		CheckSuccessTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_check_success_total",
			Help: "Total number of check rounds that completed cleanly",
		}),
		CheckFailureTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_check_failure_total",
			Help: "Total number of check rounds that aborted",
		}),
		CheckDurationSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relwatch_check_duration_seconds",
			Help:    "Duration of check rounds in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		LastCheckTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relwatch_last_check_timestamp_seconds",
			Help: "Unix timestamp of the last check round",
		}),
		LastRunStatus: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "relwatch_last_run_status",
			Help: "Last run status: 0=unknown, 1=success, 2=failure",
		}),

		EntriesParsedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_entries_parsed_total",
			Help: "Total number of changelog entries parsed",
		}),
		EntriesNewTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_entries_new_total",
			Help: "Total number of entries detected as new since the checkpoint",
		}),
		EntriesNotifiedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_entries_notified_total",
			Help: "Total number of entries whose notification round succeeded",
		}),

		FetchErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_fetch_errors_total",
			Help: "Total number of changelog fetch errors",
		}),
		CheckpointErrorsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "relwatch_checkpoint_errors_total",
			Help: "Total number of checkpoint store errors",
		}),

		DeliveriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "relwatch_deliveries_total",
			Help: "Total number of platform delivery attempts by outcome",
		}, []string{"platform", "outcome"}),
		DeliveryDurationSecs: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "relwatch_delivery_duration_seconds",
			Help:    "Duration of platform delivery attempts in seconds",
			Buckets: []float64{0.1, 0.5, 1, 2, 5, 10},
		}),
	}

	m.registry = prometheus.NewRegistry()
	m.registry.MustRegister(
		m.CheckStartTotal,
		m.CheckSuccessTotal,
		m.CheckFailureTotal,
		m.CheckDurationSecs,
		m.LastCheckTimestamp,
		m.LastRunStatus,
		m.EntriesParsedTotal,
		m.EntriesNewTotal,
		m.EntriesNotifiedTotal,
		m.FetchErrorsTotal,
		m.CheckpointErrorsTotal,
		m.DeliveriesTotal,
		m.DeliveryDurationSecs,
	)

	return m
}

// Handler serves the registry for scraping.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) RecordCheckStart() {
	if m == nil {
		return
	}
	m.CheckStartTotal.Inc()
	m.LastCheckTimestamp.SetToCurrentTime()
}

func (m *Metrics) RecordCheckSuccess(duration time.Duration) {
	if m == nil {
		return
	}
	m.CheckSuccessTotal.Inc()
	m.CheckDurationSecs.Observe(duration.Seconds())
	m.LastRunStatus.Set(1)
}

func (m *Metrics) RecordCheckFailure(duration time.Duration) {
	if m == nil {
		return
	}
	m.CheckFailureTotal.Inc()
	m.CheckDurationSecs.Observe(duration.Seconds())
	m.LastRunStatus.Set(2)
}

func (m *Metrics) RecordEntriesParsed(count int) {
	if m == nil {
		return
	}
	m.EntriesParsedTotal.Add(float64(count))
}

func (m *Metrics) RecordEntriesNew(count int) {
	if m == nil {
		return
	}
	m.EntriesNewTotal.Add(float64(count))
}

func (m *Metrics) RecordEntryNotified() {
	if m == nil {
		return
	}
	m.EntriesNotifiedTotal.Inc()
}

func (m *Metrics) RecordFetchError() {
	if m == nil {
		return
	}
	m.FetchErrorsTotal.Inc()
}

func (m *Metrics) RecordCheckpointError() {
	if m == nil {
		return
	}
	m.CheckpointErrorsTotal.Inc()
}

func (m *Metrics) RecordDelivery(platform string, success bool, duration time.Duration) {
	if m == nil {
		return
	}
	outcome := "failure"
	if success {
		outcome = "success"
	}
	m.DeliveriesTotal.WithLabelValues(platform, outcome).Inc()
	m.DeliveryDurationSecs.Observe(duration.Seconds())
}
