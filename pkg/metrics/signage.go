package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// SignageMetrics instruments the storage quota engine and the upload path.
// It satisfies quota.Recorder.
type SignageMetrics struct {
	cleanupRuns     prometheus.Counter
	filesDeleted    prometheus.Counter
	bytesFreed      prometheus.Counter
	uploadsAccepted *prometheus.CounterVec
	uploadsRejected prometheus.Counter
	heartbeats      prometheus.Counter
}

// NewSignageMetrics creates a new Prometheus-backed SignageMetrics instance.
//
// Returns nil if metrics are not enabled (InitRegistry not called).
func NewSignageMetrics() *SignageMetrics {
	if !IsEnabled() {
		return nil
	}

	reg := GetRegistry()

	return &SignageMetrics{
		cleanupRuns: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "signcast_cleanup_runs_total",
				Help: "Total number of quota enforcement passes that deleted content",
			},
		),
		filesDeleted: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "signcast_cleanup_files_deleted_total",
				Help: "Total number of content items deleted by quota enforcement",
			},
		),
		bytesFreed: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "signcast_cleanup_bytes_freed_total",
				Help: "Total bytes freed by quota enforcement",
			},
		),
		uploadsAccepted: promauto.With(reg).NewCounterVec(
			prometheus.CounterOpts{
				Name: "signcast_uploads_total",
				Help: "Total number of accepted content uploads by kind",
			},
			[]string{"kind"}, // "video", "image", "audio", "html"
		),
		uploadsRejected: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "signcast_uploads_rejected_total",
				Help: "Total number of uploads rejected for lack of storage quota",
			},
		),
		heartbeats: promauto.With(reg).NewCounter(
			prometheus.CounterOpts{
				Name: "signcast_device_heartbeats_total",
				Help: "Total number of device heartbeats received",
			},
		),
	}
}

// CleanupRun records one enforcement pass that deleted content.
func (m *SignageMetrics) CleanupRun(filesDeleted int, bytesFreed int64) {
	if m == nil {
		return
	}
	m.cleanupRuns.Inc()
	m.filesDeleted.Add(float64(filesDeleted))
	m.bytesFreed.Add(float64(bytesFreed))
}

// UploadRejected records an upload turned away with a 413.
func (m *SignageMetrics) UploadRejected() {
	if m == nil {
		return
	}
	m.uploadsRejected.Inc()
}

// UploadAccepted records a stored upload of the given content kind.
func (m *SignageMetrics) UploadAccepted(kind string) {
	if m == nil {
		return
	}
	m.uploadsAccepted.WithLabelValues(kind).Inc()
}

// DeviceHeartbeat records a device check-in.
func (m *SignageMetrics) DeviceHeartbeat() {
	if m == nil {
		return
	}
	m.heartbeats.Inc()
}
