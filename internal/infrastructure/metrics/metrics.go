package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Request counters
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// Request duration histogram
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30},
		},
		[]string{"method", "endpoint"},
	)

	// Upload counters
	UploadsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "uploads_total",
			Help:      "Total file uploads",
		},
		[]string{"file_type", "status"},
	)

	// Upload bytes counter
	UploadBytesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "upload_bytes_total",
			Help:      "Total bytes uploaded",
		},
		[]string{"file_type"},
	)

	// Upload duration histogram, one observation per file including
	// transcoding and storage retries
	UploadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "upload_duration_seconds",
			Help:      "End-to-end upload pipeline duration in seconds",
			Buckets:   []float64{0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"file_type"},
	)

	// Blob storage operations counter
	StorageOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "storage_operations_total",
			Help:      "Total blob storage operations",
		},
		[]string{"operation", "status"},
	)

	// Saga compensations counter
	CompensationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "atlas",
			Subsystem: "content_api",
			Name:      "upload_compensations_total",
			Help:      "Total upload rollbacks that removed already-written blobs",
		},
	)
)

// RecordRequest records an HTTP request
func RecordRequest(method, endpoint, status string, durationSec float64) {
	RequestsTotal.WithLabelValues(method, endpoint, status).Inc()
	RequestDuration.WithLabelValues(method, endpoint).Observe(durationSec)
}

// RecordUpload records a file upload
func RecordUpload(fileType, status string, bytes int64, durationSec float64) {
	UploadsTotal.WithLabelValues(fileType, status).Inc()
	UploadDuration.WithLabelValues(fileType).Observe(durationSec)
	if status == "success" {
		UploadBytesTotal.WithLabelValues(fileType).Add(float64(bytes))
	}
}

// RecordStorageOperation records a blob store call
func RecordStorageOperation(operation, status string) {
	StorageOperationsTotal.WithLabelValues(operation, status).Inc()
}

// RecordCompensation records an upload rollback
func RecordCompensation() {
	CompensationsTotal.Inc()
}
