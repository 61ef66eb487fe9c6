package observability

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// UploadMetrics records counters and histograms for the upload pipeline.
// Instruments are created against the global meter provider, so with no
// provider installed every record call is a no-op.
type UploadMetrics struct {
	uploads     metric.Int64Counter
	uploadBytes metric.Int64Histogram
}

var (
	uploadMetricsOnce sync.Once
	uploadMetrics     *UploadMetrics
)

// Uploads returns the process-wide upload metrics.
func Uploads() *UploadMetrics {
	uploadMetricsOnce.Do(func() {
		meter := otel.Meter(tracerName)
		uploads, _ := meter.Int64Counter("uploads_total",
			metric.WithDescription("Total upload requests by outcome"))
		uploadBytes, _ := meter.Int64Histogram("upload_bytes",
			metric.WithDescription("Size of forwarded files in bytes"),
			metric.WithUnit("By"))
		uploadMetrics = &UploadMetrics{
			uploads:     uploads,
			uploadBytes: uploadBytes,
		}
	})
	return uploadMetrics
}

// RecordUpload records one upload attempt with its outcome
// ("ok", "rejected", "unauthorized", "forbidden", "invalid", "error").
func (m *UploadMetrics) RecordUpload(ctx context.Context, outcome string, size int64) {
	m.uploads.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
	if size > 0 {
		m.uploadBytes.Record(ctx, size)
	}
}
