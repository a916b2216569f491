package otel

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "rfbkit"

// Metrics holds all OTEL metric instruments for rfbkit.
// All counters are cumulative (monotonic) and safe for concurrent use.
type Metrics struct {
	// Frame encoding (partitioned by mimetype via attributes)
	FramesEncoded  metric.Int64Counter
	FrameBytes     metric.Int64Counter
	EncodeDuration metric.Float64Histogram

	// Snapshot rendering
	SnapshotsRendered metric.Int64Counter

	// Notebook pruning
	OutputsPruned metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.FramesEncoded, err = meter.Int64Counter("frames.encoded",
		metric.WithDescription("Total frames encoded, partitioned by output mimetype"),
		metric.WithUnit("{frame}"))
	if err != nil {
		return nil, err
	}

	m.FrameBytes, err = meter.Int64Counter("frames.bytes",
		metric.WithDescription("Total compressed frame bytes produced"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, err
	}

	m.EncodeDuration, err = meter.Float64Histogram("frames.encode_duration",
		metric.WithDescription("Wall-clock time to encode one frame"),
		metric.WithUnit("ms"))
	if err != nil {
		return nil, err
	}

	m.SnapshotsRendered, err = meter.Int64Counter("snapshots.rendered",
		metric.WithDescription("Number of static HTML snapshots rendered"))
	if err != nil {
		return nil, err
	}

	m.OutputsPruned, err = meter.Int64Counter("notebook.outputs_pruned",
		metric.WithDescription("Number of widget-view outputs removed from notebook documents"))
	if err != nil {
		return nil, err
	}

	return m, nil
}

// RecordEncode records one frame encode on the metric instruments.
func (m *Metrics) RecordEncode(ctx context.Context, mimetype string, size int64, durationMs float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("frame.mimetype", mimetype))
	m.FramesEncoded.Add(ctx, 1, attrs)
	m.FrameBytes.Add(ctx, size, attrs)
	m.EncodeDuration.Record(ctx, durationMs, attrs)
}

// RecordSnapshot records a rendered snapshot.
func (m *Metrics) RecordSnapshot(ctx context.Context) {
	if m == nil {
		return
	}
	m.SnapshotsRendered.Add(ctx, 1)
}

// RecordPruned records widget-view outputs removed from one document.
func (m *Metrics) RecordPruned(ctx context.Context, count int64) {
	if m == nil || count == 0 {
		return
	}
	m.OutputsPruned.Add(ctx, count)
}
