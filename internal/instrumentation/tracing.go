package instrumentation

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// TracerName is the default tracer name for the homecal package.
const TracerName = "github.com/teemow/homecal"

// Span attribute keys.
const (
	// SpanAttrService is the Google service name attribute.
	SpanAttrService = "google.service"

	// SpanAttrOperation is the operation type attribute.
	SpanAttrOperation = "google.operation"

	// SpanAttrAccount is the Google account attribute.
	SpanAttrAccount = "homecal.account"

	// SpanAttrResourceID is the resource identifier (event id, calendar id).
	SpanAttrResourceID = "homecal.resource_id"

	// SpanAttrResourceType is the resource type (event, settings, calendar).
	SpanAttrResourceType = "homecal.resource_type"
)

// SpanAttributeBuilder constructs span attributes with consistent key
// naming. Empty values are dropped rather than emitted as empty labels.
type SpanAttributeBuilder struct {
	attrs []attribute.KeyValue
}

// NewSpanAttributeBuilder creates a new SpanAttributeBuilder.
func NewSpanAttributeBuilder() *SpanAttributeBuilder {
	return &SpanAttributeBuilder{
		attrs: make([]attribute.KeyValue, 0, 6),
	}
}

// WithService adds the Google service name attribute.
func (b *SpanAttributeBuilder) WithService(service string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrService, service))
	return b
}

// WithOperation adds the operation type attribute.
func (b *SpanAttributeBuilder) WithOperation(operation string) *SpanAttributeBuilder {
	b.attrs = append(b.attrs, attribute.String(SpanAttrOperation, operation))
	return b
}

// WithAccount adds the account attribute.
func (b *SpanAttributeBuilder) WithAccount(account string) *SpanAttributeBuilder {
	if account != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrAccount, account))
	}
	return b
}

// WithResource adds resource attributes.
func (b *SpanAttributeBuilder) WithResource(resourceType, resourceID string) *SpanAttributeBuilder {
	if resourceType != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrResourceType, resourceType))
	}
	if resourceID != "" {
		b.attrs = append(b.attrs, attribute.String(SpanAttrResourceID, resourceID))
	}
	return b
}

// Build returns the constructed attributes.
func (b *SpanAttributeBuilder) Build() []attribute.KeyValue {
	return b.attrs
}

func tracer() trace.Tracer {
	return otel.GetTracerProvider().Tracer(TracerName)
}

// StartSyncSpan starts the span for a calendar sync run. The caller ends
// the span with defer span.End().
func StartSyncSpan(ctx context.Context, account string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append(NewSpanAttributeBuilder().WithAccount(account).Build(), attrs...)

	return tracer().Start(ctx, "calendar.sync",
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindServer),
	)
}

// StartGoogleAPISpan starts a span for one Google API call, named
// google.<service>.<operation>.
func StartGoogleAPISpan(ctx context.Context, service, operation string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	allAttrs := append(NewSpanAttributeBuilder().WithService(service).WithOperation(operation).Build(), attrs...)

	return tracer().Start(ctx, "google."+service+"."+operation,
		trace.WithAttributes(allAttrs...),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

// SetSpanError records the error on the span and sets the status to
// error. A nil error is ignored.
func SetSpanError(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
}

// SetSpanSuccess sets the span status to OK.
func SetSpanSuccess(span trace.Span) {
	span.SetStatus(codes.Ok, "")
}

// AddSyncResultEvent annotates a sync span with the counts of one run.
func AddSyncResultEvent(span trace.Span, fetched, imported, skipped int) {
	span.AddEvent("sync.result", trace.WithAttributes(
		attribute.Int("homecal.sync.fetched", fetched),
		attribute.Int("homecal.sync.imported", imported),
		attribute.Int("homecal.sync.skipped", skipped),
	))
}

// GetTraceID returns the trace id of the span in ctx, or an empty string
// when no sampled span is present. Used to correlate log lines with
// traces.
func GetTraceID(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
