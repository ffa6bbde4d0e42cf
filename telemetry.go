package ygggo_dbclient

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	instrumentationName    = "github.com/yggai/ygggo_dbclient"
	instrumentationVersion = "v0.1.0"
)

var tracer = otel.Tracer(instrumentationName, trace.WithInstrumentationVersion(instrumentationVersion))

// EnableTelemetry enables or disables OpenTelemetry tracing for this client
func (c *Client) EnableTelemetry(enabled bool) {
	if c == nil {
		return
	}
	c.telemetryEnabled = enabled
}

// startSpan creates a new span with common database attributes
func (c *Client) startSpan(ctx context.Context, operation string, query string) (context.Context, trace.Span) {
	if c == nil || !c.telemetryEnabled {
		return ctx, trace.SpanFromContext(ctx)
	}

	spanName := fmt.Sprintf("ygggo_dbclient.%s", operation)
	ctx, span := tracer.Start(ctx, spanName)

	span.SetAttributes(
		attribute.String("db.system", "mysql"),
		attribute.String("db.operation", operation),
	)
	if query != "" {
		span.SetAttributes(attribute.String("db.statement", query))
	}

	return ctx, span
}

// finishSpan completes a span with error handling
func (c *Client) finishSpan(span trace.Span, err error) {
	if c == nil || !c.telemetryEnabled {
		return
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}

	span.End()
}
