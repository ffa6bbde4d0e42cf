package ygggo_dbclient

import (
	"context"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestTelemetry_SpanPerExec(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	c, mock := newMockClient(t, "p_")
	c.EnableTelemetry(true)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM p_users WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := c.Delete(context.Background(), "users", "id = 1")
	require.NoError(t, err)

	spans := sr.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "ygggo_dbclient.exec", span.Name())

	attrs := make(map[string]string)
	for _, kv := range span.Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	assert.Equal(t, "mysql", attrs["db.system"])
	assert.Equal(t, "exec", attrs["db.operation"])
	assert.Equal(t, "DELETE FROM p_users WHERE id = 1", attrs["db.statement"])
}

func TestTelemetry_DisabledRecordsNothing(t *testing.T) {
	sr := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(sr))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	c, mock := newMockClient(t, "p_")

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM p_users WHERE id = 1")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	_, err := c.Delete(context.Background(), "users", "id = 1")
	require.NoError(t, err)
	assert.Empty(t, sr.Ended())
}
