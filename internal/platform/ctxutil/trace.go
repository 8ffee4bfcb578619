package ctxutil

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

type traceDataKey struct{}

type TraceData struct {
	TraceID   string
	RequestID string
}

func WithTraceData(ctx context.Context, td *TraceData) context.Context {
	return context.WithValue(ctx, traceDataKey{}, td)
}

func GetTraceData(ctx context.Context) *TraceData {
	if ctx == nil {
		return nil
	}
	if td, ok := ctx.Value(traceDataKey{}).(*TraceData); ok {
		return td
	}
	return nil
}

// EnsureTraceData attaches trace data built from the caller-supplied ids.
// A missing trace id falls back to the active span, then to a fresh uuid; a
// missing request id gets a fresh uuid.
func EnsureTraceData(ctx context.Context, traceID, requestID string) (context.Context, *TraceData) {
	td := &TraceData{
		TraceID:   strings.TrimSpace(traceID),
		RequestID: strings.TrimSpace(requestID),
	}
	if td.TraceID == "" {
		if sc := trace.SpanContextFromContext(ctx); sc.HasTraceID() {
			td.TraceID = sc.TraceID().String()
		} else {
			td.TraceID = uuid.NewString()
		}
	}
	if td.RequestID == "" {
		td.RequestID = uuid.NewString()
	}
	return WithTraceData(ctx, td), td
}

// LogFields returns trace/request ids as logger key-value pairs.
func LogFields(ctx context.Context) []interface{} {
	td := GetTraceData(ctx)
	if td == nil {
		return nil
	}
	fields := make([]interface{}, 0, 4)
	if td.TraceID != "" {
		fields = append(fields, "trace_id", td.TraceID)
	}
	if td.RequestID != "" {
		fields = append(fields, "request_id", td.RequestID)
	}
	return fields
}
