package trace

import (
	"context"
	"testing"
)

func TestInitializeAndSpan(t *testing.T) {
	t.Setenv("OTEL_TRACES_EXPORTER", "none")
	ctx := context.Background()

	shutdown, err := Initialize(ctx, "triage-ticket-bot-test")
	if err != nil {
		t.Fatalf("Initialize() error = %v", err)
	}
	defer func() {
		if err := shutdown(ctx); err != nil {
			t.Errorf("shutdown error = %v", err)
		}
	}()

	tracer := GetTracer()
	spanCtx, span := tracer.Start(ctx, "test-span")
	defer span.End()

	if !span.SpanContext().IsValid() {
		t.Error("expected valid span context")
	}
	if ExtractTraceID(spanCtx) == "" {
		t.Error("expected trace ID inside a span")
	}
}

func TestExtractTraceIDWithoutSpan(t *testing.T) {
	if got := ExtractTraceID(context.Background()); got != "" {
		t.Errorf("ExtractTraceID() = %q, want empty", got)
	}
}
