package telemetry

import (
	"context"
	"os"
	"testing"
)

func TestNoopTracerStartsSpans(t *testing.T) {
	_, span := NoopTracer().Start(context.Background(), "dialogue.session")
	defer span.End()
	if span.IsRecording() {
		t.Fatalf("noop span should not record")
	}
}

func TestConfigureHoneycombEnv(t *testing.T) {
	cases := []struct {
		name       string
		apiKey     string
		headers    string
		want       bool
		wantHeader string
	}{
		{"no key", "", "", false, ""},
		{"key sets headers", "abc", "", true, "x-honeycomb-team=abc,x-honeycomb-dataset=townfolk"},
		{"existing headers kept", "abc", "x-custom=1", true, "x-custom=1"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			t.Setenv("HONEYCOMB_API_KEY", c.apiKey)
			t.Setenv("HONEYCOMB_DATASET", "")
			t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "")
			t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", c.headers)
			if got := ConfigureHoneycombEnv(); got != c.want {
				t.Fatalf("expected %v, got %v", c.want, got)
			}
			if got := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); got != c.wantHeader {
				t.Fatalf("expected headers %q, got %q", c.wantHeader, got)
			}
		})
	}
}

func TestLinesReadCounter(t *testing.T) {
	c := LinesRead()
	if c == nil {
		t.Fatalf("expected a counter from the global meter")
	}
	c.Add(context.Background(), 1)
}
