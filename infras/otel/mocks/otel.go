package mocks

import (
	"booktable/infras/otel"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

// Recorder is a real tracer whose spans stay in memory so tests can assert on
// what was traced.
type Recorder struct {
	otel.Otel
	spans *tracetest.SpanRecorder
}

func NewOtel() *Recorder {
	spans := tracetest.NewSpanRecorder()

	return &Recorder{
		Otel:  otel.NewWithProvider(trace.NewTracerProvider(trace.WithSpanProcessor(spans))),
		spans: spans,
	}
}

// Ended returns every finished span in end order.
func (r *Recorder) Ended() []trace.ReadOnlySpan {
	return r.spans.Ended()
}

// Failed returns the names of finished spans with an error status.
func (r *Recorder) Failed() []string {
	var names []string

	for _, span := range r.spans.Ended() {
		if span.Status().Code == codes.Error {
			names = append(names, span.Name())
		}
	}

	return names
}
