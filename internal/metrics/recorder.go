package metrics

import "time"

// ResultLabel enumerates transformer result categories for counters.
type ResultLabel string

const (
	ResultSuccess  ResultLabel = "success"
	ResultFailed   ResultLabel = "failed"
	ResultCanceled ResultLabel = "canceled"
)

// LoadOutcomeLabel enumerates final load outcomes.
type LoadOutcomeLabel string

const (
	LoadSuccess        LoadOutcomeLabel = "success"
	LoadInvalidPath    LoadOutcomeLabel = "invalid_path"
	LoadInvalidInput   LoadOutcomeLabel = "invalid_input"
	LoadTransformError LoadOutcomeLabel = "transform_error"
	LoadInternalError  LoadOutcomeLabel = "internal_error"
	LoadCanceled       LoadOutcomeLabel = "canceled"
)

// Recorder defines observability hooks for load and transformer metrics.
// Implementations may forward to Prometheus or anything else; NoopRecorder is
// the default so callers never nil-check.
type Recorder interface {
	ObserveLoadDuration(d time.Duration)
	IncLoadOutcome(outcome LoadOutcomeLabel)
	ObserveTransformerDuration(name string, d time.Duration)
	IncTransformerResult(name string, result ResultLabel)
	SetGraphSize(pages, metas, folders int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics not configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveLoadDuration(time.Duration)                 {}
func (NoopRecorder) IncLoadOutcome(LoadOutcomeLabel)                   {}
func (NoopRecorder) ObserveTransformerDuration(string, time.Duration) {}
func (NoopRecorder) IncTransformerResult(string, ResultLabel)          {}
func (NoopRecorder) SetGraphSize(int, int, int)                        {}
