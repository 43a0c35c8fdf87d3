package source

import (
	"sync"
	"testing"
	"time"

	"git.home.luguber.info/inful/docsource/internal/metrics"
	"git.home.luguber.info/inful/docsource/internal/vpath"
)

func mustPage(t *testing.T, path string) *Page {
	t.Helper()
	info, err := vpath.Parse(path, "")
	if err != nil {
		t.Fatalf("parse %q: %v", path, err)
	}
	return &Page{File: info, Data: map[string]any{}}
}

func mustMeta(t *testing.T, path string) *Meta {
	t.Helper()
	info, err := vpath.Parse(path, "")
	if err != nil {
		t.Fatalf("parse %q: %v", path, err)
	}
	return &Meta{File: info, Data: map[string]any{}}
}

// recordingRecorder captures recorder calls for assertions.
type recordingRecorder struct {
	mu           sync.Mutex
	outcomes     []metrics.LoadOutcomeLabel
	transformers map[string][]metrics.ResultLabel
	graphSize    [3]int
	loads        int
}

func newRecordingRecorder() *recordingRecorder {
	return &recordingRecorder{transformers: map[string][]metrics.ResultLabel{}}
}

func (r *recordingRecorder) ObserveLoadDuration(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loads++
}

func (r *recordingRecorder) IncLoadOutcome(o metrics.LoadOutcomeLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recordingRecorder) ObserveTransformerDuration(string, time.Duration) {}

func (r *recordingRecorder) IncTransformerResult(name string, res metrics.ResultLabel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.transformers[name] = append(r.transformers[name], res)
}

func (r *recordingRecorder) SetGraphSize(pages, metas, folders int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.graphSize = [3]int{pages, metas, folders}
}
