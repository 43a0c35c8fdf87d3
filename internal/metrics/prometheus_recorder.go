package metrics

import (
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once                sync.Once
	loadDuration        prom.Histogram
	loadOutcome         *prom.CounterVec
	transformerDuration *prom.HistogramVec
	transformerResults  *prom.CounterVec
	graphNodes          *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.loadDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docsource",
			Name:      "load_duration_seconds",
			Help:      "Duration of a complete load call including transformers",
			Buckets:   prom.DefBuckets,
		})
		pr.loadOutcome = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsource",
			Name:      "load_outcomes_total",
			Help:      "Load outcomes by final status",
		}, []string{"outcome"})
		pr.transformerDuration = prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: "docsource",
			Name:      "transformer_duration_seconds",
			Help:      "Duration of individual transformer turns",
			Buckets:   prom.DefBuckets,
		}, []string{"transformer"})
		pr.transformerResults = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docsource",
			Name:      "transformer_results_total",
			Help:      "Transformer result counts by outcome",
		}, []string{"transformer", "result"})
		pr.graphNodes = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docsource",
			Name:      "graph_nodes",
			Help:      "Node counts of the last built graph by node type",
		}, []string{"type"})
		reg.MustRegister(pr.loadDuration, pr.loadOutcome, pr.transformerDuration, pr.transformerResults, pr.graphNodes)
	})
	return pr
}

func (p *PrometheusRecorder) ObserveLoadDuration(d time.Duration) {
	if p == nil || p.loadDuration == nil {
		return
	}
	p.loadDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncLoadOutcome(outcome LoadOutcomeLabel) {
	if p == nil || p.loadOutcome == nil {
		return
	}
	p.loadOutcome.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveTransformerDuration(name string, d time.Duration) {
	if p == nil || p.transformerDuration == nil {
		return
	}
	p.transformerDuration.WithLabelValues(name).Observe(d.Seconds())
}

func (p *PrometheusRecorder) IncTransformerResult(name string, result ResultLabel) {
	if p == nil || p.transformerResults == nil {
		return
	}
	p.transformerResults.WithLabelValues(name, string(result)).Inc()
}

func (p *PrometheusRecorder) SetGraphSize(pages, metas, folders int) {
	if p == nil || p.graphNodes == nil {
		return
	}
	p.graphNodes.WithLabelValues("page").Set(float64(pages))
	p.graphNodes.WithLabelValues("meta").Set(float64(metas))
	p.graphNodes.WithLabelValues("folder").Set(float64(folders))
}
