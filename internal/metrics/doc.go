// Package metrics provides load and transformer metrics for the virtual-file loader.
//
// Components receive a Recorder through options and default to NoopRecorder,
// so metrics collection never needs nil checks:
//
//	res, err := source.Load(ctx, files, source.WithRecorder(metrics.NewPrometheusRecorder(reg)))
//
// PrometheusRecorder registers its collectors on the supplied registry;
// HTTPHandler exposes that registry for scraping.
package metrics
