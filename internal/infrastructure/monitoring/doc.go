/*
Package monitoring collects Prometheus metrics for the shim.

# Overview

Metrics live on a private registry so several runtimes, and tests, can
coexist in one process. A nil *Metrics is accepted everywhere and records
nothing.

# Metrics

  - posixshim_translations_total{class}: translated paths per prefix rule
  - posixshim_translation_duration_seconds{class}: translation latency
  - posixshim_translation_errors_total{cause}: failures by cause
  - posixshim_link_hops: links followed per dereferencing translation
  - posixshim_init_refs: outstanding Init calls
  - posixshim_panics_total{code}: reports to the panic callback
  - posixshim_handles{table}: handle table sizes

# Usage

	metrics := monitoring.NewMetrics()
	metrics.RecordTranslation("root", time.Since(start))

	// Expose the registry
	http.Handle("/metrics", promhttp.HandlerFor(metrics.Registry(), promhttp.HandlerOpts{}))
*/
package monitoring
