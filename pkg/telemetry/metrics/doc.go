/*
Package metrics provides Prometheus metrics for Caliper.

The Collector owns a private Prometheus registry and pre-registers
every metric the program records:

  - lint run counts, durations and violation counts by rule and severity
  - HTTP request counts and latencies for the demo service
  - active WebSocket stream sessions
  - AI review request and token counts
  - rate limiter rejections

The Collector satisfies the lint package's Recorder interface so the
rule engine stays free of any Prometheus dependency.

Example:

	collector := metrics.NewCollector(metrics.Config{Namespace: "caliper"})
	runner := lint.NewRunner(registry, opts, lint.WithRecorder(collector))
	http.Handle("/metrics", collector.Handler())
*/
package metrics
