/*
Package tracing sets up OpenTelemetry tracing for Caliper.

Spans are exported over OTLP gRPC. When tracing is disabled the package
installs a noop tracer so instrumented code paths cost nearly nothing.

	tracer, err := tracing.New(tracing.Config{
		Enabled:     true,
		Endpoint:    "localhost:4317",
		SampleRatio: 0.1,
	})
	if err != nil {
		return err
	}
	defer tracer.Shutdown(context.Background())
*/
package tracing
