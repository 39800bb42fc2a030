package tickq

import "github.com/viant/tickq/tracing"

// Option customises the Service at construction time.
type Option[S any] func(s *Service[S])

// WithConfig replaces the default configuration.
func WithConfig[S any](config *Config) Option[S] {
	return func(s *Service[S]) {
		s.config = config
	}
}

// WithClock sets the tick clock consumed by Step. The default WallClock
// measures real time between consecutive steps.
func WithClock[S any](clock TickClock) Option[S] {
	return func(s *Service[S]) {
		s.clock = clock
	}
}

// WithTickers registers per-tick callbacks, typically watch tables.
func WithTickers[S any](tickers ...Ticker[S]) Option[S] {
	return func(s *Service[S]) {
		s.tickers = append(s.tickers, tickers...)
	}
}

// WithTracing configures OpenTelemetry tracing for the service. If outputFile
// is empty the stdout exporter is used; otherwise spans are written to the
// supplied file path. Safe to call multiple times – the first successful
// initialisation wins.
func WithTracing[S any](serviceName, serviceVersion, outputFile string) Option[S] {
	return func(s *Service[S]) {
		_ = tracing.Init(serviceName, serviceVersion, outputFile)
	}
}
