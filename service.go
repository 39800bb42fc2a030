package tickq

import (
	"github.com/viant/tickq/service/timer"
	"github.com/viant/tickq/tracing"
)

// Service is the engine façade: it wires the job queue, tick clock, timer
// registry and tickers into a Runtime the host drives.
type Service[S any] struct {
	config  *Config
	clock   TickClock
	tickers []Ticker[S]
	runtime *Runtime[S]
}

func (s *Service[S]) init(options []Option[S]) {
	for _, option := range options {
		option(s)
	}
	s.ensureBaseSetup()
	s.runtime = &Runtime[S]{
		queue:   newJobQueue[S](s.config.Queue.Prealloc),
		timers:  timer.New(),
		clock:   s.clock,
		tickers: s.tickers,
	}
}

func (s *Service[S]) ensureBaseSetup() {
	if s.config == nil {
		s.config = DefaultConfig()
	}
	if s.clock == nil {
		s.clock = NewWallClock()
	}
	if s.config.Tracing.Enabled {
		_ = tracing.Init(s.config.Tracing.ServiceName, s.config.Tracing.ServiceVersion, s.config.Tracing.OutputFile)
	}
}

// Runtime returns the host-facing runtime.
func (s *Service[S]) Runtime() *Runtime[S] {
	return s.runtime
}

// Config returns the effective configuration.
func (s *Service[S]) Config() *Config {
	return s.config
}

// New creates the engine service with the supplied options.
func New[S any](options ...Option[S]) *Service[S] {
	ret := &Service[S]{}
	ret.init(options)
	return ret
}
