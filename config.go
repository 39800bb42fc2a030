package tickq

import (
	"context"
	"fmt"

	"github.com/viant/afs"
	"gopkg.in/yaml.v3"
)

const defaultQueuePrealloc = 64

// Config is a serialisable representation of the engine configuration. It can
// be populated from JSON or YAML; the zero-value is useful – all nested
// fields inherit their package defaults.
type Config struct {
	Queue   QueueConfig   `json:"queue" yaml:"queue"`
	Tracing TracingConfig `json:"tracing" yaml:"tracing"`
}

// QueueConfig controls the job queue backing store.
type QueueConfig struct {
	// Prealloc is the initial capacity of the drain buffer.
	Prealloc int `json:"prealloc" yaml:"prealloc"`
}

// TracingConfig enables OpenTelemetry span export for drain steps.
type TracingConfig struct {
	Enabled        bool   `json:"enabled" yaml:"enabled"`
	ServiceName    string `json:"serviceName" yaml:"serviceName"`
	ServiceVersion string `json:"serviceVersion" yaml:"serviceVersion"`
	// OutputFile receives exported spans; empty means stdout.
	OutputFile string `json:"outputFile" yaml:"outputFile"`
}

// DefaultConfig returns a Config populated with the same defaults the
// constructors previously hard-coded.
func DefaultConfig() *Config {
	return &Config{
		Queue: QueueConfig{Prealloc: defaultQueuePrealloc},
	}
}

// Validate returns an error describing invalid settings or nil.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}
	if c.Queue.Prealloc < 0 {
		return fmt.Errorf("queue.prealloc must be >= 0")
	}
	if c.Tracing.Enabled && c.Tracing.ServiceName == "" {
		return fmt.Errorf("tracing.serviceName is required when tracing is enabled")
	}
	return nil
}

// NewConfigFromURL loads a YAML configuration through the abstract file
// system, so file://, mem:// and cloud URLs all work.
func NewConfigFromURL(ctx context.Context, URL string) (*Config, error) {
	fs := afs.New()
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", URL, err)
	}
	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", URL, err)
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", URL, err)
	}
	return config, nil
}
