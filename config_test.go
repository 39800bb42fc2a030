package tickq

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

func TestConfig_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		config    *Config
		expectErr string
	}{
		{
			name:   "defaults are valid",
			config: DefaultConfig(),
		},
		{
			name:   "nil config is valid",
			config: nil,
		},
		{
			name: "negative prealloc",
			config: &Config{
				Queue: QueueConfig{Prealloc: -1},
			},
			expectErr: "queue.prealloc",
		},
		{
			name: "tracing enabled without service name",
			config: &Config{
				Tracing: TracingConfig{Enabled: true},
			},
			expectErr: "tracing.serviceName",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.config.Validate()
			if tc.expectErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectErr)
		})
	}
}

func TestNewConfigFromURL(t *testing.T) {
	ctx := context.Background()
	fs := afs.New()
	URL := "mem://localhost/tickq/config.yaml"
	payload := `
queue:
  prealloc: 128
tracing:
  enabled: true
  serviceName: simulation
  outputFile: traces.json
`
	require.NoError(t, fs.Upload(ctx, URL, 0o644, strings.NewReader(payload)))

	config, err := NewConfigFromURL(ctx, URL)
	require.NoError(t, err)
	assert.Equal(t, 128, config.Queue.Prealloc)
	assert.True(t, config.Tracing.Enabled)
	assert.Equal(t, "simulation", config.Tracing.ServiceName)

	_, err = NewConfigFromURL(ctx, "mem://localhost/tickq/absent.yaml")
	assert.Error(t, err)
}
