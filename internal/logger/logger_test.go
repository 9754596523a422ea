package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
	}{
		{name: "default config", config: nil},
		{name: "json config", config: &Config{Level: "debug", Format: "json"}},
		{name: "console config", config: &Config{Level: "info", Format: "console"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotNil(t, New(tt.config))
		})
	}
}

func TestLogger_JSONOutput(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.Info("test message")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "test message", entry["message"])
	assert.NotEmpty(t, entry["time"])
}

func TestLogger_WithFields(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	child := log.With().
		Str("table", "users").
		Int("rows", 7).
		Dur("elapsed", 1500*time.Millisecond).
		Logger()
	child.Info("table data fetched")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "users", entry["table"])
	assert.Equal(t, float64(7), entry["rows"])
	assert.NotEmpty(t, entry["elapsed"])
}

func TestLogger_ErrorWith(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	log.ErrorWith("operation failed", errors.New("boom"), map[string]any{"op": "create"})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "error", entry["level"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "create", entry["op"])
}

func TestLogger_LevelFiltering(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "warn", Format: "json", Output: buf})

	log.Debug("hidden")
	log.Info("hidden too")
	assert.Empty(t, buf.String())

	log.Warn("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestContextRoundTrip(t *testing.T) {
	buf := &bytes.Buffer{}
	log := New(&Config{Level: "info", Format: "json", Output: buf})

	ctx := log.WithContext(context.Background())
	FromContext(ctx).Info("from context")

	assert.Contains(t, buf.String(), "from context")
}
