package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    slog.Level
		wantErr bool
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: " warn ", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
		{input: "verbose", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	t.Run("json", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := New("info", FormatJSON, buf)
		require.NoError(t, err)

		logger.Debug("hidden")
		logger.Info("Request processed", slog.String("process_id", "p1"))

		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "Request processed", entry["msg"])
		assert.Equal(t, "p1", entry["process_id"])
	})

	t.Run("text by default", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger, err := New("debug", "", buf)
		require.NoError(t, err)

		logger.Debug("Received", slog.Int("count", 2))
		assert.Contains(t, buf.String(), "level=DEBUG")
		assert.Contains(t, buf.String(), "count=2")
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := New("info", "xml", &bytes.Buffer{})
		assert.Error(t, err)
		_, err = New("loud", FormatText, &bytes.Buffer{})
		assert.Error(t, err)
	})
}
