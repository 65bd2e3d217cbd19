package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_Levels(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("WARN", &buf)

	log.Info("dropped")
	log.Debug("dropped")
	log.Warn("kept", "lead_id", "l-1")

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "l-1", entry["lead_id"])
}

func TestWith(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("debug", &buf).With("component", "leads")

	log.Debug("hello")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &entry))
	assert.Equal(t, "leads", entry["component"])
}

func TestNewWithOptions_Text(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithOptions(&buf, Options{Level: "info", Format: "TEXT", Service: "leaddesk"})

	log.Info("lead created", "lead_id", "l-9")

	out := buf.String()
	assert.Contains(t, out, `msg="lead created"`)
	assert.Contains(t, out, "service=leaddesk")
	assert.Contains(t, out, "lead_id=l-9")
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" Warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	}
	for in, want := range tests {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().With("k", "v").Error("nothing to see")
	})
}
