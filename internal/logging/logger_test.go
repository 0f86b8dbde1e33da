package logging

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"WARNING", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEngineLogger(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelInfo, Component: ComponentApp, Output: &buf})
	e := ForEngine(l)

	e.Debugf("hidden %d", 1)
	e.Warnf("equipment[%s]: missing purchase date", "MRI")

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "equipment[MRI]: missing purchase date")
	assert.Contains(t, out, "component=calculation")
	assert.Equal(t, 1, strings.Count(out, "component="))
}

func TestJSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: slog.LevelDebug, Component: ComponentStore, Format: "json", Output: &buf})
	l.Info("saved run", FieldRunID, "abc")
	assert.Contains(t, buf.String(), `"component":"store"`)
	assert.Contains(t, buf.String(), `"run_id":"abc"`)
	assert.Equal(t, ComponentStore, l.Component())
}
