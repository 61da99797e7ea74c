package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, Debug, ParseLevel("DEBUG"))
	assert.Equal(t, Warn, ParseLevel("warning"))
	assert.Equal(t, Info, ParseLevel(""))
	assert.Equal(t, Info, ParseLevel("verbose"))
}

func TestNew_JSON_IncludesBaseAndFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Info, Format: FormatJSON, App: "bird-collector", Writer: &buf})

	l.With(map[string]any{"bird_id": "b-1"}).Error("upload failed", map[string]any{
		"error": errors.New("boom"),
		"key":   "abc123.png",
	})

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "bird-collector", entry["app"])
	assert.Equal(t, "b-1", entry["bird_id"])
	assert.Equal(t, "boom", entry["error"])
	assert.Equal(t, "abc123.png", entry["key"])
	assert.Equal(t, "upload failed", entry["msg"])
}

func TestNew_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Options{Level: Warn, Writer: &buf})

	l.Info("hidden", nil)
	l.Warn("shown", nil)

	out := buf.String()
	assert.False(t, strings.Contains(out, "hidden"))
	assert.True(t, strings.Contains(out, "shown"))
}
