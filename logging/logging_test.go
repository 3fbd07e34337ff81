package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gauravscripts/empdir/config"
)

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("directoryd", config.Log{Level: "warn", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	require.Equal(t, "shown", entry["message"])
	require.Equal(t, "directoryd", entry["app"])
	require.Contains(t, entry, "time")
}

func TestNew_Console(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New("gateway", config.Log{Level: "debug", Format: config.FormatConsole}, &buf)
	require.NoError(t, err)

	logger.Debug().Str("k", "v").Msg("hello")
	require.Contains(t, buf.String(), "hello")
	require.Contains(t, buf.String(), "k=v")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("x", config.Log{Level: "loud", Format: config.FormatJSON}, &bytes.Buffer{})
	require.Error(t, err)

	_, err = New("x", config.Log{Level: "info", Format: "xml"}, &bytes.Buffer{})
	require.Error(t, err)
}
