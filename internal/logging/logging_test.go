package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]zerolog.Level{
		"":        zerolog.InfoLevel,
		"debug":   zerolog.DebugLevel,
		"INFO":    zerolog.InfoLevel,
		"warning": zerolog.WarnLevel,
		"error":   zerolog.ErrorLevel,
		"off":     zerolog.Disabled,
	}
	for name, want := range tests {
		got, err := ParseLevel(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestComponentField(t *testing.T) {
	var buf bytes.Buffer
	l := Component(New(&buf, zerolog.InfoLevel), "painter")

	l.Debug().Msg("hidden")
	l.Info().Int("shapes", 3).Msg("stroke committed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "painter", entry["component"])
	assert.Equal(t, "stroke committed", entry["message"])
	assert.Equal(t, float64(3), entry["shapes"])
	assert.Contains(t, entry, "time")
}
