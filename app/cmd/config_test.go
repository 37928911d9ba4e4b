package cmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConfigHelpers(t *testing.T) {
	data := map[string]interface{}{
		"listing": map[string]interface{}{
			"sort": "name",
		},
	}
	value, ok := getConfigValue(data, "listing.sort")
	require.True(t, ok)
	require.Equal(t, "name", value)

	require.NoError(t, setConfigValue(data, "listing.sort", "date"))
	value, ok = getConfigValue(data, "listing.sort")
	require.True(t, ok)
	require.Equal(t, "date", value)

	require.NoError(t, setConfigValue(data, "summary.words", 200))
	value, ok = getConfigValue(data, "summary.words")
	require.True(t, ok)
	require.Equal(t, 200, value)

	_, ok = getConfigValue(data, "listing.missing")
	require.False(t, ok)
}

func TestParseValue(t *testing.T) {
	require.Equal(t, true, parseValue("true"))
	require.Equal(t, int64(42), parseValue("42"))
	require.Equal(t, 1.5, parseValue("1.5"))
	require.Equal(t, "llama3.2", parseValue("llama3.2"))
}
