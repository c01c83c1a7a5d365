package severity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrdering(t *testing.T) {
	assert.True(t, Debug < Info)
	assert.True(t, Info < Warning)
	assert.True(t, Warning < Error)
}

func TestAtLeast(t *testing.T) {
	assert.True(t, Error.AtLeast(Warning))
	assert.True(t, Warning.AtLeast(Warning))
	assert.False(t, Info.AtLeast(Warning))
}

func TestString(t *testing.T) {
	assert.Equal(t, "debug", Debug.String())
	assert.Equal(t, "info", Info.String())
	assert.Equal(t, "warning", Warning.String())
	assert.Equal(t, "error", Error.String())
	assert.Equal(t, "unknown", Level(42).String())
}

func TestParse(t *testing.T) {
	tests := []struct {
		input string
		want  Level
	}{
		{"debug", Debug},
		{"Info", Info},
		{"WARN", Warning},
		{"warning", Warning},
		{"error", Error},
		{"err", Error},
		{" e ", Error},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		_, err := Parse("fatal")
		assert.Error(t, err)
	})
}

func TestTextRoundTrip(t *testing.T) {
	for _, level := range []Level{Debug, Info, Warning, Error} {
		data, err := level.MarshalText()
		require.NoError(t, err)

		var parsed Level
		require.NoError(t, parsed.UnmarshalText(data))
		assert.Equal(t, level, parsed)
	}

	var l Level
	assert.Error(t, l.UnmarshalText([]byte("nope")))
}
