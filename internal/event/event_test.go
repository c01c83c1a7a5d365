package event

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/flashbar/internal/severity"
)

func TestNew(t *testing.T) {
	ev, err := New("disk full", severity.Error)
	require.NoError(t, err)

	assert.Len(t, ev.ID, 26) // ULID string length
	assert.Equal(t, "disk full", ev.Content)
	assert.Equal(t, severity.Error, ev.Severity)
	assert.WithinDuration(t, time.Now(), ev.Timestamp, time.Second)
}

func TestNew_UniqueIDs(t *testing.T) {
	a, err := New("a", severity.Info)
	require.NoError(t, err)
	b, err := New("b", severity.Info)
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}
