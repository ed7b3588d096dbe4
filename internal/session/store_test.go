package session

import (
	"testing"
	"time"

	"github.com/archguru/advisor-backend/internal/entity"
	"github.com/archguru/advisor-backend/internal/usecase/wizard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newPipeline() *wizard.Pipeline {
	return wizard.NewPipeline(wizard.SingleRoundConfig(), nil, zap.NewNop())
}

func TestStoreCreateAndGet(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	pipeline := newPipeline()
	id := store.Create(pipeline)
	require.NotEmpty(t, id)

	got, err := store.Get(id)
	require.NoError(t, err)
	assert.Same(t, pipeline, got)
	assert.Equal(t, 1, store.Count())
}

func TestStoreGetUnknownID(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	_, err := store.Get("no-such-session")
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStoreDelete(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	id := store.Create(newPipeline())
	store.Delete(id)

	_, err := store.Get(id)
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
	assert.Equal(t, 0, store.Count())

	store.Delete("already-gone")
}

func TestStoreExpiry(t *testing.T) {
	store := NewStore(20*time.Millisecond, time.Minute)

	id := store.Create(newPipeline())
	time.Sleep(40 * time.Millisecond)

	_, err := store.Get(id)
	require.ErrorIs(t, err, entity.ErrSessionNotFound)
}

func TestStoreGetRenewsTTL(t *testing.T) {
	store := NewStore(60*time.Millisecond, time.Minute)

	id := store.Create(newPipeline())
	for i := 0; i < 4; i++ {
		time.Sleep(30 * time.Millisecond)
		_, err := store.Get(id)
		require.NoError(t, err, "access %d should have renewed the TTL", i)
	}
}

func TestStoreIDsAreUnique(t *testing.T) {
	store := NewStore(time.Minute, time.Minute)

	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		id := store.Create(newPipeline())
		require.False(t, seen[id])
		seen[id] = true
	}
	assert.Equal(t, 100, store.Count())
}
