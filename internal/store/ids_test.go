package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIDAllocatesSequentially(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	for want := 1; want <= 5; want++ {
		got, err := s.NextID(ctx, EntityStation)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestNextIDCountersAreIndependent(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	id, err := s.NextID(ctx, EntityStation)
	require.NoError(t, err)
	assert.Equal(t, 1, id)

	id, err = s.NextID(ctx, EntityProduct)
	require.NoError(t, err)
	assert.Equal(t, 1, id, "a fresh entity starts its own sequence")

	id, err = s.NextID(ctx, EntityStation)
	require.NoError(t, err)
	assert.Equal(t, 2, id)
}

func TestSyncCounterRaisesFloor(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	// Client supplied id 7; the next allocation must not collide.
	require.NoError(t, s.SyncCounter(ctx, EntityStation, 7))

	id, err := s.NextID(ctx, EntityStation)
	require.NoError(t, err)
	assert.Equal(t, 8, id)
}

func TestSyncCounterNeverLowers(t *testing.T) {
	s := NewGormStore(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, s.SyncCounter(ctx, EntityProduct, 10))
	require.NoError(t, s.SyncCounter(ctx, EntityProduct, 3))

	id, err := s.NextID(ctx, EntityProduct)
	require.NoError(t, err)
	assert.Equal(t, 11, id)
}
