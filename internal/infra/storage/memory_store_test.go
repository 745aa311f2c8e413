package storage

import (
	"context"
	"testing"

	repo "storefront/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_SetGetRemove(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Get(ctx, "bunaiCart:a")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	require.NoError(t, s.Set(ctx, "bunaiCart:a", `[{"id":"1","quantity":2}]`))
	v, err := s.Get(ctx, "bunaiCart:a")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":"1","quantity":2}]`, v)

	require.NoError(t, s.Set(ctx, "bunaiCart:a", `[]`))
	v, _ = s.Get(ctx, "bunaiCart:a")
	assert.Equal(t, `[]`, v)

	require.NoError(t, s.Remove(ctx, "bunaiCart:a"))
	_, err = s.Get(ctx, "bunaiCart:a")
	assert.ErrorIs(t, err, repo.ErrNotFound)

	// 2回目の削除もエラーにならない
	assert.NoError(t, s.Remove(ctx, "bunaiCart:a"))
	assert.Equal(t, 0, s.Len())
}
