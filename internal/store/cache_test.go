package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/88maurosls/asics/internal/model"
)

func createTestCache(t *testing.T) *Cache {
	t.Helper()
	cache, err := NewCache(filepath.Join(t.TempDir(), "cache.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache
}

func TestCacheRoundTrip(t *testing.T) {
	cache := createTestCache(t)
	ctx := context.Background()

	entries := model.ClassificationSet{
		{Article: "1011A792", Color: "001"}: model.LabelUomo,
		{Article: "1012B413", Color: "700"}: model.LabelDonna,
	}

	require.NoError(t, cache.Replace(ctx, entries))

	got, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, entries, got)
}

func TestCacheReplaceOverwrites(t *testing.T) {
	cache := createTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Replace(ctx, model.ClassificationSet{
		{Article: "A", Color: "001"}: model.LabelUomo,
		{Article: "B", Color: "002"}: model.LabelDonna,
	}))

	// A later hydrate with different content replaces, not merges.
	require.NoError(t, cache.Replace(ctx, model.ClassificationSet{
		{Article: "A", Color: "001"}: model.LabelUnisex,
	}))

	got, err := cache.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, model.LabelUnisex, got[model.ClassificationKey{Article: "A", Color: "001"}])
}

func TestCacheGetAllCanonicalizesLabels(t *testing.T) {
	cache := createTestCache(t)
	ctx := context.Background()

	// Rows written by an older build or copied by hand may carry
	// non-canonical label text; reading them back must not leak it.
	require.NoError(t, cache.Replace(ctx, model.ClassificationSet{
		{Article: "A", Color: "001"}: model.Label("uomo"),
		{Article: "B", Color: "002"}: model.Label("bambino"),
	}))

	got, err := cache.GetAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.LabelUomo, got[model.ClassificationKey{Article: "A", Color: "001"}])
	assert.Equal(t, model.LabelUnset, got[model.ClassificationKey{Article: "B", Color: "002"}])
}

func TestCacheEmpty(t *testing.T) {
	cache := createTestCache(t)

	got, err := cache.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, got)
}
