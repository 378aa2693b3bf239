package storage

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poselab/posturewatch/internal/models"
)

func TestFileStoreFlush(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir, "talk")
	ctx := context.Background()

	require.NoError(t, store.AddResult(ctx, models.FrameResult{Frame: 1, TrackID: 4, ArmsFolded: true}))
	require.NoError(t, store.AddResult(ctx, models.FrameResult{Frame: 2, TrackID: 4, IsLeaning: true}))

	// Nothing is written until the batch fills or Flush is called.
	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))

	require.NoError(t, store.Flush())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var results []models.FrameResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.True(t, results[0].ArmsFolded)
	assert.True(t, results[1].IsLeaning)
}

func TestFileStoreAutoFlushAtBatchSize(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir, "talk")
	ctx := context.Background()

	for i := 0; i < batchSize; i++ {
		require.NoError(t, store.AddResult(ctx, models.FrameResult{Frame: i, TrackID: 1}))
	}

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var results []models.FrameResult
	require.NoError(t, json.Unmarshal(data, &results))
	assert.Len(t, results, batchSize)
}

func TestFileStoreAppendsAcrossFlushes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	store := NewFileStore(dir, "talk")
	ctx := context.Background()

	require.NoError(t, store.AddResult(ctx, models.FrameResult{Frame: 1, TrackID: 1}))
	require.NoError(t, store.Flush())
	require.NoError(t, store.AddResult(ctx, models.FrameResult{Frame: 2, TrackID: 1}))
	require.NoError(t, store.Flush())

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)

	var results []models.FrameResult
	require.NoError(t, json.Unmarshal(data, &results))
	require.Len(t, results, 2)
	assert.Equal(t, 1, results[0].Frame)
	assert.Equal(t, 2, results[1].Frame)
}

func TestFileStoreFlushEmpty(t *testing.T) {
	t.Parallel()

	store := NewFileStore(t.TempDir(), "talk")
	require.NoError(t, store.Flush())

	_, err := os.Stat(store.Path())
	assert.True(t, os.IsNotExist(err))
}
