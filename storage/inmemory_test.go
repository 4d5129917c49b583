package storage

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-web-services/types"
	"go.uber.org/zap"
)

func TestInMemoryStorage(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	store := NewInMemoryStorage(10, logger)

	t.Run("NewInMemoryStorage", func(t *testing.T) {
		// Test with capacity <= 0
		logger := zap.NewNop()
		store := NewInMemoryStorage(0, logger)
		assert.Equal(t, 1000, store.capacity, "Capacity should be set to default 1000 when input is 0")

		store = NewInMemoryStorage(-5, logger)
		assert.Equal(t, 1000, store.capacity, "Capacity should be set to default 1000 when input is negative")

		// Test with nil logger
		store = NewInMemoryStorage(10, nil)
		assert.NotNil(t, store.logger, "Logger should be initialized when input is nil")
	})

	t.Run("Put", func(t *testing.T) {
		err := store.Put(ctx, types.URLRecord{ShortCode: "abc123", OriginalURL: "https://example.com"})
		assert.NoError(t, err)

		// The store owns the lifecycle fields
		record, err := store.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", record.OriginalURL)
		assert.Equal(t, int64(0), record.Clicks)
		assert.False(t, record.CreatedAt.IsZero())
		assert.Nil(t, record.LastAccessedAt)

		// Duplicate code fails and leaves the existing record unchanged
		err = store.Put(ctx, types.URLRecord{ShortCode: "abc123", OriginalURL: "https://other.com"})
		assert.Equal(t, ErrCodeExists, err)

		record, err = store.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, "https://example.com", record.OriginalURL, "Existing record should be untouched after a duplicate Put")

		// Test capacity limit
		for i := 0; i < 9; i++ {
			err = store.Put(ctx, types.URLRecord{ShortCode: fmt.Sprintf("test%d", i), OriginalURL: "https://test.com"})
			require.NoError(t, err)
		}
		err = store.Put(ctx, types.URLRecord{ShortCode: "overflow", OriginalURL: "https://overflow.com"})
		assert.Equal(t, ErrStorageCapacityReached, err)

		// Test context cancellation
		cancelStore := NewInMemoryStorage(10, zap.NewNop())
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		err = cancelStore.Put(cancelCtx, types.URLRecord{ShortCode: "cancelled", OriginalURL: "https://cancelled.com"})
		assert.Equal(t, context.Canceled, err, "Expected error to be context.Canceled")

		// Verify that the entry was not created
		_, err = cancelStore.Get(context.Background(), "cancelled")
		assert.Equal(t, ErrCodeNotFound, err, "Short code should not have been added to the storage")
		assert.Equal(t, 0, cancelStore.count, "Storage count should remain 0")
	})

	t.Run("Get", func(t *testing.T) {
		record, err := store.Get(ctx, "abc123")
		assert.NoError(t, err)
		assert.Equal(t, "https://example.com", record.OriginalURL)

		// Get never mutates click data
		record, err = store.Get(ctx, "abc123")
		require.NoError(t, err)
		assert.Equal(t, int64(0), record.Clicks)

		// Test non-existent code
		_, err = store.Get(ctx, "nonexistent")
		assert.Equal(t, ErrCodeNotFound, err)

		// Test context cancellation
		cancelCtx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = store.Get(cancelCtx, "abc123")
		assert.Equal(t, context.Canceled, err, "Expected error to be context.Canceled")
	})

	t.Run("RecordClick", func(t *testing.T) {
		clickStore := NewInMemoryStorage(10, zap.NewNop())
		require.NoError(t, clickStore.Put(ctx, types.URLRecord{ShortCode: "click1", OriginalURL: "https://example.com"}))

		record, err := clickStore.RecordClick(ctx, "click1")
		require.NoError(t, err)
		assert.Equal(t, int64(1), record.Clicks)
		require.NotNil(t, record.LastAccessedAt)
		firstAccess := *record.LastAccessedAt

		record, err = clickStore.RecordClick(ctx, "click1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), record.Clicks)
		require.NotNil(t, record.LastAccessedAt)
		assert.False(t, record.LastAccessedAt.Before(firstAccess), "LastAccessedAt should move forward on every click")

		// Unknown code
		_, err = clickStore.RecordClick(ctx, "nonexistent")
		assert.Equal(t, ErrCodeNotFound, err)

		// Test context cancellation
		cancelCtx, cancel := context.WithCancel(ctx)
		cancel()
		_, err = clickStore.RecordClick(cancelCtx, "click1")
		assert.Equal(t, context.Canceled, err)

		// Verify the count was not incremented after cancellation
		record, err = clickStore.Get(ctx, "click1")
		require.NoError(t, err)
		assert.Equal(t, int64(2), record.Clicks)
	})

	t.Run("ConcurrentClicks", func(t *testing.T) {
		concurrentStore := NewInMemoryStorage(10, zap.NewNop())
		require.NoError(t, concurrentStore.Put(ctx, types.URLRecord{ShortCode: "conc", OriginalURL: "https://example.com"}))

		const goroutines = 50
		const clicksPerGoroutine = 20

		var wg sync.WaitGroup
		wg.Add(goroutines)
		for i := 0; i < goroutines; i++ {
			go func() {
				defer wg.Done()
				for j := 0; j < clicksPerGoroutine; j++ {
					_, err := concurrentStore.RecordClick(ctx, "conc")
					assert.NoError(t, err)
				}
			}()
		}
		wg.Wait()

		record, err := concurrentStore.Get(ctx, "conc")
		require.NoError(t, err)
		assert.Equal(t, int64(goroutines*clicksPerGoroutine), record.Clicks, "No clicks should be lost under concurrency")
	})

	t.Run("SnapshotIsolation", func(t *testing.T) {
		snapStore := NewInMemoryStorage(10, zap.NewNop())
		require.NoError(t, snapStore.Put(ctx, types.URLRecord{ShortCode: "snap", OriginalURL: "https://example.com"}))

		record, err := snapStore.RecordClick(ctx, "snap")
		require.NoError(t, err)
		require.NotNil(t, record.LastAccessedAt)

		// Mutating the returned snapshot must not affect the stored record
		record.Clicks = 999
		*record.LastAccessedAt = record.LastAccessedAt.AddDate(1, 0, 0)

		stored, err := snapStore.Get(ctx, "snap")
		require.NoError(t, err)
		assert.Equal(t, int64(1), stored.Clicks)
		assert.True(t, stored.LastAccessedAt.Before(*record.LastAccessedAt))
	})
}
