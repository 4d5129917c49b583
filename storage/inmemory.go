package storage

import (
	"context"
	"sync"
	"time"

	"go-web-services/types"
	"go.uber.org/zap"
)

// InMemoryStorage implements the URLStorage interface using an in-memory map.
type InMemoryStorage struct {
	urls     map[string]types.URLRecord // Map of short code to its record
	mu       sync.RWMutex               // Read-write mutex for thread-safe access to the map
	capacity int                        // Maximum number of records that can be stored
	count    int                        // Current number of stored records
	logger   *zap.Logger                // Logger for InMemoryStorage operations
}

// The sync.RWMutex (mu) ensures thread-safe access to the shared map. Get
// only needs the read lock, so lookups proceed concurrently; Put and
// RecordClick mutate and take the write lock. Critical sections never
// perform I/O, so lock hold times are negligible.

// NewInMemoryStorage creates and returns a new InMemoryStorage instance
func NewInMemoryStorage(capacity int, logger *zap.Logger) *InMemoryStorage {
	if capacity <= 0 {
		capacity = 1000 // Default capacity if an invalid value is provided
	}
	if logger == nil {
		var err error
		logger, err = zap.NewProduction()
		if err != nil {
			panic("Failed to initialize zap logger: " + err.Error())
		}
	}
	return &InMemoryStorage{
		urls:     make(map[string]types.URLRecord, capacity), // pre-allocates the map with the given capacity,
		capacity: capacity,                                    // can improve performance by reducing dynamic resizing
		logger:   logger,
	}
}

// snapshot returns a copy of a record that shares no memory with the stored
// value, so callers can never mutate store state outside the lock.
func snapshot(rec types.URLRecord) types.URLRecord {
	if rec.LastAccessedAt != nil {
		t := *rec.LastAccessedAt
		rec.LastAccessedAt = &t
	}
	return rec
}

// Put adds a new short code and its record to the storage. The store owns
// the lifecycle fields: CreatedAt is stamped here, Clicks starts at zero.
func (s *InMemoryStorage) Put(ctx context.Context, record types.URLRecord) error {
	select {
	case <-ctx.Done():
		s.logger.Warn("Put operation cancelled", zap.String("shortCode", record.ShortCode))
		return ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		if s.count >= s.capacity {
			s.logger.Error("Storage capacity reached. Cannot store short code", zap.String("shortCode", record.ShortCode))
			return ErrStorageCapacityReached
		}
		if _, exists := s.urls[record.ShortCode]; exists {
			s.logger.Warn("Attempt to create duplicate short code", zap.String("shortCode", record.ShortCode))
			return ErrCodeExists
		}

		record.CreatedAt = time.Now().UTC()
		record.Clicks = 0
		record.LastAccessedAt = nil
		s.urls[record.ShortCode] = record
		s.count++
		s.logger.Info("Short code created successfully",
			zap.String("shortCode", record.ShortCode),
			zap.String("originalURL", record.OriginalURL),
			zap.Time("createdAt", record.CreatedAt))
		return nil
	}
}

// Get retrieves a snapshot of the record for a given short code. It does not
// mutate click data.
func (s *InMemoryStorage) Get(ctx context.Context, code string) (types.URLRecord, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("Get operation cancelled", zap.String("shortCode", code))
		return types.URLRecord{}, ctx.Err()
	default:
		s.mu.RLock()
		defer s.mu.RUnlock()

		if record, exists := s.urls[code]; exists {
			return snapshot(record), nil
		}
		return types.URLRecord{}, ErrCodeNotFound
	}
}

// RecordClick increments the click count for a short code, stamps the last
// access time and returns the updated snapshot. The whole read-modify-return
// happens under the write lock so concurrent clicks never lose updates.
func (s *InMemoryStorage) RecordClick(ctx context.Context, code string) (types.URLRecord, error) {
	select {
	case <-ctx.Done():
		s.logger.Warn("RecordClick operation cancelled", zap.String("shortCode", code))
		return types.URLRecord{}, ctx.Err()
	default:
		s.mu.Lock()
		defer s.mu.Unlock()

		record, exists := s.urls[code]
		if !exists {
			return types.URLRecord{}, ErrCodeNotFound
		}

		now := time.Now().UTC()
		record.Clicks++
		record.LastAccessedAt = &now
		s.urls[code] = record

		s.logger.Info("Click recorded",
			zap.String("shortCode", code),
			zap.Int64("clicks", record.Clicks))
		return snapshot(record), nil
	}
}
