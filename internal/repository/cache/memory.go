package cache

import (
	"context"
	"sync"
	"time"

	"github.com/emergency-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

const cleanupInterval = 5 * time.Minute

// memoryCacheRepository - внутрипроцессный кеш с TTL. Используется при
// CACHE_DRIVER=memory, когда Redis не нужен (один экземпляр сервиса).
type memoryCacheRepository struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	logger  *zap.Logger
}

type memoryEntry struct {
	value     []byte
	expiresAt time.Time
}

func NewMemoryCacheRepository(logger *zap.Logger) repository.CacheRepository {
	r := &memoryCacheRepository{
		entries: make(map[string]memoryEntry),
		logger:  logger,
	}

	go r.cleanupExpired()

	return r
}

func (r *memoryCacheRepository) Get(ctx context.Context, key string) ([]byte, error) {
	r.mu.RLock()
	entry, ok := r.entries[key]
	r.mu.RUnlock()

	if !ok {
		return nil, nil // Cache miss
	}

	// Истёкшая запись эквивалентна отсутствующей, подчистит фоновая горутина
	if time.Now().After(entry.expiresAt) {
		return nil, nil
	}

	r.logger.Debug("Cache hit", zap.String("key", key))
	return entry.value, nil
}

func (r *memoryCacheRepository) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	r.mu.Lock()
	r.entries[key] = memoryEntry{
		value:     value,
		expiresAt: time.Now().Add(ttl),
	}
	r.mu.Unlock()

	r.logger.Debug("Cache set", zap.String("key", key), zap.Duration("ttl", ttl))
	return nil
}

func (r *memoryCacheRepository) Delete(ctx context.Context, key string) error {
	r.mu.Lock()
	delete(r.entries, key)
	r.mu.Unlock()
	return nil
}

func (r *memoryCacheRepository) Exists(ctx context.Context, key string) (bool, error) {
	val, err := r.Get(ctx, key)
	if err != nil {
		return false, err
	}
	return val != nil, nil
}

func (r *memoryCacheRepository) cleanupExpired() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()

		r.mu.Lock()
		for key, entry := range r.entries {
			if now.After(entry.expiresAt) {
				delete(r.entries, key)
			}
		}
		r.mu.Unlock()
	}
}
