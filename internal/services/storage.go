package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

var ErrStorageUnavailable = errors.New("storage unavailable")

// KeyValueStore is the device-local persistence capability. Values are
// serialized by the caller.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string) error
	Remove(ctx context.Context, key string) error
}

// keyedMutex serializes read-modify-write cycles on one storage key.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func newKeyedMutex() *keyedMutex {
	return &keyedMutex{locks: make(map[string]*sync.Mutex)}
}

func (keyed *keyedMutex) lock(key string) func() {
	keyed.mu.Lock()
	lock, ok := keyed.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		keyed.locks[key] = lock
	}
	keyed.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func storageError(op string, key string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrStorageUnavailable, op, key, err)
}

// loadCollection reads a JSON array stored under key. A missing key and a
// corrupt blob both yield an empty collection; only store failures are errors.
func loadCollection[T any](ctx context.Context, store KeyValueStore, logger *zap.Logger, key string) ([]T, error) {
	raw, found, err := store.Get(ctx, key)
	if err != nil {
		return nil, storageError("get", key, err)
	}
	if !found || raw == "" {
		return []T{}, nil
	}

	items := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		logger.Warn("corrupt collection treated as empty",
			zap.String("key", key),
			zap.Int("bytes", len(raw)),
			zap.Error(err),
		)
		return []T{}, nil
	}
	return items, nil
}

func saveCollection[T any](ctx context.Context, store KeyValueStore, key string, items []T) error {
	encoded, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := store.Set(ctx, key, string(encoded)); err != nil {
		return storageError("set", key, err)
	}
	return nil
}
