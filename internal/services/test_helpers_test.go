package services

import (
	"context"
	"errors"
	"sync"
	"time"
)

var errStoreDown = errors.New("store down")

type memoryStore struct {
	mu      sync.Mutex
	values  map[string]string
	failGet bool
	failSet bool
	gets    int
	sets    int

	// failSetKeys fails Set and Remove only for the listed keys.
	failSetKeys map[string]bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: make(map[string]string)}
}

func (store *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.gets++
	if store.failGet {
		return "", false, errStoreDown
	}
	value, ok := store.values[key]
	return value, ok, nil
}

func (store *memoryStore) Set(_ context.Context, key string, value string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.sets++
	if store.failSet || store.failSetKeys[key] {
		return errStoreDown
	}
	store.values[key] = value
	return nil
}

func (store *memoryStore) Remove(_ context.Context, key string) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.failSet || store.failSetKeys[key] {
		return errStoreDown
	}
	delete(store.values, key)
	return nil
}

func (store *memoryStore) failWritesTo(keys ...string) {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.failSetKeys = make(map[string]bool, len(keys))
	for _, key := range keys {
		store.failSetKeys[key] = true
	}
}

func (store *memoryStore) value(key string) (string, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	value, ok := store.values[key]
	return value, ok
}

// steppingClock returns a strictly increasing time on every call.
type steppingClock struct {
	mu      sync.Mutex
	current time.Time
	step    time.Duration
}

func newSteppingClock(start time.Time) *steppingClock {
	return &steppingClock{current: start, step: time.Minute}
}

func (clock *steppingClock) Now() time.Time {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.current = clock.current.Add(clock.step)
	return clock.current
}

func fixedClock(value time.Time) func() time.Time {
	return func() time.Time {
		return value
	}
}

func datePtr(year int, month time.Month, day int) *time.Time {
	value := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &value
}
