package session

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"
)

// FlagsKey is the storage key holding the flagged question ids.
const FlagsKey = "flaggedQuestions"

// Storage is durable local key-value persistence. Keys are independent of
// each other and both operations are best-effort.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error
}

// Adapter moves the flag set between memory and Storage. Flags are a
// convenience feature, so read and write failures are logged and never
// returned to the caller.
type Adapter struct {
	storage Storage
	logger  *log.Logger
}

// NewAdapter creates an Adapter. A nil logger uses the standard logger.
func NewAdapter(storage Storage, logger *log.Logger) *Adapter {
	if logger == nil {
		logger = log.Default()
	}
	return &Adapter{storage: storage, logger: logger}
}

// LoadFlags returns the stored flag set. Absent, unreadable or corrupt data
// yields an empty set.
func (a *Adapter) LoadFlags(ctx context.Context) *FlagSet {
	raw, ok, err := a.storage.Get(ctx, FlagsKey)
	if err != nil {
		a.logger.Printf("flags: read %q: %v", FlagsKey, err)
		return NewFlagSet()
	}
	if !ok || raw == "" {
		return NewFlagSet()
	}

	fs := NewFlagSet()
	if err := json.Unmarshal([]byte(raw), fs); err != nil {
		a.logger.Printf("flags: discarding corrupt value: %v", err)
		return NewFlagSet()
	}
	return fs
}

// SaveFlags writes fs to storage.
func (a *Adapter) SaveFlags(ctx context.Context, fs *FlagSet) {
	_ = a.save(ctx, fs)
}

// save writes fs and logs a failure before returning it.
func (a *Adapter) save(ctx context.Context, fs *FlagSet) error {
	raw, err := json.Marshal(fs)
	if err != nil {
		a.logger.Printf("flags: encode: %v", err)
		return fmt.Errorf("encode flags: %w", err)
	}
	if err := a.storage.Set(ctx, FlagsKey, string(raw)); err != nil {
		a.logger.Printf("flags: write %q: %v", FlagsKey, err)
		return fmt.Errorf("write flags: %w", err)
	}
	return nil
}

// MemoryStorage is a Storage held in process memory.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string]string
}

var _ Storage = (*MemoryStorage)(nil)

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string]string)}
}

func (m *MemoryStorage) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *MemoryStorage) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
