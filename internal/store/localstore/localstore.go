// Package localstore is a small key/value blob store backed by one file
// per key. Values are opaque bytes, human-readable on disk, portable.
// No locking; fine for a local single-user tool.
package localstore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoKey is returned by Get when the key has never been set.
var ErrNoKey = errors.New("no such key")

// ErrQuotaExceeded is returned by Set when the value would exceed the
// store's per-key quota.
var ErrQuotaExceeded = errors.New("quota exceeded")

// Store maps keys to files under a single directory.
type Store struct {
	dir   string
	quota int64
}

// Option configures a Store.
type Option func(*Store)

// WithQuota caps the byte size of any single value. Zero means no cap.
func WithQuota(n int64) Option {
	return func(s *Store) { s.quota = n }
}

// Open ensures dir exists and returns a store rooted there.
func Open(dir string, opts ...Option) (*Store, error) {
	if dir == "" {
		return nil, errors.New("empty store dir")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create store dir: %w", err)
	}
	s := &Store{dir: dir}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Dir returns the directory backing the store.
func (s *Store) Dir() string { return s.dir }

// Quota returns the per-key byte cap, zero when uncapped.
func (s *Store) Quota() int64 { return s.quota }

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || strings.Contains(key, "..") {
		return "", fmt.Errorf("invalid key %q", key)
	}
	return filepath.Join(s.dir, key+".json"), nil
}

// Get returns the value stored under key, or ErrNoKey.
func (s *Store) Get(key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(p)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("get %q: %w", key, ErrNoKey)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Set stores value under key, replacing any previous value.
func (s *Store) Set(key string, value []byte) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if s.quota > 0 && int64(len(value)) > s.quota {
		return fmt.Errorf("set %q: %d bytes over the %d byte cap: %w",
			key, int64(len(value))-s.quota, s.quota, ErrQuotaExceeded)
	}
	if err := os.WriteFile(p, value, 0o644); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// Delete removes key. Deleting an absent key is not an error.
func (s *Store) Delete(key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove file: %w", err)
	}
	return nil
}
