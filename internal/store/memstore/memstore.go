// Package memstore is an in-memory key-value store used for tests and the
// "memory" backend. Nothing survives the process.
package memstore

import (
	"errors"
	"sync"
)

// ErrQuotaExceeded is returned by writes after FailWrites(true).
var ErrQuotaExceeded = errors.New("memstore: quota exceeded")

// Store is a mutex-guarded map.
type Store struct {
	mu         sync.RWMutex
	data       map[string]string
	failWrites bool
}

// New returns an empty store.
func New() *Store {
	return &Store{data: make(map[string]string)}
}

func (s *Store) Get(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrQuotaExceeded
	}
	s.data[key] = value
	return nil
}

func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrites {
		return ErrQuotaExceeded
	}
	delete(s.data, key)
	return nil
}

// FailWrites makes every following Set and Remove fail with ErrQuotaExceeded.
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	s.failWrites = fail
	s.mu.Unlock()
}
