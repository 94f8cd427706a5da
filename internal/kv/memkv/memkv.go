// Package memkv is an in-memory key-value store. Nothing survives the process.
package memkv

import (
	"context"
	"sync"
)

type Store struct {
	mu   sync.Mutex
	data map[string]string
}

// New returns an empty store, optionally seeded with initial entries.
func New(seed ...map[string]string) *Store {
	s := &Store{data: map[string]string{}}
	for _, m := range seed {
		for k, v := range m {
			s.data[k] = v
		}
	}
	return s
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *Store) Close() error { return nil }
