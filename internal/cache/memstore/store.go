// Package memstore is the in-process cache backend, an expirable LRU.
package memstore

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

type Store struct {
	lru *expirable.LRU[string, []byte]
}

// New builds a store with the given capacity and entry lifetime. The LRU
// applies one lifetime to every entry; callers that need a different TTL
// per Set (none do today) would need a second store.
func New(size int, ttl time.Duration) *Store {
	if size <= 0 {
		size = 256
	}
	return &Store{lru: expirable.NewLRU[string, []byte](size, nil, ttl)}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := s.lru.Get(key)
	if !ok {
		return nil, false, nil
	}
	return v, true, nil
}

func (s *Store) Set(_ context.Context, key string, val []byte, _ time.Duration) error {
	s.lru.Add(key, val)
	return nil
}

func (s *Store) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		s.lru.Remove(k)
	}
	return nil
}
