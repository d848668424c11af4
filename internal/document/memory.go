// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package document

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-process document store used in development when no
// database is configured, and by tests. Subscribers are notified
// synchronously on Set.
type MemoryStore struct {
	mu   sync.Mutex
	docs map[string]json.RawMessage
	subs map[string]map[int]func(json.RawMessage)
	next int
}

// NewMemoryStore creates an empty in-memory document store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs: make(map[string]json.RawMessage),
		subs: make(map[string]map[int]func(json.RawMessage)),
	}
}

func key(collection, id string) string { return collection + "/" + id }

// Get returns a copy of the stored payload, or (nil, nil) when absent.
func (s *MemoryStore) Get(_ context.Context, collection, id string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[key(collection, id)]
	if !ok {
		return nil, nil
	}
	return append(json.RawMessage(nil), doc...), nil
}

// Set stores a copy of the payload and notifies subscribers.
func (s *MemoryStore) Set(_ context.Context, collection, id string, doc json.RawMessage) error {
	k := key(collection, id)

	s.mu.Lock()
	stored := append(json.RawMessage(nil), doc...)
	s.docs[k] = stored
	var fns []func(json.RawMessage)
	for _, fn := range s.subs[k] {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(append(json.RawMessage(nil), stored...))
	}
	return nil
}

// Subscribe registers fn for changes to one document.
func (s *MemoryStore) Subscribe(_ context.Context, collection, id string, fn func(json.RawMessage)) (func(), error) {
	k := key(collection, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.subs[k] == nil {
		s.subs[k] = make(map[int]func(json.RawMessage))
	}
	token := s.next
	s.next++
	s.subs[k][token] = fn

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.subs[k], token)
	}, nil
}
