package storage

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// Store keeps objects by id plus a secondary index from short code to id.
// Both maps are guarded by the same lock so they never disagree.
type Store struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*StoredObject
	byCode map[string]uuid.UUID
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{
		byID:   make(map[uuid.UUID]*StoredObject),
		byCode: make(map[string]uuid.UUID),
	}
}

// Put inserts obj under both indexes. The uniqueness check and the insert
// run in one critical section, so two uploads racing for the same code
// cannot both succeed.
func (s *Store) Put(obj *StoredObject) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byCode[obj.ShortCode]; taken {
		return fmt.Errorf("put %s: %w", obj.ShortCode, ErrDuplicateCode)
	}
	if _, taken := s.byID[obj.ID]; taken {
		return fmt.Errorf("put %s: id %s already stored", obj.ShortCode, obj.ID)
	}

	s.byID[obj.ID] = obj
	s.byCode[obj.ShortCode] = obj.ID
	return nil
}

// GetByCode resolves a short code. Expiry is not checked here.
func (s *Store) GetByCode(code string) (*StoredObject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byCode[code]
	if !ok {
		return nil, ErrNotFound
	}
	return s.byID[id], nil
}

// Remove deletes the object and its code entry. It reports whether
// anything was removed; removing an absent id is a no-op.
func (s *Store) Remove(id uuid.UUID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	obj, ok := s.byID[id]
	if !ok {
		return false
	}
	delete(s.byID, id)
	// The code may already point at a newer object if it was reused.
	if s.byCode[obj.ShortCode] == id {
		delete(s.byCode, obj.ShortCode)
	}
	return true
}

// All returns a snapshot of the live objects. Mutations after the call
// do not affect the returned slice.
func (s *Store) All() []*StoredObject {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*StoredObject, 0, len(s.byID))
	for _, obj := range s.byID {
		out = append(out, obj)
	}
	return out
}

// Len returns the number of live objects.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}
