package catalog

import (
	"context"
	"sync"
)

var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-process catalog. Ids are listed in insertion order.
type MemoryStore struct {
	mu         sync.RWMutex
	ids        []int64
	products   map[int64]*Product
	changelogs map[int64][]ChangeRecord
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		products:   make(map[int64]*Product),
		changelogs: make(map[int64][]ChangeRecord),
	}
}

func (s *MemoryStore) AddIds(ids ...int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ids = append(s.ids, ids...)
}

func (s *MemoryStore) PutProduct(prod *Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products[prod.Id] = prod
}

func (s *MemoryStore) PutChangelog(id int64, changelog []ChangeRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.changelogs[id] = changelog
}

func (s *MemoryStore) ListIds(ctx context.Context) ([]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]int64(nil), s.ids...), nil
}

func (s *MemoryStore) LoadProduct(ctx context.Context, id int64) (*Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	prod, ok := s.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	return prod, nil
}

func (s *MemoryStore) LoadChangelog(ctx context.Context, id int64) ([]ChangeRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	changelog, ok := s.changelogs[id]
	if !ok {
		return nil, ErrNotFound
	}
	return changelog, nil
}

func (s *MemoryStore) Close() error {
	return nil
}
