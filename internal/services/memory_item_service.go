package services

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/stockroom/backend/internal/models"
	"github.com/stockroom/backend/internal/storage"
)

// MemoryItemService keeps items in a mutex-guarded map. It backs local
// development (STORE_DRIVER=memory) and handler tests. When constructed with
// a data directory it snapshots the map to a JSON file after every mutation.
type MemoryItemService struct {
	mu    sync.RWMutex
	items map[string]models.Item
	store *storage.JSONStore
}

func NewMemoryItemService() *MemoryItemService {
	return &MemoryItemService{
		items: make(map[string]models.Item),
	}
}

// NewPersistentMemoryService returns a memory service that loads its initial
// state from dataDir/items.json and rewrites the file after each mutation.
func NewPersistentMemoryService(dataDir string) (*MemoryItemService, error) {
	store, err := storage.NewJSONStore(dataDir, "items.json")
	if err != nil {
		return nil, err
	}

	svc := &MemoryItemService{
		items: make(map[string]models.Item),
		store: store,
	}

	var snapshot []models.Item
	if err := store.Load(&snapshot); err != nil {
		return nil, err
	}
	for _, item := range snapshot {
		svc.items[item.ID] = item
	}
	return svc, nil
}

func (s *MemoryItemService) Ping(ctx context.Context) error {
	return nil
}

// snapshot persists the current map. Callers must hold the write lock.
// Failures are ignored; the snapshot is a dev convenience, not the source
// of truth while the process runs.
func (s *MemoryItemService) snapshot() {
	if s.store == nil {
		return
	}
	_ = s.store.Save(s.sorted())
}

// sorted returns the items oldest first with ID as tiebreaker, which is the
// store's natural order. Callers must hold at least the read lock.
func (s *MemoryItemService) sorted() []models.Item {
	out := make([]models.Item, 0, len(s.items))
	for _, item := range s.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func (s *MemoryItemService) List(ctx context.Context, filter models.ItemFilter) ([]models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := make([]models.Item, 0)
	for _, item := range s.sorted() {
		if filter.Matches(item) {
			results = append(results, item)
		}
	}
	return results, nil
}

func (s *MemoryItemService) GetByID(ctx context.Context, id string) (*models.Item, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}
	return &item, nil
}

func (s *MemoryItemService) Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item := models.Item{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		Price:       *req.Price,
		Quantity:    *req.Quantity,
		CreatedAt:   time.Now().UTC(),
	}

	s.items[item.ID] = item
	s.snapshot()
	return &item, nil
}

func (s *MemoryItemService) Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	item, exists := s.items[id]
	if !exists {
		return nil, ErrItemNotFound
	}

	item.Name = req.Name
	item.Description = req.Description
	item.Price = *req.Price
	item.Quantity = *req.Quantity

	s.items[id] = item
	s.snapshot()
	return &item, nil
}

func (s *MemoryItemService) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[id]; !exists {
		return ErrItemNotFound
	}
	delete(s.items, id)
	s.snapshot()
	return nil
}
