package services

import (
	"context"
	"errors"

	"github.com/stockroom/backend/internal/models"
)

var (
	ErrItemNotFound     = errors.New("item not found")
	ErrStoreUnavailable = errors.New("backing store unavailable")
)

// ItemService is the persistence boundary for inventory items. Two
// implementations exist: MongoItemService for production and
// MemoryItemService for local development and tests.
type ItemService interface {
	// List returns the items satisfying every active criterion in filter.
	// Ordering follows the store's natural order.
	List(ctx context.Context, filter models.ItemFilter) ([]models.Item, error)
	GetByID(ctx context.Context, id string) (*models.Item, error)
	Create(ctx context.Context, req *models.CreateItemRequest) (*models.Item, error)
	// Update replaces the four mutable fields of the item with the given id.
	// Concurrent updates to the same id are last-write-wins.
	Update(ctx context.Context, id string, req *models.UpdateItemRequest) (*models.Item, error)
	Delete(ctx context.Context, id string) error
	// Ping reports whether the backing store is reachable.
	Ping(ctx context.Context) error
}
