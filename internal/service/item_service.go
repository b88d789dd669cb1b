package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/vbonduro/crudapp/internal/domain"
	"github.com/vbonduro/crudapp/internal/record"
)

// ErrNoContent means the operation had nothing to act on or nothing to
// return: an empty payload, a non-positive id, or no matching rows.
var ErrNoContent = errors.New("no content")

// itemRepository is the subset of store.ItemStore that ItemService requires.
type itemRepository interface {
	Create(ctx context.Context, v record.Values) (*domain.Item, error)
	GetByID(ctx context.Context, id int64) (*domain.Item, error)
	List(ctx context.Context) ([]*domain.Item, error)
	Update(ctx context.Context, id int64, v record.Values) error
	Delete(ctx context.Context, id int64) error
}

type ItemService struct {
	itemStore itemRepository
	logger    *slog.Logger
}

func NewItemService(itemStore itemRepository, logger *slog.Logger) *ItemService {
	return &ItemService{itemStore: itemStore, logger: logger}
}

func (s *ItemService) List(ctx context.Context) ([]*domain.Item, error) {
	items, err := s.itemStore.List(ctx)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrNoContent
	}
	return items, nil
}

func (s *ItemService) Get(ctx context.Context, id int64) (*domain.Item, error) {
	if id <= 0 {
		return nil, ErrNoContent
	}
	item, err := s.itemStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrNoContent
	}
	return item, nil
}

// Create inserts a new item from a decoded JSON object. Keys outside the
// item whitelist are ignored; whitelisted keys that are absent are stored
// as empty strings.
func (s *ItemService) Create(ctx context.Context, payload map[string]any) (*domain.Item, error) {
	if len(payload) == 0 {
		return nil, ErrNoContent
	}
	v := s.values(payload)
	return s.itemStore.Create(ctx, v)
}

// Update overwrites every whitelisted column of item id. The fields are read
// from a nested "item" object when the payload has one, otherwise from the
// payload itself. The returned item is nil when id matched no row.
func (s *ItemService) Update(ctx context.Context, id int64, payload map[string]any) (*domain.Item, error) {
	if len(payload) == 0 || id <= 0 {
		return nil, ErrNoContent
	}
	v := s.values(updateFields(payload))
	if err := s.itemStore.Update(ctx, id, v); err != nil {
		return nil, err
	}
	return s.itemStore.GetByID(ctx, id)
}

func (s *ItemService) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrNoContent
	}
	return s.itemStore.Delete(ctx, id)
}

func (s *ItemService) values(payload map[string]any) record.Values {
	v := record.FromPayload(payload)
	if dropped := record.ItemColumns.Dropped(v); len(dropped) > 0 {
		s.logger.Debug("ignoring non-item fields", "fields", dropped)
	}
	return v
}

func updateFields(payload map[string]any) map[string]any {
	if nested, ok := payload["item"].(map[string]any); ok {
		return nested
	}
	return payload
}
