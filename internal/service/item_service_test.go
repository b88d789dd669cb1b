package service

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vbonduro/crudapp/internal/db"
	"github.com/vbonduro/crudapp/internal/domain"
	"github.com/vbonduro/crudapp/internal/record"
	"github.com/vbonduro/crudapp/internal/store"
)

func newTestItemService(t *testing.T) *ItemService {
	t.Helper()
	d, err := db.OpenForTesting()
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })
	return NewItemService(store.NewItemStore(d), slog.Default())
}

// failingItems fails every call and counts them.
type failingItems struct {
	calls int
	err   error
}

func (f *failingItems) Create(context.Context, record.Values) (*domain.Item, error) {
	f.calls++
	return nil, f.err
}

func (f *failingItems) GetByID(context.Context, int64) (*domain.Item, error) {
	f.calls++
	return nil, f.err
}

func (f *failingItems) List(context.Context) ([]*domain.Item, error) {
	f.calls++
	return nil, f.err
}

func (f *failingItems) Update(context.Context, int64, record.Values) error {
	f.calls++
	return f.err
}

func (f *failingItems) Delete(context.Context, int64) error {
	f.calls++
	return f.err
}

func TestCreateThenGet_RoundTrip(t *testing.T) {
	svc := newTestItemService(t)
	ctx := context.Background()

	payload := map[string]any{
		"title":       "Denim Jacket",
		"description": "Washed blue",
		"price":       json.Number("89.50"),
		"size":        "M",
		"site":        "https://shop.example.com/denim",
	}
	created, err := svc.Create(ctx, payload)
	require.NoError(t, err)

	got, err := svc.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Denim Jacket", got.Title)
	assert.Equal(t, "Washed blue", got.Description)
	assert.Equal(t, "89.50", got.Price)
	assert.Equal(t, "M", got.Size)
	assert.Equal(t, "https://shop.example.com/denim", got.Site)
	assert.Equal(t, "", got.Type)
	assert.Equal(t, "", got.Gender)
	assert.Equal(t, "", got.Vendor)
	assert.Equal(t, "", got.Tags)
}

func TestCreate_EmptyPayload(t *testing.T) {
	svc := newTestItemService(t)

	_, err := svc.Create(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoContent)
	_, err = svc.Create(context.Background(), map[string]any{})
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestCreate_OnlyUnknownKeys(t *testing.T) {
	svc := newTestItemService(t)

	item, err := svc.Create(context.Background(), map[string]any{"colour": "red"})
	require.NoError(t, err)
	assert.Equal(t, "", item.Title)
}

func TestDeleteThenGet(t *testing.T) {
	svc := newTestItemService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, map[string]any{"title": "Socks"})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, item.ID))

	_, err = svc.Get(ctx, item.ID)
	assert.ErrorIs(t, err, ErrNoContent)
}

func TestUpdate_BlanksOmittedColumns(t *testing.T) {
	svc := newTestItemService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, map[string]any{"title": "Beanie", "tags": "wool,winter"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, map[string]any{"id": item.ID, "title": "Beanie XL"})
	require.NoError(t, err)
	assert.Equal(t, "Beanie XL", updated.Title)
	assert.Equal(t, "", updated.Tags)
}

func TestUpdate_NestedPayload(t *testing.T) {
	svc := newTestItemService(t)
	ctx := context.Background()

	item, err := svc.Create(ctx, map[string]any{"title": "Gloves"})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, item.ID, map[string]any{
		"id":   item.ID,
		"item": map[string]any{"title": "Leather Gloves", "vendor": "Acme"},
	})
	require.NoError(t, err)
	assert.Equal(t, "Leather Gloves", updated.Title)
	assert.Equal(t, "Acme", updated.Vendor)
}

func TestUpdate_NoContent(t *testing.T) {
	items := &failingItems{err: errors.New("must not be called")}
	svc := NewItemService(items, slog.Default())

	_, err := svc.Update(context.Background(), 1, map[string]any{})
	assert.ErrorIs(t, err, ErrNoContent)
	_, err = svc.Update(context.Background(), 0, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Zero(t, items.calls)
}

func TestDeleteAndGet_NonPositiveID(t *testing.T) {
	items := &failingItems{err: errors.New("must not be called")}
	svc := NewItemService(items, slog.Default())

	assert.ErrorIs(t, svc.Delete(context.Background(), 0), ErrNoContent)
	assert.ErrorIs(t, svc.Delete(context.Background(), -3), ErrNoContent)
	_, err := svc.Get(context.Background(), 0)
	assert.ErrorIs(t, err, ErrNoContent)
	assert.Zero(t, items.calls, "no statement may run for a non-positive id")
}

func TestList(t *testing.T) {
	svc := newTestItemService(t)
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, ErrNoContent)

	for _, title := range []string{"B", "A", "C"} {
		_, err := svc.Create(ctx, map[string]any{"title": title})
		require.NoError(t, err)
	}

	items, err := svc.List(ctx)
	require.NoError(t, err)
	titles := make([]string, len(items))
	for i, it := range items {
		titles[i] = it.Title
	}
	assert.Equal(t, []string{"A", "B", "C"}, titles)
}

func TestRepositoryErrorsPropagate(t *testing.T) {
	boom := errors.New("connection reset")
	svc := NewItemService(&failingItems{err: boom}, slog.Default())
	ctx := context.Background()

	_, err := svc.List(ctx)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Get(ctx, 1)
	assert.ErrorIs(t, err, boom)
	_, err = svc.Create(ctx, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, boom)
	_, err = svc.Update(ctx, 1, map[string]any{"title": "x"})
	assert.ErrorIs(t, err, boom)
	assert.ErrorIs(t, svc.Delete(ctx, 1), boom)
}
