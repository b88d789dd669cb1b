package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/vbonduro/crudapp/internal/domain"
	"github.com/vbonduro/crudapp/internal/record"
)

const itemSelect = `
	SELECT id, title, description, price, type, size, gender, vendor, site, tags, modified FROM items`

type ItemStore struct {
	db *sql.DB
}

func NewItemStore(db *sql.DB) *ItemStore {
	return &ItemStore{db: db}
}

func (s *ItemStore) Create(ctx context.Context, v record.Values) (*domain.Item, error) {
	stmt := record.ItemColumns.Insert(v)
	result, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to get last insert id: %w", err)
	}

	return s.GetByID(ctx, id)
}

func (s *ItemStore) GetByID(ctx context.Context, id int64) (*domain.Item, error) {
	item, err := scanItem(s.db.QueryRowContext(ctx, itemSelect+` WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}

	return item, nil
}

func (s *ItemStore) List(ctx context.Context) ([]*domain.Item, error) {
	rows, err := s.db.QueryContext(ctx, itemSelect+` ORDER BY title ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			slog.Error("failed to close rows", "error", err)
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating items: %w", err)
	}

	return items, nil
}

// Update rewrites every whitelisted column of the item in a single statement.
// Updating a missing id is not an error; it affects no rows.
func (s *ItemStore) Update(ctx context.Context, id int64, v record.Values) error {
	stmt := record.ItemColumns.Update(id, v)
	if _, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
		return fmt.Errorf("failed to update item: %w", err)
	}
	return nil
}

func (s *ItemStore) Delete(ctx context.Context, id int64) error {
	stmt := record.ItemColumns.Delete(id)
	if _, err := s.db.ExecContext(ctx, stmt.SQL, stmt.Args...); err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*domain.Item, error) {
	item := &domain.Item{}
	err := row.Scan(&item.ID, &item.Title, &item.Description, &item.Price, &item.Type, &item.Size,
		&item.Gender, &item.Vendor, &item.Site, &item.Tags, &item.Modified)
	if err != nil {
		return nil, err
	}
	return item, nil
}
