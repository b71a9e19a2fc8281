package shoppinglist

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"recipe-organizer/internal/ingredient"
)

// Repository persists shopping list items to SQLite, one row per
// (user, normalized label) with the entries stored as a JSON blob.
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new Repository.
func NewRepository(d *sql.DB) *Repository {
	return &Repository{db: d}
}

// AppendEntries merges new items into a user's list. Items whose
// normalized label already exists gain the new entries; new labels are
// appended to the end of the list.
func (r *Repository) AppendEntries(ctx context.Context, userID string, items []Item) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var maxPos sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT MAX(position) FROM shopping_list_items WHERE user_id = ?`, userID).Scan(&maxPos)
	if err != nil {
		return fmt.Errorf("failed to read list positions: %w", err)
	}
	nextPos := int(maxPos.Int64) + 1

	for _, item := range items {
		var existingJSON string
		err := tx.QueryRowContext(ctx,
			`SELECT entries FROM shopping_list_items WHERE user_id = ? AND normalized_label = ?`,
			userID, item.NormalizedLabel).Scan(&existingJSON)

		switch {
		case err == sql.ErrNoRows:
			entriesJSON, err := json.Marshal(item.Entries)
			if err != nil {
				return fmt.Errorf("failed to marshal entries: %w", err)
			}
			_, err = tx.ExecContext(ctx, `
				INSERT INTO shopping_list_items (user_id, normalized_label, label, entries, position)
				VALUES (?, ?, ?, ?, ?)`,
				userID, item.NormalizedLabel, item.Label, string(entriesJSON), nextPos)
			if err != nil {
				return fmt.Errorf("failed to insert item: %w", err)
			}
			nextPos++

		case err != nil:
			return fmt.Errorf("failed to look up item: %w", err)

		default:
			var entries []ingredient.QuantityEntry
			if err := json.Unmarshal([]byte(existingJSON), &entries); err != nil {
				return fmt.Errorf("failed to unmarshal entries: %w", err)
			}
			entries = append(entries, item.Entries...)
			entriesJSON, err := json.Marshal(entries)
			if err != nil {
				return fmt.Errorf("failed to marshal entries: %w", err)
			}
			// Adding to an item also brings it back if it was crossed off.
			_, err = tx.ExecContext(ctx, `
				UPDATE shopping_list_items SET entries = ?, crossed_off_at = NULL
				WHERE user_id = ? AND normalized_label = ?`,
				string(entriesJSON), userID, item.NormalizedLabel)
			if err != nil {
				return fmt.Errorf("failed to update item: %w", err)
			}
		}
	}

	return tx.Commit()
}

// Get retrieves one item by normalized label, or nil if absent.
func (r *Repository) Get(ctx context.Context, userID, normalizedLabel string) (*Item, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT label, normalized_label, entries, position, crossed_off_at
		FROM shopping_list_items WHERE user_id = ? AND normalized_label = ?`,
		userID, normalizedLabel)

	item, err := scanItem(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get item: %w", err)
	}
	return item, nil
}

// List retrieves a user's items in list order.
func (r *Repository) List(ctx context.Context, userID string) ([]Item, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT label, normalized_label, entries, position, crossed_off_at
		FROM shopping_list_items WHERE user_id = ? ORDER BY position`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}
	return items, nil
}

// Delete removes one item from a user's list.
func (r *Repository) Delete(ctx context.Context, userID, normalizedLabel string) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE user_id = ? AND normalized_label = ?`,
		userID, normalizedLabel)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	return nil
}

// Clear removes all of a user's items.
func (r *Repository) Clear(ctx context.Context, userID string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM shopping_list_items WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("failed to clear list: %w", err)
	}
	return nil
}

// CrossOff marks an item as done.
func (r *Repository) CrossOff(ctx context.Context, userID, normalizedLabel string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shopping_list_items SET crossed_off_at = ?
		WHERE user_id = ? AND normalized_label = ?`,
		time.Now().UTC(), userID, normalizedLabel)
	if err != nil {
		return fmt.Errorf("failed to cross off item: %w", err)
	}
	return nil
}

// Uncross clears an item's crossed-off mark.
func (r *Repository) Uncross(ctx context.Context, userID, normalizedLabel string) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE shopping_list_items SET crossed_off_at = NULL
		WHERE user_id = ? AND normalized_label = ?`,
		userID, normalizedLabel)
	if err != nil {
		return fmt.Errorf("failed to uncross item: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanItem(row rowScanner) (*Item, error) {
	var item Item
	var entriesJSON string
	var crossedOff sql.NullTime
	if err := row.Scan(&item.Label, &item.NormalizedLabel, &entriesJSON,
		&item.Position, &crossedOff); err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(entriesJSON), &item.Entries); err != nil {
		return nil, fmt.Errorf("failed to unmarshal entries: %w", err)
	}
	if crossedOff.Valid {
		t := crossedOff.Time
		item.CrossedOffAt = &t
	}
	return &item, nil
}
