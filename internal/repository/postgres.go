// Package repository provides database-backed persistence for the
// favorites store.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"

	"vidinsight/internal/model"
)

type postgresFavorites struct {
	db *sql.DB
}

// NewPostgresFavorites creates a favorites store backed by Postgres.
// It satisfies the same interface as the in-memory store, so handlers
// never know which one they hold.
func NewPostgresFavorites(db *sql.DB) *postgresFavorites {
	return &postgresFavorites{db: db}
}

func (r *postgresFavorites) Add(ctx context.Context, entry *model.FavoriteEntry) error {
	if entry.Owner == "" {
		return fmt.Errorf("favorite entry requires an owner")
	}
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}

	query := `
		INSERT INTO favorites (id, owner, url, summary, translation, target_language, title, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := r.db.ExecContext(ctx, query,
		entry.ID, entry.Owner, entry.URL, entry.Summary,
		entry.Translation, entry.TargetLanguage, entry.Title, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert favorite: %w", err)
	}
	return nil
}

func (r *postgresFavorites) List(ctx context.Context, owner string) ([]model.FavoriteEntry, error) {
	query := `
		SELECT id, owner, url, summary, translation, target_language, title, created_at
		FROM favorites
		WHERE owner = $1
		ORDER BY created_at, id
	`
	rows, err := r.db.QueryContext(ctx, query, owner)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer rows.Close()

	var entries []model.FavoriteEntry
	for rows.Next() {
		var e model.FavoriteEntry
		if err := rows.Scan(&e.ID, &e.Owner, &e.URL, &e.Summary,
			&e.Translation, &e.TargetLanguage, &e.Title, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	return entries, nil
}

// Remove deletes the entry at a positional index within the owner's
// insertion-ordered list.
func (r *postgresFavorites) Remove(ctx context.Context, owner string, index int) (*model.FavoriteEntry, error) {
	if index < 0 {
		return nil, fmt.Errorf("index %d out of range", index)
	}

	query := `
		SELECT id, owner, url, summary, translation, target_language, title, created_at
		FROM favorites
		WHERE owner = $1
		ORDER BY created_at, id
		LIMIT 1 OFFSET $2
	`
	var e model.FavoriteEntry
	err := r.db.QueryRowContext(ctx, query, owner, index).Scan(
		&e.ID, &e.Owner, &e.URL, &e.Summary,
		&e.Translation, &e.TargetLanguage, &e.Title, &e.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("index %d out of range", index)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to locate favorite: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE id = $1`, e.ID); err != nil {
		return nil, fmt.Errorf("failed to delete favorite: %w", err)
	}
	return &e, nil
}

func (r *postgresFavorites) Clear(ctx context.Context, owner string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM favorites WHERE owner = $1`, owner); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}
