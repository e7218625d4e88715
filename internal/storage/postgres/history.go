package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SearchEntry is one recorded item database query.
type SearchEntry struct {
	ID        int64
	Kind      string
	Query     string
	Results   int
	CreatedAt time.Time
}

// SearchHistoryRepository records item database queries so past searches can
// be replayed.
type SearchHistoryRepository struct {
	db *pgxpool.Pool
}

// NewSearchHistoryRepository creates a SearchHistoryRepository backed by the
// given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewSearchHistoryRepository(db *pgxpool.Pool) *SearchHistoryRepository {
	return &SearchHistoryRepository{db: db}
}

// Record stores one executed query and its result count.
//
// Precondition: kind must be non-empty.
func (r *SearchHistoryRepository) Record(ctx context.Context, kind, query string, results int) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO search_history (kind, query, results) VALUES ($1,$2,$3)`,
		kind, query, results,
	)
	if err != nil {
		return fmt.Errorf("inserting search entry: %w", err)
	}
	return nil
}

// Recent returns the newest entries first, at most limit of them.
//
// Precondition: limit must be > 0.
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *SearchHistoryRepository) Recent(ctx context.Context, limit int) ([]*SearchEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, kind, query, results, created_at
		FROM search_history ORDER BY created_at DESC, id DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("listing search history: %w", err)
	}
	defer rows.Close()

	entries := make([]*SearchEntry, 0)
	for rows.Next() {
		var e SearchEntry
		if err := rows.Scan(&e.ID, &e.Kind, &e.Query, &e.Results, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning search entry row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}
