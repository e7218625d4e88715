package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrFarmEntryNotFound is returned when a farm entry lookup yields no results.
var ErrFarmEntryNotFound = errors.New("farm entry not found")

// FarmEntry is one pocket boss a profile still wants to hunt, optionally
// narrowed to a single drop. Done entries stay on the list until removed.
type FarmEntry struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	BossName  string
	Playfield string
	ItemName  string
	Done      bool
	CreatedAt time.Time
}

// FarmListRepository provides farm list persistence operations.
type FarmListRepository struct {
	db *pgxpool.Pool
}

// NewFarmListRepository creates a FarmListRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewFarmListRepository(db *pgxpool.Pool) *FarmListRepository {
	return &FarmListRepository{db: db}
}

// Add inserts a farm entry and returns it with ID and CreatedAt set.
//
// Precondition: e.ProfileID must reference an existing profile; e.BossName
// must be non-empty.
// Postcondition: Returns the created entry with Done false.
func (r *FarmListRepository) Add(ctx context.Context, e *FarmEntry) (*FarmEntry, error) {
	var out FarmEntry
	err := r.db.QueryRow(ctx, `
		INSERT INTO farm_entries (profile_id, boss_name, playfield, item_name)
		VALUES ($1,$2,$3,$4)
		RETURNING id, profile_id, boss_name, playfield, item_name, done, created_at`,
		e.ProfileID, e.BossName, e.Playfield, e.ItemName,
	).Scan(&out.ID, &out.ProfileID, &out.BossName, &out.Playfield, &out.ItemName, &out.Done, &out.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("inserting farm entry: %w", err)
	}
	return &out, nil
}

// ListByProfile returns all farm entries for the given profile, open entries
// before done ones, oldest first within each group.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *FarmListRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*FarmEntry, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, boss_name, playfield, item_name, done, created_at
		FROM farm_entries WHERE profile_id = $1 ORDER BY done ASC, created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing farm entries: %w", err)
	}
	defer rows.Close()

	entries := make([]*FarmEntry, 0)
	for rows.Next() {
		var e FarmEntry
		if err := rows.Scan(&e.ID, &e.ProfileID, &e.BossName, &e.Playfield, &e.ItemName, &e.Done, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning farm entry row: %w", err)
		}
		entries = append(entries, &e)
	}
	return entries, rows.Err()
}

// SetDone flips the done flag on the given entry.
//
// Postcondition: Returns nil on success, ErrFarmEntryNotFound if no row matched.
func (r *FarmListRepository) SetDone(ctx context.Context, id uuid.UUID, done bool) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE farm_entries SET done = $2 WHERE id = $1`,
		id, done,
	)
	if err != nil {
		return fmt.Errorf("updating farm entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFarmEntryNotFound
	}
	return nil
}

// Remove deletes the given farm entry.
//
// Postcondition: Returns nil on success, ErrFarmEntryNotFound if no row matched.
func (r *FarmListRepository) Remove(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM farm_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting farm entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFarmEntryNotFound
	}
	return nil
}
