package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrFavoriteNotFound is returned when a favorite lookup yields no results.
var ErrFavoriteNotFound = errors.New("favorite not found")

// ErrFavoriteExists is returned when adding an item a profile already favors.
var ErrFavoriteExists = errors.New("favorite already exists")

// Favorite marks one item as a keeper for one profile. The item fields are
// denormalized from the item database so the list renders without a lookup.
type Favorite struct {
	ID        uuid.UUID
	ProfileID uuid.UUID
	ItemAOID  int
	ItemName  string
	ItemQL    int
	CreatedAt time.Time
}

// FavoriteRepository provides favorite persistence operations.
type FavoriteRepository struct {
	db *pgxpool.Pool
}

// NewFavoriteRepository creates a FavoriteRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewFavoriteRepository(db *pgxpool.Pool) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Add inserts a favorite and returns it with ID and CreatedAt set.
//
// Precondition: f.ProfileID must reference an existing profile.
// Postcondition: Returns the created favorite, or ErrFavoriteExists if the
// profile already favors the item.
func (r *FavoriteRepository) Add(ctx context.Context, f *Favorite) (*Favorite, error) {
	var out Favorite
	err := r.db.QueryRow(ctx, `
		INSERT INTO favorites (profile_id, item_aoid, item_name, item_ql)
		VALUES ($1,$2,$3,$4)
		RETURNING id, profile_id, item_aoid, item_name, item_ql, created_at`,
		f.ProfileID, f.ItemAOID, f.ItemName, f.ItemQL,
	).Scan(&out.ID, &out.ProfileID, &out.ItemAOID, &out.ItemName, &out.ItemQL, &out.CreatedAt)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrFavoriteExists
		}
		return nil, fmt.Errorf("inserting favorite: %w", err)
	}
	return &out, nil
}

// ListByProfile returns all favorites for the given profile, oldest first.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *FavoriteRepository) ListByProfile(ctx context.Context, profileID uuid.UUID) ([]*Favorite, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, profile_id, item_aoid, item_name, item_ql, created_at
		FROM favorites WHERE profile_id = $1 ORDER BY created_at ASC`,
		profileID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing favorites: %w", err)
	}
	defer rows.Close()

	favorites := make([]*Favorite, 0)
	for rows.Next() {
		var f Favorite
		if err := rows.Scan(&f.ID, &f.ProfileID, &f.ItemAOID, &f.ItemName, &f.ItemQL, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning favorite row: %w", err)
		}
		favorites = append(favorites, &f)
	}
	return favorites, rows.Err()
}

// Remove deletes the favorite for the given profile and item.
//
// Postcondition: Returns nil on success, ErrFavoriteNotFound if no row matched.
func (r *FavoriteRepository) Remove(ctx context.Context, profileID uuid.UUID, itemAOID int) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM favorites WHERE profile_id = $1 AND item_aoid = $2`,
		profileID, itemAOID,
	)
	if err != nil {
		return fmt.Errorf("deleting favorite: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrFavoriteNotFound
	}
	return nil
}
