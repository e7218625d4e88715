package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rubika-tools/aocomp/internal/profile"
)

// ErrProfileNotFound is returned when a profile lookup yields no results.
var ErrProfileNotFound = errors.New("profile not found")

// ErrProfileNameTaken is returned when creating a profile with a name that
// already exists.
var ErrProfileNameTaken = errors.New("profile name already taken")

// profileColumns is the scan order shared by every profile query.
const profileColumns = `id, name, breed, profession, level, side, crit, aggdef,
	abilities, weapon_skills, special_skills, initiatives, damage_modifiers,
	aao, wrangle, created_at, updated_at`

// ProfileRepository provides profile persistence operations. Skill maps are
// stored as JSONB so a profile round-trips without losing or renaming keys.
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a ProfileRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a new profile and returns it with ID and timestamps set.
//
// Precondition: p must pass Validate.
// Postcondition: Returns the created profile with a fresh unique ID, or
// ErrProfileNameTaken on a duplicate name.
func (r *ProfileRepository) Create(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	row := r.db.QueryRow(ctx, `
		INSERT INTO profiles
			(name, breed, profession, level, side, crit, aggdef,
			 abilities, weapon_skills, special_skills, initiatives, damage_modifiers,
			 aao, wrangle)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
		RETURNING `+profileColumns,
		p.Name, p.Breed, p.Profession, p.Level, p.Side, p.Crit, p.AggDef,
		orEmpty(p.Abilities), orEmpty(p.WeaponSkills), orEmpty(p.SpecialSkills),
		p.Initiatives, orEmpty(p.DamageModifiers),
		p.AAO, p.Wrangle,
	)
	out, err := scanProfile(row)
	if err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrProfileNameTaken
		}
		return nil, fmt.Errorf("inserting profile: %w", err)
	}
	return out, nil
}

// GetByName retrieves a profile by its unique name.
//
// Precondition: name must be non-empty.
// Postcondition: Returns the profile or ErrProfileNotFound.
func (r *ProfileRepository) GetByName(ctx context.Context, name string) (*profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+profileColumns+` FROM profiles WHERE name = $1`, name)
	out, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		return nil, fmt.Errorf("querying profile: %w", err)
	}
	return out, nil
}

// List returns all stored profiles ordered by name.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *ProfileRepository) List(ctx context.Context) ([]*profile.Profile, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+profileColumns+` FROM profiles ORDER BY name ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*profile.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile row: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update rewrites every mutable field of the profile identified by p.ID.
//
// Precondition: p.ID must be set; p must pass Validate.
// Postcondition: Returns the updated profile, ErrProfileNotFound if no row
// matched, or ErrProfileNameTaken if the new name collides.
func (r *ProfileRepository) Update(ctx context.Context, p *profile.Profile) (*profile.Profile, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE profiles SET
			name = $2, breed = $3, profession = $4, level = $5, side = $6,
			crit = $7, aggdef = $8,
			abilities = $9, weapon_skills = $10, special_skills = $11,
			initiatives = $12, damage_modifiers = $13,
			aao = $14, wrangle = $15, updated_at = NOW()
		WHERE id = $1
		RETURNING `+profileColumns,
		p.ID,
		p.Name, p.Breed, p.Profession, p.Level, p.Side, p.Crit, p.AggDef,
		orEmpty(p.Abilities), orEmpty(p.WeaponSkills), orEmpty(p.SpecialSkills),
		p.Initiatives, orEmpty(p.DamageModifiers),
		p.AAO, p.Wrangle,
	)
	out, err := scanProfile(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProfileNotFound
		}
		if isDuplicateKeyError(err) {
			return nil, ErrProfileNameTaken
		}
		return nil, fmt.Errorf("updating profile: %w", err)
	}
	return out, nil
}

// Delete removes the profile with the given ID. Favorites and farm entries
// referencing it are removed by the schema's cascade rules.
//
// Postcondition: Returns nil on success, ErrProfileNotFound if no row matched.
func (r *ProfileRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM profiles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting profile: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// scanProfile reads one profile row in profileColumns order.
func scanProfile(row pgx.Row) (*profile.Profile, error) {
	var p profile.Profile
	err := row.Scan(
		&p.ID, &p.Name, &p.Breed, &p.Profession, &p.Level, &p.Side,
		&p.Crit, &p.AggDef,
		&p.Abilities, &p.WeaponSkills, &p.SpecialSkills,
		&p.Initiatives, &p.DamageModifiers,
		&p.AAO, &p.Wrangle, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// orEmpty substitutes an empty map for nil so JSONB columns never receive
// SQL NULL.
func orEmpty(m map[string]int) map[string]int {
	if m == nil {
		return map[string]int{}
	}
	return m
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	// pgx wraps PostgreSQL errors; check for SQLSTATE 23505 (unique_violation)
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}
