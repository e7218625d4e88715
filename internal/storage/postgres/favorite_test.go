package postgres_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/rubika-tools/aocomp/internal/storage/postgres"
	"github.com/rubika-tools/aocomp/internal/testutil"
)

func setupFavoriteRepos(t *testing.T) (*postgres.FavoriteRepository, *postgres.ProfileRepository, uuid.UUID) {
	t.Helper()
	pool := testutil.NewPool(t)
	profileRepo := postgres.NewProfileRepository(pool)
	p, err := profileRepo.Create(context.Background(), makeTestProfile(uniqueName("owner")))
	require.NoError(t, err)
	return postgres.NewFavoriteRepository(pool), profileRepo, p.ID
}

func makeTestFavorite(profileID uuid.UUID, aoid int, name string, ql int) *postgres.Favorite {
	return &postgres.Favorite{
		ProfileID: profileID,
		ItemAOID:  aoid,
		ItemName:  name,
		ItemQL:    ql,
	}
}

func TestFavoriteRepository_Add(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	ctx := context.Background()

	created, err := repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, profileID, created.ProfileID)
	assert.Equal(t, 154599, created.ItemAOID)
	assert.Equal(t, "Hellspinner Shock Cannon", created.ItemName)
	assert.Equal(t, 200, created.ItemQL)
	assert.False(t, created.CreatedAt.IsZero())
}

func TestFavoriteRepository_Add_Duplicate(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.NoError(t, err)

	_, err = repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrFavoriteExists)
}

func TestFavoriteRepository_ListByProfile(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.NoError(t, err)
	_, err = repo.Add(ctx, makeTestFavorite(profileID, 204107, "Customized IMI Desert Reet", 180))
	require.NoError(t, err)

	favorites, err := repo.ListByProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Len(t, favorites, 2)
}

func TestFavoriteRepository_ListByProfile_Empty(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	favorites, err := repo.ListByProfile(context.Background(), profileID)
	require.NoError(t, err)
	assert.NotNil(t, favorites)
	assert.Empty(t, favorites)
}

func TestFavoriteRepository_Remove(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.NoError(t, err)

	require.NoError(t, repo.Remove(ctx, profileID, 154599))

	favorites, err := repo.ListByProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

func TestFavoriteRepository_Remove_NotFound(t *testing.T) {
	repo, _, profileID := setupFavoriteRepos(t)
	err := repo.Remove(context.Background(), profileID, 999999)
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrFavoriteNotFound)
}

func TestFavoriteRepository_CascadeOnProfileDelete(t *testing.T) {
	repo, profileRepo, profileID := setupFavoriteRepos(t)
	ctx := context.Background()

	_, err := repo.Add(ctx, makeTestFavorite(profileID, 154599, "Hellspinner Shock Cannon", 200))
	require.NoError(t, err)

	require.NoError(t, profileRepo.Delete(ctx, profileID))

	favorites, err := repo.ListByProfile(ctx, profileID)
	require.NoError(t, err)
	assert.Empty(t, favorites)
}

// TestFavoriteRepository_Property_AddCountMatchesList verifies that
// ListByProfile returns exactly as many favorites as were added.
func TestFavoriteRepository_Property_AddCountMatchesList(t *testing.T) {
	pool := testutil.NewPool(t)
	favRepo := postgres.NewFavoriteRepository(pool)
	profileRepo := postgres.NewProfileRepository(pool)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		p, err := profileRepo.Create(ctx, makeTestProfile(uniqueName("owner")))
		require.NoError(t, err)

		n := rapid.IntRange(1, 5).Draw(rt, "n")
		for i := 0; i < n; i++ {
			_, err := favRepo.Add(ctx, makeTestFavorite(p.ID, 100000+i, "Weapon", 100+i))
			require.NoError(t, err)
		}

		favorites, err := favRepo.ListByProfile(ctx, p.ID)
		require.NoError(t, err)
		assert.Len(t, favorites, n)
	})
}
