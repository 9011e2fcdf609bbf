package postgres_test

import (
	"context"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvannote/ashvale/internal/game/player"
	"github.com/mvannote/ashvale/internal/game/ruleset"
	"github.com/mvannote/ashvale/internal/storage/postgres"
	"github.com/mvannote/ashvale/internal/testutil"
)

var nextDiscordID atomic.Int64

func init() {
	nextDiscordID.Store(time.Now().UnixNano())
}

func uniqueDiscordID() int64 {
	return nextDiscordID.Add(1)
}

func loadTestRules(t *testing.T) *ruleset.Rules {
	t.Helper()
	rules, err := ruleset.LoadRules(filepath.Join("..", "..", "..", "content", "rules"))
	require.NoError(t, err)
	return rules
}

func setupRepo(t *testing.T) (*postgres.PlayerRepository, *pgxpool.Pool) {
	t.Helper()
	pool := testutil.NewPool(t)
	return postgres.NewPlayerRepository(pool, loadTestRules(t)), pool
}

func TestCreateCharacter(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	id := uniqueDiscordID()

	p, err := repo.CreateCharacter(ctx, id, "Maren")
	require.NoError(t, err)

	assert.Equal(t, id, p.DiscordID)
	assert.Greater(t, p.UniqueID, int64(0))
	assert.Equal(t, "Maren", p.Name)
	assert.Equal(t, 0, p.XP)
	assert.Equal(t, 0, p.Level)
	assert.Equal(t, 500, p.Gold)
	assert.Equal(t, 10, p.Rubidics)
	assert.Equal(t, "Traveler", p.Occupation)
	assert.Equal(t, "Drifter", p.Origin)
	assert.Equal(t, "Aramithea", p.Location)

	assert.Equal(t, "Wooden Spear", p.Weapon.Name)
	assert.Equal(t, "Spear", p.Weapon.Type)
	assert.Equal(t, "Common", p.Weapon.Rarity)
	assert.Equal(t, 20, p.Weapon.Attack)
	assert.True(t, p.Helmet.IsEmpty())
	assert.True(t, p.Accessory.IsEmpty())
	assert.True(t, p.Companion1.IsEmpty())
	assert.True(t, p.Association.IsEmpty())
	assert.Empty(t, p.Rank)

	for _, res := range player.AllResources() {
		assert.Zero(t, p.Resources[res], "resource %s", res)
	}

	// Level 0, starter spear, no bonuses anywhere.
	assert.Equal(t, 30, p.Attack())
	assert.Equal(t, 5, p.Crit())
	assert.Equal(t, 500, p.HP())
	assert.Equal(t, 0, p.Defense())
}

func TestCreateCharacter_Duplicate(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()
	id := uniqueDiscordID()

	_, err := repo.CreateCharacter(ctx, id, "Maren")
	require.NoError(t, err)

	_, err = repo.CreateCharacter(ctx, id, "Maren Again")
	assert.ErrorIs(t, err, postgres.ErrPlayerExists)
}

func TestByDiscordID_NotFound(t *testing.T) {
	repo, _ := setupRepo(t)

	_, err := repo.ByDiscordID(context.Background(), uniqueDiscordID())
	assert.ErrorIs(t, err, player.ErrPlayerNotFound)
}

func TestByNumber(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	created, err := repo.CreateCharacter(ctx, uniqueDiscordID(), "Teshan")
	require.NoError(t, err)

	loaded, err := repo.ByNumber(ctx, created.UniqueID)
	require.NoError(t, err)
	assert.Equal(t, created.DiscordID, loaded.DiscordID)
	assert.Equal(t, "Teshan", loaded.Name)

	_, err = repo.ByNumber(ctx, created.UniqueID+100000)
	assert.ErrorIs(t, err, player.ErrPlayerNotFound)
}

func TestCount(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	before, err := repo.Count(ctx)
	require.NoError(t, err)

	_, err = repo.CreateCharacter(ctx, uniqueDiscordID(), "Maren")
	require.NoError(t, err)
	_, err = repo.CreateCharacter(ctx, uniqueDiscordID(), "Teshan")
	require.NoError(t, err)

	after, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, after)
}

func TestOfficeholder(t *testing.T) {
	repo, _ := setupRepo(t)
	ctx := context.Background()

	_, _, err := repo.Officeholder(ctx, "Mayor")
	assert.ErrorIs(t, err, postgres.ErrNoOfficeholder)

	first, err := repo.CreateCharacter(ctx, uniqueDiscordID(), "Maren")
	require.NoError(t, err)
	second, err := repo.CreateCharacter(ctx, uniqueDiscordID(), "Teshan")
	require.NoError(t, err)

	require.NoError(t, repo.AppointOfficeholder(ctx, "Mayor", first.DiscordID))
	require.NoError(t, repo.AppointOfficeholder(ctx, "Mayor", second.DiscordID))
	require.NoError(t, repo.AppointOfficeholder(ctx, "Comptroller", first.DiscordID))

	id, name, err := repo.Officeholder(ctx, "Mayor")
	require.NoError(t, err)
	assert.Equal(t, second.DiscordID, id)
	assert.Equal(t, "Teshan", name)

	id, name, err = repo.Officeholder(ctx, "Comptroller")
	require.NoError(t, err)
	assert.Equal(t, first.DiscordID, id)
	assert.Equal(t, "Maren", name)
}

func TestExpeditionPatronSpeedsUpStart(t *testing.T) {
	repo, pool := setupRepo(t)
	ctx := context.Background()

	p, err := repo.CreateCharacter(ctx, uniqueDiscordID(), "Maren")
	require.NoError(t, err)

	var companionID int64
	require.NoError(t, pool.QueryRow(ctx, `
		INSERT INTO companions (owner_id, name, stars, level, base_attack)
		VALUES ($1, 'Radishes', 2, 1, 5)
		RETURNING id`, p.DiscordID,
	).Scan(&companionID))
	require.NoError(t, p.EquipCompanion(ctx, companionID, 1))

	start := time.Now().Unix() - 1000
	require.NoError(t, p.SetAdventure(ctx, start, player.DestinationExpedition))

	loaded, err := repo.ByDiscordID(ctx, p.DiscordID)
	require.NoError(t, err)
	assert.True(t, loaded.OnExpedition())
	// A tenth of the ~1000 elapsed seconds is credited back.
	assert.InDelta(t, start-100, loaded.Adventure, 5)

	// Without the patron the start time loads unchanged.
	require.NoError(t, p.UnequipCompanion(ctx, 1))
	loaded, err = repo.ByDiscordID(ctx, p.DiscordID)
	require.NoError(t, err)
	assert.Equal(t, start, loaded.Adventure)
}
