package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvannote/ashvale/internal/game/player"
	"github.com/mvannote/ashvale/internal/game/progression"
	"github.com/mvannote/ashvale/internal/game/ruleset"
)

// ErrPlayerExists is returned when creating a character for a Discord ID that
// already has one.
var ErrPlayerExists = errors.New("player already exists")

// ErrNoOfficeholder is returned when an office has never been filled.
var ErrNoOfficeholder = errors.New("office has no holder")

// Starter weapon granted to every new character.
const (
	starterWeaponName   = "Wooden Spear"
	starterWeaponType   = "Spear"
	starterWeaponRarity = "Common"
	starterWeaponAttack = 20
	starterWeaponCrit   = 0
)

// expeditionPatron is the companion whose presence speeds up expeditions.
const expeditionPatron = "Radishes"

// PlayerRepository provides player persistence: aggregate loads, character
// creation, and the durable-write surface the aggregate mutates through.
type PlayerRepository struct {
	db    *pgxpool.Pool
	rules *ruleset.Rules
}

// NewPlayerRepository creates a PlayerRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool; rules must be loaded.
func NewPlayerRepository(db *pgxpool.Pool, rules *ruleset.Rules) *PlayerRepository {
	return &PlayerRepository{db: db, rules: rules}
}

// ByDiscordID loads and hydrates the full player aggregate.
//
// Postcondition: Returns a bound *player.Player with every gear reference
// resolved to a concrete value, or player.ErrPlayerNotFound.
func (r *PlayerRepository) ByDiscordID(ctx context.Context, discordID int64) (*player.Player, error) {
	var (
		p           player.Player
		adventure   *int64
		destination *string
		rank        *string

		weaponID, helmetID, bodypieceID, bootsID *int64
		accessoryID, companion1ID, companion2ID  *int64
		assocID                                  *int64
	)

	err := r.db.QueryRow(ctx, `
		SELECT p.num, p.discord_id, p.name, p.xp,
		       p.gold, p.rubidics, p.gravitas, p.pity_counter,
		       p.occupation, p.origin, p.loc, p.adventure, p.destination,
		       p.pvp_wins, p.pvp_fights, p.pve_wins, p.pve_fights, p.pve_limit,
		       p.daily_streak, p.assoc_id, p.assoc_rank,
		       e.weapon_id, e.helmet_id, e.bodypiece_id, e.boots_id,
		       e.accessory_id, e.companion1_id, e.companion2_id
		FROM players p
		JOIN equips e ON e.discord_id = p.discord_id
		WHERE p.discord_id = $1`,
		discordID,
	).Scan(
		&p.UniqueID, &p.DiscordID, &p.Name, &p.XP,
		&p.Gold, &p.Rubidics, &p.Gravitas, &p.PityCounter,
		&p.Occupation, &p.Origin, &p.Location, &adventure, &destination,
		&p.PvPWins, &p.PvPFights, &p.PvEWins, &p.PvEFights, &p.PvELimit,
		&p.DailyStreak, &assocID, &rank,
		&weaponID, &helmetID, &bodypieceID, &bootsID,
		&accessoryID, &companion1ID, &companion2ID,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, player.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("querying player %d: %w", discordID, err)
	}

	p.Level = progression.Level(p.XP)
	if adventure != nil {
		p.Adventure = *adventure
	}
	if destination != nil {
		p.Destination = *destination
	}
	if rank != nil {
		p.Rank = player.Rank(*rank)
	}

	if p.Resources, err = r.resources(ctx, discordID); err != nil {
		return nil, err
	}
	if err := r.hydrateGear(ctx, &p, deref(weaponID), deref(helmetID), deref(bodypieceID),
		deref(bootsID), deref(accessoryID), deref(companion1ID), deref(companion2ID),
		deref(assocID)); err != nil {
		return nil, err
	}

	// Expeditions run faster with the patron companion along: the recorded
	// start time shifts back by a tenth of the elapsed time.
	if p.OnExpedition() &&
		(p.Companion1.Name == expeditionPatron || p.Companion2.Name == expeditionPatron) {
		elapsed := time.Now().Unix() - p.Adventure
		if elapsed > 0 {
			p.Adventure -= elapsed / 10
		}
	}

	p.Bind(r, r.rules)
	return &p, nil
}

// ByNumber loads a player by internal sequence number.
//
// Postcondition: Returns the bound aggregate or player.ErrPlayerNotFound.
func (r *PlayerRepository) ByNumber(ctx context.Context, num int64) (*player.Player, error) {
	var discordID int64
	err := r.db.QueryRow(ctx,
		`SELECT discord_id FROM players WHERE num = $1`, num,
	).Scan(&discordID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, player.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("resolving player number %d: %w", num, err)
	}
	return r.ByDiscordID(ctx, discordID)
}

// CreateCharacter inserts the full row set for a new character: the player
// row, its empty equips, resources, and strategy rows, and the starter weapon,
// equipped.
//
// Precondition: name must satisfy the aggregate's name limit.
// Postcondition: Returns the hydrated aggregate, or ErrPlayerExists when the
// Discord ID already has a character.
func (r *PlayerRepository) CreateCharacter(ctx context.Context, discordID int64, name string) (*player.Player, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("beginning create transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx,
		`INSERT INTO players (discord_id, name) VALUES ($1, $2)`,
		discordID, name,
	); err != nil {
		if isDuplicateKeyError(err) {
			return nil, ErrPlayerExists
		}
		return nil, fmt.Errorf("inserting player: %w", err)
	}

	var weaponID int64
	if err := tx.QueryRow(ctx, `
		INSERT INTO weapons (owner_id, name, weapon_type, rarity, attack, crit)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		discordID, starterWeaponName, starterWeaponType, starterWeaponRarity,
		starterWeaponAttack, starterWeaponCrit,
	).Scan(&weaponID); err != nil {
		return nil, fmt.Errorf("inserting starter weapon: %w", err)
	}

	if _, err := tx.Exec(ctx,
		`INSERT INTO equips (discord_id, weapon_id) VALUES ($1, $2)`,
		discordID, weaponID,
	); err != nil {
		return nil, fmt.Errorf("inserting equips row: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO resources (discord_id) VALUES ($1)`, discordID,
	); err != nil {
		return nil, fmt.Errorf("inserting resources row: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`INSERT INTO strategy (discord_id) VALUES ($1)`, discordID,
	); err != nil {
		return nil, fmt.Errorf("inserting strategy row: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("committing character creation: %w", err)
	}

	return r.ByDiscordID(ctx, discordID)
}

// Count returns the total number of characters.
func (r *PlayerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM players`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting players: %w", err)
	}
	return count, nil
}

// Officeholder returns the Discord ID and character name of the most recently
// appointed holder of the given office, such as "Mayor" or "Comptroller".
//
// Postcondition: Returns ErrNoOfficeholder when the office was never filled.
func (r *PlayerRepository) Officeholder(ctx context.Context, office string) (int64, string, error) {
	var (
		discordID int64
		name      string
	)
	err := r.db.QueryRow(ctx, `
		SELECT o.discord_id, p.name
		FROM officeholders o
		JOIN players p ON p.discord_id = o.discord_id
		WHERE o.office = $1
		ORDER BY o.appointed_at DESC, o.id DESC
		LIMIT 1`,
		office,
	).Scan(&discordID, &name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, "", ErrNoOfficeholder
		}
		return 0, "", fmt.Errorf("querying officeholder for %q: %w", office, err)
	}
	return discordID, name, nil
}

// AppointOfficeholder records a new holder for the given office.
//
// Precondition: discordID must reference an existing player.
func (r *PlayerRepository) AppointOfficeholder(ctx context.Context, office string, discordID int64) error {
	if _, err := r.db.Exec(ctx,
		`INSERT INTO officeholders (office, discord_id) VALUES ($1, $2)`,
		office, discordID,
	); err != nil {
		return fmt.Errorf("appointing officeholder for %q: %w", office, err)
	}
	return nil
}

func (r *PlayerRepository) resources(ctx context.Context, discordID int64) (map[player.Resource]int, error) {
	var wheat, oat, wood, reeds, pine, moss, iron, cacao, fur, bone, silver int
	err := r.db.QueryRow(ctx, `
		SELECT wheat, oat, wood, reeds, pine, moss, iron, cacao, fur, bone, silver
		FROM resources WHERE discord_id = $1`,
		discordID,
	).Scan(&wheat, &oat, &wood, &reeds, &pine, &moss, &iron, &cacao, &fur, &bone, &silver)
	if err != nil {
		return nil, fmt.Errorf("querying resources for %d: %w", discordID, err)
	}
	return map[player.Resource]int{
		player.ResourceWheat:  wheat,
		player.ResourceOat:    oat,
		player.ResourceWood:   wood,
		player.ResourceReeds:  reeds,
		player.ResourcePine:   pine,
		player.ResourceMoss:   moss,
		player.ResourceIron:   iron,
		player.ResourceCacao:  cacao,
		player.ResourceFur:    fur,
		player.ResourceBone:   bone,
		player.ResourceSilver: silver,
	}, nil
}

func (r *PlayerRepository) hydrateGear(ctx context.Context, p *player.Player,
	weaponID, helmetID, bodypieceID, bootsID, accessoryID,
	companion1ID, companion2ID, assocID int64,
) error {
	var err error
	if p.Weapon, err = r.WeaponByID(ctx, weaponID); err != nil {
		return err
	}
	if p.Helmet, err = r.ArmorByID(ctx, helmetID); err != nil {
		return err
	}
	if p.Bodypiece, err = r.ArmorByID(ctx, bodypieceID); err != nil {
		return err
	}
	if p.Boots, err = r.ArmorByID(ctx, bootsID); err != nil {
		return err
	}
	if p.Accessory, err = r.AccessoryByID(ctx, accessoryID); err != nil {
		return err
	}
	if p.Companion1, err = r.CompanionByID(ctx, companion1ID); err != nil {
		return err
	}
	if p.Companion2, err = r.CompanionByID(ctx, companion2ID); err != nil {
		return err
	}
	if p.Association, err = r.AssociationByID(ctx, assocID); err != nil {
		return err
	}
	return nil
}

func deref(id *int64) int64 {
	if id == nil {
		return 0
	}
	return *id
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
