package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvannote/ashvale/internal/game/gear"
	"github.com/mvannote/ashvale/internal/game/player"
)

// The repository is the aggregate's durable-write surface.
var _ player.Store = (*PlayerRepository)(nil)

// resourceColumns maps each resource to its column. Queries interpolate only
// values from this table, never caller input.
var resourceColumns = map[player.Resource]string{
	player.ResourceWheat:  "wheat",
	player.ResourceOat:    "oat",
	player.ResourceWood:   "wood",
	player.ResourceReeds:  "reeds",
	player.ResourcePine:   "pine",
	player.ResourceMoss:   "moss",
	player.ResourceIron:   "iron",
	player.ResourceCacao:  "cacao",
	player.ResourceFur:    "fur",
	player.ResourceBone:   "bone",
	player.ResourceSilver: "silver",
}

// armorColumns maps each armor slot to its equips column.
var armorColumns = map[gear.ArmorSlot]string{
	gear.SlotHelmet:    "helmet_id",
	gear.SlotBodypiece: "bodypiece_id",
	gear.SlotBoots:     "boots_id",
}

// exec runs an update that must touch exactly one player row.
func (r *PlayerRepository) exec(ctx context.Context, what, query string, args ...any) error {
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	if tag.RowsAffected() == 0 {
		return player.ErrPlayerNotFound
	}
	return nil
}

func (r *PlayerRepository) SetName(ctx context.Context, discordID int64, name string) error {
	return r.exec(ctx, "updating name",
		`UPDATE players SET name = $2 WHERE discord_id = $1`, discordID, name)
}

func (r *PlayerRepository) AddXP(ctx context.Context, discordID int64, delta int) error {
	return r.exec(ctx, "updating xp",
		`UPDATE players SET xp = xp + $2 WHERE discord_id = $1`, discordID, delta)
}

func (r *PlayerRepository) AddGold(ctx context.Context, discordID int64, delta int) error {
	return r.exec(ctx, "updating gold",
		`UPDATE players SET gold = gold + $2 WHERE discord_id = $1`, discordID, delta)
}

func (r *PlayerRepository) AddRubidics(ctx context.Context, discordID int64, delta int) error {
	return r.exec(ctx, "updating rubidics",
		`UPDATE players SET rubidics = rubidics + $2 WHERE discord_id = $1`, discordID, delta)
}

func (r *PlayerRepository) AddGravitas(ctx context.Context, discordID int64, delta int) error {
	return r.exec(ctx, "updating gravitas",
		`UPDATE players SET gravitas = gravitas + $2 WHERE discord_id = $1`, discordID, delta)
}

func (r *PlayerRepository) AddResource(ctx context.Context, discordID int64, resource player.Resource, delta int) error {
	column, ok := resourceColumns[resource]
	if !ok {
		return &player.InvalidResourceError{Name: string(resource)}
	}
	query := fmt.Sprintf(
		`UPDATE resources SET %s = %s + $2 WHERE discord_id = $1`, column, column)
	return r.exec(ctx, "updating resource "+column, query, discordID, delta)
}

func (r *PlayerRepository) SetWeapon(ctx context.Context, discordID, weaponID int64) error {
	return r.exec(ctx, "equipping weapon",
		`UPDATE equips SET weapon_id = $2 WHERE discord_id = $1`, discordID, weaponID)
}

func (r *PlayerRepository) ClearWeapon(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "unequipping weapon",
		`UPDATE equips SET weapon_id = NULL WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) SetArmor(ctx context.Context, discordID int64, slot gear.ArmorSlot, armorID int64) error {
	column, ok := armorColumns[slot]
	if !ok {
		return fmt.Errorf("armor slot %q: %w", slot, player.ErrInvalidSlot)
	}
	query := fmt.Sprintf(
		`UPDATE equips SET %s = $2 WHERE discord_id = $1`, column)
	return r.exec(ctx, "equipping armor", query, discordID, armorID)
}

func (r *PlayerRepository) ClearArmor(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "unequipping armor", `
		UPDATE equips SET helmet_id = NULL, bodypiece_id = NULL, boots_id = NULL
		WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) SetAccessory(ctx context.Context, discordID, accessoryID int64) error {
	return r.exec(ctx, "equipping accessory",
		`UPDATE equips SET accessory_id = $2 WHERE discord_id = $1`, discordID, accessoryID)
}

func (r *PlayerRepository) ClearAccessory(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "unequipping accessory",
		`UPDATE equips SET accessory_id = NULL WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) SetCompanion(ctx context.Context, discordID int64, slot int, companionID int64) error {
	column, err := companionColumn(slot)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE equips SET %s = $2 WHERE discord_id = $1`, column)
	return r.exec(ctx, "equipping companion", query, discordID, companionID)
}

func (r *PlayerRepository) ClearCompanion(ctx context.Context, discordID int64, slot int) error {
	column, err := companionColumn(slot)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(
		`UPDATE equips SET %s = NULL WHERE discord_id = $1`, column)
	return r.exec(ctx, "unequipping companion", query, discordID)
}

func companionColumn(slot int) (string, error) {
	switch slot {
	case 1:
		return "companion1_id", nil
	case 2:
		return "companion2_id", nil
	}
	return "", fmt.Errorf("companion slot %d: %w", slot, player.ErrInvalidSlot)
}

func (r *PlayerRepository) AddCompanionXP(ctx context.Context, companionID int64, delta int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE companions SET xp = xp + $2 WHERE id = $1`, companionID, delta)
	if err != nil {
		return fmt.Errorf("updating companion xp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("companion %d: %w", companionID, player.ErrNotOwner)
	}
	return nil
}

func (r *PlayerRepository) SetAssociation(ctx context.Context, discordID, associationID int64, rank player.Rank) error {
	return r.exec(ctx, "setting association", `
		UPDATE players SET assoc_id = $2, assoc_rank = $3
		WHERE discord_id = $1`, discordID, associationID, string(rank))
}

func (r *PlayerRepository) SetAssociationRank(ctx context.Context, discordID int64, rank player.Rank) error {
	return r.exec(ctx, "setting association rank",
		`UPDATE players SET assoc_rank = $2 WHERE discord_id = $1`, discordID, string(rank))
}

// LeaveAssociation clears the membership, vacates any champion slots the
// player holds, and cashes out their guild bank row, crediting the balance to
// their gold, all in one transaction.
//
// Postcondition: Returns the withdrawn balance, already credited durably.
func (r *PlayerRepository) LeaveAssociation(ctx context.Context, discordID int64) (int64, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("beginning leave transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		UPDATE association_champions SET discord_id = NULL
		WHERE discord_id = $1`, discordID,
	); err != nil {
		return 0, fmt.Errorf("vacating champion slots: %w", err)
	}

	var bankFunds int64
	err = tx.QueryRow(ctx, `
		DELETE FROM guild_bank WHERE discord_id = $1
		RETURNING balance`, discordID,
	).Scan(&bankFunds)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("withdrawing guild bank balance: %w", err)
	}

	tag, err := tx.Exec(ctx, `
		UPDATE players SET assoc_id = NULL, assoc_rank = NULL, gold = gold + $2
		WHERE discord_id = $1`, discordID, bankFunds,
	)
	if err != nil {
		return 0, fmt.Errorf("clearing association: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return 0, player.ErrPlayerNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing leave transaction: %w", err)
	}
	return bankFunds, nil
}

func (r *PlayerRepository) SetPityCounter(ctx context.Context, discordID int64, counter int) error {
	return r.exec(ctx, "setting pity counter",
		`UPDATE players SET pity_counter = $2 WHERE discord_id = $1`, discordID, counter)
}

func (r *PlayerRepository) SetOccupation(ctx context.Context, discordID int64, occupation string) error {
	return r.exec(ctx, "setting occupation",
		`UPDATE players SET occupation = $2 WHERE discord_id = $1`, discordID, occupation)
}

func (r *PlayerRepository) SetOrigin(ctx context.Context, discordID int64, origin string) error {
	return r.exec(ctx, "setting origin",
		`UPDATE players SET origin = $2 WHERE discord_id = $1`, discordID, origin)
}

func (r *PlayerRepository) SetLocation(ctx context.Context, discordID int64, location string) error {
	return r.exec(ctx, "setting location",
		`UPDATE players SET loc = $2 WHERE discord_id = $1`, discordID, location)
}

func (r *PlayerRepository) SetAdventure(ctx context.Context, discordID int64, adventure int64, destination string) error {
	// An empty destination clears the travel state.
	if destination == "" {
		return r.exec(ctx, "clearing adventure", `
			UPDATE players SET adventure = NULL, destination = NULL
			WHERE discord_id = $1`, discordID)
	}
	return r.exec(ctx, "setting adventure", `
		UPDATE players SET adventure = $2, destination = $3
		WHERE discord_id = $1`, discordID, adventure, destination)
}

func (r *PlayerRepository) LogPvE(ctx context.Context, discordID int64, victory bool) error {
	return r.exec(ctx, "logging pve result", `
		UPDATE players SET pve_fights = pve_fights + 1,
		                   pve_wins = pve_wins + CASE WHEN $2 THEN 1 ELSE 0 END
		WHERE discord_id = $1`, discordID, victory)
}

func (r *PlayerRepository) LogPvP(ctx context.Context, discordID int64, victory bool) error {
	return r.exec(ctx, "logging pvp result", `
		UPDATE players SET pvp_fights = pvp_fights + 1,
		                   pvp_wins = pvp_wins + CASE WHEN $2 THEN 1 ELSE 0 END
		WHERE discord_id = $1`, discordID, victory)
}

func (r *PlayerRepository) IncrementPvELimit(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "incrementing pve limit",
		`UPDATE players SET pve_limit = pve_limit + 1 WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) IncrementDailyStreak(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "incrementing daily streak",
		`UPDATE players SET daily_streak = daily_streak + 1 WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) ResetDailyStreak(ctx context.Context, discordID int64) error {
	return r.exec(ctx, "resetting daily streak",
		`UPDATE players SET daily_streak = 1 WHERE discord_id = $1`, discordID)
}

func (r *PlayerRepository) OwnsWeapon(ctx context.Context, discordID, weaponID int64) (bool, error) {
	return r.owns(ctx, "weapons", discordID, weaponID)
}

func (r *PlayerRepository) OwnsArmor(ctx context.Context, discordID, armorID int64) (bool, error) {
	return r.owns(ctx, "armor", discordID, armorID)
}

func (r *PlayerRepository) OwnsAccessory(ctx context.Context, discordID, accessoryID int64) (bool, error) {
	return r.owns(ctx, "accessories", discordID, accessoryID)
}

func (r *PlayerRepository) OwnsCompanion(ctx context.Context, discordID, companionID int64) (bool, error) {
	return r.owns(ctx, "companions", discordID, companionID)
}

// owns checks one item table for an (owner, id) pair. The table name is a
// call-site literal, never caller input.
func (r *PlayerRepository) owns(ctx context.Context, table string, discordID, itemID int64) (bool, error) {
	query := fmt.Sprintf(
		`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND owner_id = $2)`, table)
	var owned bool
	if err := r.db.QueryRow(ctx, query, itemID, discordID).Scan(&owned); err != nil {
		return false, fmt.Errorf("checking ownership in %s: %w", table, err)
	}
	return owned, nil
}

func (r *PlayerRepository) MemberCount(ctx context.Context, associationID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM players WHERE assoc_id = $1`, associationID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting association members: %w", err)
	}
	return count, nil
}
