package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/mvannote/ashvale/internal/game/gear"
)

// Value-object providers. Each resolves one row into its gear value, returning
// the canonical empty variant for a zero ID or a missing row so hydration and
// stat folding never handle nil.

// WeaponByID resolves a weapon row.
//
// Postcondition: Returns the empty weapon for id 0 or an unknown id.
func (r *PlayerRepository) WeaponByID(ctx context.Context, weaponID int64) (gear.Weapon, error) {
	if weaponID == 0 {
		return gear.EmptyWeapon(), nil
	}
	var w gear.Weapon
	err := r.db.QueryRow(ctx, `
		SELECT id, name, weapon_type, rarity, attack, crit
		FROM weapons WHERE id = $1`,
		weaponID,
	).Scan(&w.ID, &w.Name, &w.Type, &w.Rarity, &w.Attack, &w.Crit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gear.EmptyWeapon(), nil
		}
		return gear.Weapon{}, fmt.Errorf("querying weapon %d: %w", weaponID, err)
	}
	return w, nil
}

// ArmorByID resolves an armor row.
//
// Postcondition: Returns the empty armor piece for id 0 or an unknown id.
func (r *PlayerRepository) ArmorByID(ctx context.Context, armorID int64) (gear.Armor, error) {
	if armorID == 0 {
		return gear.EmptyArmor(), nil
	}
	var a gear.Armor
	err := r.db.QueryRow(ctx, `
		SELECT id, name, slot, material, defense
		FROM armor WHERE id = $1`,
		armorID,
	).Scan(&a.ID, &a.Name, &a.Slot, &a.Material, &a.Defense)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gear.EmptyArmor(), nil
		}
		return gear.Armor{}, fmt.Errorf("querying armor %d: %w", armorID, err)
	}
	return a, nil
}

// AccessoryByID resolves an accessory row.
//
// Postcondition: Returns the empty accessory for id 0 or an unknown id.
func (r *PlayerRepository) AccessoryByID(ctx context.Context, accessoryID int64) (gear.Accessory, error) {
	if accessoryID == 0 {
		return gear.EmptyAccessory(), nil
	}
	var a gear.Accessory
	err := r.db.QueryRow(ctx, `
		SELECT id, name, prefix, material
		FROM accessories WHERE id = $1`,
		accessoryID,
	).Scan(&a.ID, &a.Name, &a.Prefix, &a.Material)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gear.EmptyAccessory(), nil
		}
		return gear.Accessory{}, fmt.Errorf("querying accessory %d: %w", accessoryID, err)
	}
	return a, nil
}

// CompanionByID resolves a companion row.
//
// Postcondition: Returns the empty companion for id 0 or an unknown id.
func (r *PlayerRepository) CompanionByID(ctx context.Context, companionID int64) (gear.Companion, error) {
	if companionID == 0 {
		return gear.EmptyCompanion(), nil
	}
	var c gear.Companion
	err := r.db.QueryRow(ctx, `
		SELECT id, name, stars, level, xp, base_attack, base_crit, base_hp
		FROM companions WHERE id = $1`,
		companionID,
	).Scan(&c.ID, &c.Name, &c.Stars, &c.Level, &c.XP, &c.BaseAttack, &c.BaseCrit, &c.BaseHP)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gear.EmptyCompanion(), nil
		}
		return gear.Companion{}, fmt.Errorf("querying companion %d: %w", companionID, err)
	}
	return c, nil
}

// AssociationByID resolves an association row.
//
// Postcondition: Returns the empty association for id 0 or an unknown id.
func (r *PlayerRepository) AssociationByID(ctx context.Context, associationID int64) (gear.Association, error) {
	if associationID == 0 {
		return gear.EmptyAssociation(), nil
	}
	var a gear.Association
	err := r.db.QueryRow(ctx, `
		SELECT id, name, assoc_type, level, capacity
		FROM associations WHERE id = $1`,
		associationID,
	).Scan(&a.ID, &a.Name, &a.Type, &a.Level, &a.Capacity)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return gear.EmptyAssociation(), nil
		}
		return gear.Association{}, fmt.Errorf("querying association %d: %w", associationID, err)
	}
	return a, nil
}
