package player

import (
	"context"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mvannote/ashvale/internal/game/gear"
	"github.com/mvannote/ashvale/internal/game/progression"
)

// LevelUp describes the rewards granted when a xp gain crosses a level
// threshold. The caller renders it; the core only reports it.
type LevelUp struct {
	ID       string
	Level    int
	Gold     int
	Rubidics int
}

// SetName renames the character.
//
// Postcondition: Returns an *InvalidInputError if name exceeds MaxNameLength runes.
func (p *Player) SetName(ctx context.Context, name string) error {
	if utf8.RuneCountInString(name) > MaxNameLength {
		return &InvalidInputError{
			Field:  "name",
			Reason: fmt.Sprintf("must be at most %d characters", MaxNameLength),
			Limit:  MaxNameLength,
		}
	}
	if err := p.store.SetName(ctx, p.DiscordID, name); err != nil {
		return fmt.Errorf("renaming player: %w", err)
	}
	p.Name = name
	return nil
}

// GainXP adds xp, re-derives the level, and on a level-up grants the gold and
// rubidics rewards through the currency operations. Ten percent of the raw
// gain is forwarded to each equipped companion.
//
// Precondition: xp >= 0.
// Postcondition: Returns a non-nil *LevelUp iff the level increased.
func (p *Player) GainXP(ctx context.Context, xp int) (*LevelUp, error) {
	oldLevel := p.Level
	if err := p.store.AddXP(ctx, p.DiscordID, xp); err != nil {
		return nil, fmt.Errorf("adding xp: %w", err)
	}
	p.XP += xp
	p.Level = progression.Level(p.XP)

	var event *LevelUp
	if p.Level > oldLevel {
		gold := p.Level * 500
		rubidics := p.Level/30 + 1
		if err := p.GiveGold(ctx, gold); err != nil {
			return nil, fmt.Errorf("granting level-up gold: %w", err)
		}
		if err := p.GiveRubidics(ctx, rubidics); err != nil {
			return nil, fmt.Errorf("granting level-up rubidics: %w", err)
		}
		event = &LevelUp{
			ID:       uuid.NewString(),
			Level:    p.Level,
			Gold:     gold,
			Rubidics: rubidics,
		}
	}

	share := xp / 10
	if !p.Companion1.IsEmpty() {
		if err := p.store.AddCompanionXP(ctx, p.Companion1.ID, share); err != nil {
			return nil, fmt.Errorf("forwarding xp to companion 1: %w", err)
		}
		p.Companion1.XP += share
	}
	if !p.Companion2.IsEmpty() {
		if err := p.store.AddCompanionXP(ctx, p.Companion2.ID, share); err != nil {
			return nil, fmt.Errorf("forwarding xp to companion 2: %w", err)
		}
		p.Companion2.XP += share
	}

	return event, nil
}

// GiveGold applies a signed gold delta.
//
// Postcondition: Returns an *InsufficientFundsError if a negative delta would
// overdraw the balance; the balance is unchanged in that case.
func (p *Player) GiveGold(ctx context.Context, delta int) error {
	if delta < 0 && -delta > p.Gold {
		return &InsufficientFundsError{
			Currency:  "gold",
			Requested: -delta,
			Shortfall: -delta - p.Gold,
			Balance:   p.Gold,
		}
	}
	if err := p.store.AddGold(ctx, p.DiscordID, delta); err != nil {
		return fmt.Errorf("updating gold: %w", err)
	}
	p.Gold += delta
	return nil
}

// GiveRubidics applies a signed rubidics delta.
//
// Postcondition: Returns an *InsufficientFundsError on overdraw.
func (p *Player) GiveRubidics(ctx context.Context, delta int) error {
	if delta < 0 && -delta > p.Rubidics {
		return &InsufficientFundsError{
			Currency:  "rubidics",
			Requested: -delta,
			Shortfall: -delta - p.Rubidics,
			Balance:   p.Rubidics,
		}
	}
	if err := p.store.AddRubidics(ctx, p.DiscordID, delta); err != nil {
		return fmt.Errorf("updating rubidics: %w", err)
	}
	p.Rubidics += delta
	return nil
}

// GiveGravitas applies a signed gravitas delta, clamping so the balance
// never drops below zero.
func (p *Player) GiveGravitas(ctx context.Context, delta int) error {
	if delta < 0 && -delta > p.Gravitas {
		delta = -p.Gravitas
	}
	if err := p.store.AddGravitas(ctx, p.DiscordID, delta); err != nil {
		return fmt.Errorf("updating gravitas: %w", err)
	}
	p.Gravitas += delta
	return nil
}

// GiveResource applies a signed delta to one resource counter.
//
// Postcondition: Returns an *InvalidResourceError for unknown resources and
// an *InsufficientResourceError on overdraw; the bag is unchanged either way.
func (p *Player) GiveResource(ctx context.Context, resource Resource, delta int) error {
	if !ValidResource(resource) {
		return &InvalidResourceError{Name: string(resource)}
	}
	balance := p.Resources[resource]
	if delta < 0 && -delta > balance {
		return &InsufficientResourceError{
			Resource:  resource,
			Requested: -delta,
			Shortfall: -delta - balance,
			Balance:   balance,
		}
	}
	if err := p.store.AddResource(ctx, p.DiscordID, resource, delta); err != nil {
		return fmt.Errorf("updating resource %s: %w", resource, err)
	}
	p.Resources[resource] += delta
	return nil
}

// EquipWeapon equips an owned weapon.
//
// Postcondition: Returns ErrNotOwner if weaponID is not in the player's
// inventory; the equipped reference is unchanged on failure.
func (p *Player) EquipWeapon(ctx context.Context, weaponID int64) error {
	owned, err := p.store.OwnsWeapon(ctx, p.DiscordID, weaponID)
	if err != nil {
		return fmt.Errorf("checking weapon ownership: %w", err)
	}
	if !owned {
		return fmt.Errorf("weapon %d: %w", weaponID, ErrNotOwner)
	}
	weapon, err := p.store.WeaponByID(ctx, weaponID)
	if err != nil {
		return fmt.Errorf("loading weapon %d: %w", weaponID, err)
	}
	if err := p.store.SetWeapon(ctx, p.DiscordID, weaponID); err != nil {
		return fmt.Errorf("equipping weapon: %w", err)
	}
	p.Weapon = weapon
	return nil
}

// UnequipWeapon clears the equipped weapon.
func (p *Player) UnequipWeapon(ctx context.Context) error {
	if err := p.store.ClearWeapon(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("unequipping weapon: %w", err)
	}
	p.Weapon = gear.EmptyWeapon()
	return nil
}

// EquipArmor equips an owned armor piece into its slot and returns it.
//
// Postcondition: Returns ErrNotOwner for unowned armor and ErrInvalidSlot if
// the piece's slot tag is not Helmet, Bodypiece, or Boots.
func (p *Player) EquipArmor(ctx context.Context, armorID int64) (gear.Armor, error) {
	owned, err := p.store.OwnsArmor(ctx, p.DiscordID, armorID)
	if err != nil {
		return gear.Armor{}, fmt.Errorf("checking armor ownership: %w", err)
	}
	if !owned {
		return gear.Armor{}, fmt.Errorf("armor %d: %w", armorID, ErrNotOwner)
	}
	armor, err := p.store.ArmorByID(ctx, armorID)
	if err != nil {
		return gear.Armor{}, fmt.Errorf("loading armor %d: %w", armorID, err)
	}
	if !gear.ValidArmorSlot(armor.Slot) {
		return gear.Armor{}, fmt.Errorf("armor slot %q: %w", armor.Slot, ErrInvalidSlot)
	}
	if err := p.store.SetArmor(ctx, p.DiscordID, armor.Slot, armorID); err != nil {
		return gear.Armor{}, fmt.Errorf("equipping armor: %w", err)
	}
	switch armor.Slot {
	case gear.SlotHelmet:
		p.Helmet = armor
	case gear.SlotBodypiece:
		p.Bodypiece = armor
	case gear.SlotBoots:
		p.Boots = armor
	}
	return armor, nil
}

// UnequipArmor clears all three armor slots.
func (p *Player) UnequipArmor(ctx context.Context) error {
	if err := p.store.ClearArmor(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("unequipping armor: %w", err)
	}
	p.Helmet = gear.EmptyArmor()
	p.Bodypiece = gear.EmptyArmor()
	p.Boots = gear.EmptyArmor()
	return nil
}

// EquipAccessory equips an owned accessory.
//
// Postcondition: Returns ErrNotOwner if accessoryID is not in the player's wardrobe.
func (p *Player) EquipAccessory(ctx context.Context, accessoryID int64) error {
	owned, err := p.store.OwnsAccessory(ctx, p.DiscordID, accessoryID)
	if err != nil {
		return fmt.Errorf("checking accessory ownership: %w", err)
	}
	if !owned {
		return fmt.Errorf("accessory %d: %w", accessoryID, ErrNotOwner)
	}
	accessory, err := p.store.AccessoryByID(ctx, accessoryID)
	if err != nil {
		return fmt.Errorf("loading accessory %d: %w", accessoryID, err)
	}
	if err := p.store.SetAccessory(ctx, p.DiscordID, accessoryID); err != nil {
		return fmt.Errorf("equipping accessory: %w", err)
	}
	p.Accessory = accessory
	return nil
}

// UnequipAccessory clears the equipped accessory.
func (p *Player) UnequipAccessory(ctx context.Context) error {
	if err := p.store.ClearAccessory(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("unequipping accessory: %w", err)
	}
	p.Accessory = gear.EmptyAccessory()
	return nil
}

// EquipCompanion places an owned companion into slot 1 or 2.
//
// Postcondition: Returns ErrInvalidSlot for any other slot, ErrNotOwner for an
// unowned companion, and ErrDuplicateEquip if the companion already occupies
// either slot.
func (p *Player) EquipCompanion(ctx context.Context, companionID int64, slot int) error {
	if slot != 1 && slot != 2 {
		return fmt.Errorf("companion slot %d: %w", slot, ErrInvalidSlot)
	}
	owned, err := p.store.OwnsCompanion(ctx, p.DiscordID, companionID)
	if err != nil {
		return fmt.Errorf("checking companion ownership: %w", err)
	}
	if !owned {
		return fmt.Errorf("companion %d: %w", companionID, ErrNotOwner)
	}
	if companionID == p.Companion1.ID || companionID == p.Companion2.ID {
		return fmt.Errorf("companion %d: %w", companionID, ErrDuplicateEquip)
	}
	companion, err := p.store.CompanionByID(ctx, companionID)
	if err != nil {
		return fmt.Errorf("loading companion %d: %w", companionID, err)
	}
	if err := p.store.SetCompanion(ctx, p.DiscordID, slot, companionID); err != nil {
		return fmt.Errorf("equipping companion: %w", err)
	}
	if slot == 1 {
		p.Companion1 = companion
	} else {
		p.Companion2 = companion
	}
	return nil
}

// UnequipCompanion clears the companion in slot 1 or 2.
//
// Postcondition: Returns ErrInvalidSlot for any other slot.
func (p *Player) UnequipCompanion(ctx context.Context, slot int) error {
	if slot != 1 && slot != 2 {
		return fmt.Errorf("companion slot %d: %w", slot, ErrInvalidSlot)
	}
	if err := p.store.ClearCompanion(ctx, p.DiscordID, slot); err != nil {
		return fmt.Errorf("unequipping companion: %w", err)
	}
	if slot == 1 {
		p.Companion1 = gear.EmptyCompanion()
	} else {
		p.Companion2 = gear.EmptyCompanion()
	}
	return nil
}

// JoinAssociation enrolls the player as a Member of the given association.
//
// Postcondition: Returns ErrInvalidAssociation for the empty association and
// ErrAtCapacity when the member count has reached capacity.
func (p *Player) JoinAssociation(ctx context.Context, associationID int64) error {
	assoc, err := p.store.AssociationByID(ctx, associationID)
	if err != nil {
		return fmt.Errorf("loading association %d: %w", associationID, err)
	}
	if assoc.IsEmpty() {
		return fmt.Errorf("association %d: %w", associationID, ErrInvalidAssociation)
	}
	count, err := p.store.MemberCount(ctx, associationID)
	if err != nil {
		return fmt.Errorf("counting members: %w", err)
	}
	if count >= assoc.Capacity {
		return fmt.Errorf("association %q: %w", assoc.Name, ErrAtCapacity)
	}
	if err := p.store.SetAssociation(ctx, p.DiscordID, associationID, RankMember); err != nil {
		return fmt.Errorf("joining association: %w", err)
	}
	p.Association = assoc
	p.Rank = RankMember
	return nil
}

// SetAssociationRank changes the player's rank.
//
// Postcondition: Returns an *InvalidInputError for ranks outside the enum.
func (p *Player) SetAssociationRank(ctx context.Context, rank Rank) error {
	if !ValidRank(rank) {
		return &InvalidInputError{
			Field:  "rank",
			Reason: fmt.Sprintf("%q is not one of Member, Adept, Officer", rank),
		}
	}
	if err := p.store.SetAssociationRank(ctx, p.DiscordID, rank); err != nil {
		return fmt.Errorf("setting association rank: %w", err)
	}
	p.Rank = rank
	return nil
}

// LeaveAssociation removes the player from their association, vacates any
// guild-war champion slots they hold, and deposits their guild bank balance
// into personal gold. Leaving while unassociated is a no-op with no writes.
func (p *Player) LeaveAssociation(ctx context.Context) error {
	if p.Association.IsEmpty() {
		return nil
	}
	bankFunds, err := p.store.LeaveAssociation(ctx, p.DiscordID)
	if err != nil {
		return fmt.Errorf("leaving association: %w", err)
	}
	p.Gold += int(bankFunds)
	p.Association = gear.EmptyAssociation()
	p.Rank = ""
	return nil
}

// SetPityCounter sets the gacha pity counter.
func (p *Player) SetPityCounter(ctx context.Context, counter int) error {
	if err := p.store.SetPityCounter(ctx, p.DiscordID, counter); err != nil {
		return fmt.Errorf("setting pity counter: %w", err)
	}
	p.PityCounter = counter
	return nil
}

// SetOccupation changes the player's occupation.
//
// Postcondition: Returns an *InvalidOccupationError for names missing from the ruleset.
func (p *Player) SetOccupation(ctx context.Context, occupation string) error {
	if !p.rules.HasOccupation(occupation) {
		return &InvalidOccupationError{Name: occupation}
	}
	if err := p.store.SetOccupation(ctx, p.DiscordID, occupation); err != nil {
		return fmt.Errorf("setting occupation: %w", err)
	}
	p.Occupation = occupation
	return nil
}

// SetOrigin changes the player's origin.
//
// Postcondition: Returns an *InvalidOriginError for names missing from the ruleset.
func (p *Player) SetOrigin(ctx context.Context, origin string) error {
	if !p.rules.HasOrigin(origin) {
		return &InvalidOriginError{Name: origin}
	}
	if err := p.store.SetOrigin(ctx, p.DiscordID, origin); err != nil {
		return fmt.Errorf("setting origin: %w", err)
	}
	p.Origin = origin
	return nil
}

// SetLocation moves the player on the map.
func (p *Player) SetLocation(ctx context.Context, location string) error {
	if err := p.store.SetLocation(ctx, p.DiscordID, location); err != nil {
		return fmt.Errorf("setting location: %w", err)
	}
	p.Location = location
	return nil
}

// SetAdventure records travel state. For a timed adventure, adventure is the
// completion time and destination the target. For an expedition, adventure is
// the start time and destination is DestinationExpedition.
func (p *Player) SetAdventure(ctx context.Context, adventure int64, destination string) error {
	if err := p.store.SetAdventure(ctx, p.DiscordID, adventure, destination); err != nil {
		return fmt.Errorf("setting adventure: %w", err)
	}
	p.Adventure = adventure
	p.Destination = destination
	return nil
}

// LogPvE records a PvE battle result.
func (p *Player) LogPvE(ctx context.Context, victory bool) error {
	if err := p.store.LogPvE(ctx, p.DiscordID, victory); err != nil {
		return fmt.Errorf("logging pve result: %w", err)
	}
	p.PvEFights++
	if victory {
		p.PvEWins++
	}
	return nil
}

// LogPvP records a PvP battle result.
func (p *Player) LogPvP(ctx context.Context, victory bool) error {
	if err := p.store.LogPvP(ctx, p.DiscordID, victory); err != nil {
		return fmt.Errorf("logging pvp result: %w", err)
	}
	p.PvPFights++
	if victory {
		p.PvPWins++
	}
	return nil
}

// IncrementPvELimit bumps the per-period PvE attempt counter.
func (p *Player) IncrementPvELimit(ctx context.Context) error {
	if err := p.store.IncrementPvELimit(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("incrementing pve limit: %w", err)
	}
	p.PvELimit++
	return nil
}

// IncrementDailyStreak extends the daily-claim streak by one day.
func (p *Player) IncrementDailyStreak(ctx context.Context) error {
	if err := p.store.IncrementDailyStreak(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("incrementing daily streak: %w", err)
	}
	p.DailyStreak++
	return nil
}

// ResetDailyStreak restarts a broken streak at one.
func (p *Player) ResetDailyStreak(ctx context.Context) error {
	if err := p.store.ResetDailyStreak(ctx, p.DiscordID); err != nil {
		return fmt.Errorf("resetting daily streak: %w", err)
	}
	p.DailyStreak = 1
	return nil
}
