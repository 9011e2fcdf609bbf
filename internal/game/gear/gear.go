// Package gear defines the equipment, companion, and association value
// objects referenced by a player.
//
// Every type has a canonical empty variant whose contributions are all zero,
// so stat folding never needs a nil check. Identity is the database ID; an ID
// of zero marks the empty variant.
package gear

// ArmorSlot identifies which armor slot a piece occupies.
type ArmorSlot string

const (
	SlotHelmet    ArmorSlot = "Helmet"
	SlotBodypiece ArmorSlot = "Bodypiece"
	SlotBoots     ArmorSlot = "Boots"
)

// ValidArmorSlot reports whether s is one of the three equippable slots.
func ValidArmorSlot(s ArmorSlot) bool {
	switch s {
	case SlotHelmet, SlotBodypiece, SlotBoots:
		return true
	}
	return false
}

// Weapon is an owned weapon resolved from storage.
type Weapon struct {
	ID     int64
	Name   string
	Type   string // Spear, Sword, Dagger, Bow, Axe, Mace, Staff, Greatsword, Gauntlets, Sling
	Rarity string
	Attack int
	Crit   int
}

// EmptyWeapon returns the canonical unequipped weapon.
func EmptyWeapon() Weapon { return Weapon{} }

// IsEmpty reports whether the weapon is the canonical empty variant.
func (w Weapon) IsEmpty() bool { return w.ID == 0 }

// Armor is an owned armor piece resolved from storage.
type Armor struct {
	ID       int64
	Name     string
	Slot     ArmorSlot
	Material string
	Defense  int
}

// EmptyArmor returns the canonical unequipped armor piece.
func EmptyArmor() Armor { return Armor{} }

// IsEmpty reports whether the armor is the canonical empty variant.
func (a Armor) IsEmpty() bool { return a.ID == 0 }

// Accessory is an owned accessory resolved from storage. Prefix selects which
// stat the accessory boosts; Material indexes the bonus magnitude table.
type Accessory struct {
	ID       int64
	Name     string
	Prefix   string // Demonic, Flexible, Thick, Strong, ...
	Material string // Wood, Glass, Copper, Jade, Pearl, ...
}

// EmptyAccessory returns the canonical unequipped accessory.
func EmptyAccessory() Accessory { return Accessory{} }

// IsEmpty reports whether the accessory is the canonical empty variant.
func (a Accessory) IsEmpty() bool { return a.ID == 0 }

// Companion is a recruited companion resolved from storage. Its own leveling
// lives outside the player core; the player only reads its stat contributions
// and forwards a share of earned xp.
type Companion struct {
	ID         int64
	Name       string
	Stars      int
	Level      int
	XP         int
	BaseAttack int
	BaseCrit   int
	BaseHP     int
}

// EmptyCompanion returns the canonical unequipped companion.
func EmptyCompanion() Companion { return Companion{} }

// IsEmpty reports whether the companion is the canonical empty variant.
func (c Companion) IsEmpty() bool { return c.ID == 0 }

// AttackContribution returns the companion's additive attack bonus.
func (c Companion) AttackContribution() int {
	if c.IsEmpty() {
		return 0
	}
	return c.BaseAttack + c.Level*c.Stars
}

// CritContribution returns the companion's additive crit bonus.
func (c Companion) CritContribution() int {
	if c.IsEmpty() {
		return 0
	}
	return c.BaseCrit + c.Level/5
}

// HPContribution returns the companion's additive HP bonus.
func (c Companion) HPContribution() int {
	if c.IsEmpty() {
		return 0
	}
	return c.BaseHP + c.Level*c.Stars*2
}

// AssociationType distinguishes the three association flavors.
type AssociationType string

const (
	AssociationBrotherhood AssociationType = "Brotherhood"
	AssociationCollege     AssociationType = "College"
	AssociationGuild       AssociationType = "Guild"
)

// Association is the guild-like body a player may belong to.
type Association struct {
	ID       int64
	Name     string
	Type     AssociationType
	Level    int
	Capacity int
}

// EmptyAssociation returns the canonical "no association" value.
func EmptyAssociation() Association { return Association{} }

// IsEmpty reports whether the association is the canonical empty variant.
func (a Association) IsEmpty() bool { return a.ID == 0 }
