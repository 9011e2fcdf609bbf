// Package player implements the player aggregate: persistent character state,
// its equipped gear references, the invariant-preserving mutation operations,
// and the derived combat stat queries.
//
// Every mutation follows the same ordering: validate preconditions, issue the
// durable write, then update the in-memory field. A failed write therefore
// never leaves the aggregate ahead of the store.
package player

import (
	"context"

	"github.com/mvannote/ashvale/internal/game/gear"
	"github.com/mvannote/ashvale/internal/game/ruleset"
)

// MaxNameLength is the character name limit.
const MaxNameLength = 32

// DestinationExpedition is the sentinel destination for open-ended expeditions,
// where Adventure records the start time rather than the completion time.
const DestinationExpedition = "EXPEDITION"

// Rank is a player's standing inside an association. The zero value means the
// player holds no rank, which is the case exactly when no association is set.
type Rank string

const (
	RankMember  Rank = "Member"
	RankAdept   Rank = "Adept"
	RankOfficer Rank = "Officer"
)

// ValidRank reports whether r is one of the three association ranks.
func ValidRank(r Rank) bool {
	switch r {
	case RankMember, RankAdept, RankOfficer:
		return true
	}
	return false
}

// Resource names a counter in the player's resource bag.
type Resource string

const (
	ResourceWheat  Resource = "wheat"
	ResourceOat    Resource = "oat"
	ResourceWood   Resource = "wood"
	ResourceReeds  Resource = "reeds"
	ResourcePine   Resource = "pine"
	ResourceMoss   Resource = "moss"
	ResourceIron   Resource = "iron"
	ResourceCacao  Resource = "cacao"
	ResourceFur    Resource = "fur"
	ResourceBone   Resource = "bone"
	ResourceSilver Resource = "silver"
)

// AllResources lists every resource in bag order.
func AllResources() []Resource {
	return []Resource{
		ResourceWheat, ResourceOat, ResourceWood, ResourceReeds,
		ResourcePine, ResourceMoss, ResourceIron, ResourceCacao,
		ResourceFur, ResourceBone, ResourceSilver,
	}
}

// ValidResource reports whether r names a known resource.
func ValidResource(r Resource) bool {
	switch r {
	case ResourceWheat, ResourceOat, ResourceWood, ResourceReeds,
		ResourcePine, ResourceMoss, ResourceIron, ResourceCacao,
		ResourceFur, ResourceBone, ResourceSilver:
		return true
	}
	return false
}

// ParseResource converts a user-supplied name into a Resource.
//
// Postcondition: Returns an *InvalidResourceError for unknown names.
func ParseResource(name string) (Resource, error) {
	r := Resource(name)
	if !ValidResource(r) {
		return "", &InvalidResourceError{Name: name}
	}
	return r, nil
}

// Store is the durable-write surface the aggregate needs. All per-delta
// updates must be implemented as atomic read-modify-writes at the storage
// layer (SET x = x + $delta), never read-then-write in the core.
type Store interface {
	SetName(ctx context.Context, discordID int64, name string) error
	AddXP(ctx context.Context, discordID int64, delta int) error
	AddGold(ctx context.Context, discordID int64, delta int) error
	AddRubidics(ctx context.Context, discordID int64, delta int) error
	AddGravitas(ctx context.Context, discordID int64, delta int) error
	AddResource(ctx context.Context, discordID int64, resource Resource, delta int) error

	SetWeapon(ctx context.Context, discordID, weaponID int64) error
	ClearWeapon(ctx context.Context, discordID int64) error
	SetArmor(ctx context.Context, discordID int64, slot gear.ArmorSlot, armorID int64) error
	ClearArmor(ctx context.Context, discordID int64) error
	SetAccessory(ctx context.Context, discordID, accessoryID int64) error
	ClearAccessory(ctx context.Context, discordID int64) error
	SetCompanion(ctx context.Context, discordID int64, slot int, companionID int64) error
	ClearCompanion(ctx context.Context, discordID int64, slot int) error
	AddCompanionXP(ctx context.Context, companionID int64, delta int) error

	SetAssociation(ctx context.Context, discordID, associationID int64, rank Rank) error
	SetAssociationRank(ctx context.Context, discordID int64, rank Rank) error
	// LeaveAssociation clears the membership and rank, removes the player
	// from any guild-war champion slots, and withdraws the player's guild
	// bank balance, all in one transaction. It returns the withdrawn funds,
	// which the caller deposits into personal gold.
	LeaveAssociation(ctx context.Context, discordID int64) (bankFunds int64, err error)

	SetPityCounter(ctx context.Context, discordID int64, counter int) error
	SetOccupation(ctx context.Context, discordID int64, occupation string) error
	SetOrigin(ctx context.Context, discordID int64, origin string) error
	SetLocation(ctx context.Context, discordID int64, location string) error
	SetAdventure(ctx context.Context, discordID int64, adventure int64, destination string) error
	LogPvE(ctx context.Context, discordID int64, victory bool) error
	LogPvP(ctx context.Context, discordID int64, victory bool) error
	IncrementPvELimit(ctx context.Context, discordID int64) error
	IncrementDailyStreak(ctx context.Context, discordID int64) error
	ResetDailyStreak(ctx context.Context, discordID int64) error

	OwnsWeapon(ctx context.Context, discordID, weaponID int64) (bool, error)
	OwnsArmor(ctx context.Context, discordID, armorID int64) (bool, error)
	OwnsAccessory(ctx context.Context, discordID, accessoryID int64) (bool, error)
	OwnsCompanion(ctx context.Context, discordID, companionID int64) (bool, error)
	MemberCount(ctx context.Context, associationID int64) (int, error)

	WeaponByID(ctx context.Context, weaponID int64) (gear.Weapon, error)
	ArmorByID(ctx context.Context, armorID int64) (gear.Armor, error)
	AccessoryByID(ctx context.Context, accessoryID int64) (gear.Accessory, error)
	CompanionByID(ctx context.Context, companionID int64) (gear.Companion, error)
	AssociationByID(ctx context.Context, associationID int64) (gear.Association, error)
}

// Player is the aggregate root: the character's full persistent state plus
// its resolved gear references. Owned references are always concrete values;
// an unequipped slot holds the canonical empty variant.
type Player struct {
	DiscordID int64
	UniqueID  int64

	Name  string
	XP    int
	Level int

	Gold      int
	Rubidics  int
	Gravitas  int
	Resources map[Resource]int

	PityCounter int
	Occupation  string
	Origin      string
	Location    string
	Adventure   int64 // completion time, or start time for expeditions
	Destination string

	PvPWins   int
	PvPFights int
	PvEWins   int
	PvEFights int
	PvELimit  int

	DailyStreak int

	Rank Rank

	Weapon      gear.Weapon
	Helmet      gear.Armor
	Bodypiece   gear.Armor
	Boots       gear.Armor
	Accessory   gear.Accessory
	Companion1  gear.Companion
	Companion2  gear.Companion
	Association gear.Association

	store Store
	rules *ruleset.Rules
}

// Bind attaches the durable store and rule tables to a hydrated player.
// The repository calls this after loading; mutation and stat methods require it.
//
// Precondition: store and rules must be non-nil.
func (p *Player) Bind(store Store, rules *ruleset.Rules) {
	if store == nil || rules == nil {
		panic("player.Bind: store and rules must be non-nil")
	}
	p.store = store
	p.rules = rules
}

// OnExpedition reports whether the player is on an open-ended expedition.
func (p *Player) OnExpedition() bool {
	return p.Destination == DestinationExpedition
}

// AdventureComplete reports whether a timed adventure has finished by now.
// Expeditions never complete on their own; the player recalls them.
func (p *Player) AdventureComplete(now int64) bool {
	if p.Destination == "" || p.OnExpedition() {
		return false
	}
	return now >= p.Adventure
}
