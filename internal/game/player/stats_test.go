package player_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvannote/ashvale/internal/game/gear"
)

func TestAttack_NewCharacterBaseline(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Weapon = gear.Weapon{ID: 1, Name: "Wooden Spear", Type: "Spear", Attack: 20}

	assert.Equal(t, 30, p.Attack())
	assert.Equal(t, 5, p.Crit())
	assert.Equal(t, 500, p.HP())
	assert.Equal(t, 0, p.Defense())
}

func TestAttack_WeaponTypeBonus(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Occupation = "Hunter"
	p.Weapon = gear.Weapon{ID: 2, Name: "Yew Bow", Type: "Bow", Attack: 30}

	// 10 base + 30 weapon + 20 type match.
	assert.Equal(t, 60, p.Attack())
}

func TestAttack_SoldierMultiplierOrdering(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Occupation = "Soldier"
	p.Level = 5
	p.Weapon = gear.Weapon{ID: 1, Name: "Wooden Spear", Type: "Spear", Attack: 20}
	p.Accessory = gear.Accessory{ID: 9, Prefix: "Demonic", Material: "Ruby"}

	// 10 + 5/2 + 20 weapon + 20 type match = 52, times 1.1 truncated to 57,
	// then the Demonic bonus of 60 lands after the multiplier. Applying the
	// bonus first would give int(112*1.1) = 123 instead.
	assert.Equal(t, 117, p.Attack())
}

func TestAttack_BrotherhoodBonus(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Association = gear.Association{ID: 4, Name: "Emberguard", Type: gear.AssociationBrotherhood, Level: 10, Capacity: 50}

	// 10 base + 10*11/4 = 27.
	assert.Equal(t, 37, p.Attack())
	// 5 base + association level.
	assert.Equal(t, 15, p.Crit())
}

func TestAttack_CollegeGrantsNothing(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Association = gear.Association{ID: 5, Name: "Lyceum", Type: gear.AssociationCollege, Level: 10, Capacity: 50}

	assert.Equal(t, 10, p.Attack())
	assert.Equal(t, 5, p.Crit())
}

func TestAttack_CompanionContributions(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Companion1 = gear.Companion{ID: 7, Stars: 3, Level: 10, BaseAttack: 50, BaseCrit: 5, BaseHP: 100}

	// Attack: 10 + (50 + 10*3) = 90. Crit: 5 + (5 + 10/5) = 12.
	// HP: 500 + (100 + 10*3*2) = 660.
	assert.Equal(t, 90, p.Attack())
	assert.Equal(t, 12, p.Crit())
	assert.Equal(t, 660, p.HP())
}

func TestCrit_StacksOriginOccupationAccessory(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Occupation = "Hunter"
	p.Origin = "Thenuille"
	p.Accessory = gear.Accessory{ID: 9, Prefix: "Flexible", Material: "Ruby"}

	// 5 base + 10 occupation + 5 origin + 13 accessory.
	assert.Equal(t, 33, p.Crit())
}

func TestHP_StacksOriginOccupationAccessory(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Occupation = "Soldier"
	p.Origin = "Glakelys"
	p.Level = 10
	p.Accessory = gear.Accessory{ID: 9, Prefix: "Thick", Material: "Ruby"}

	// 500 + 30 level + 100 origin + 100 occupation + 300 accessory.
	assert.Equal(t, 1030, p.HP())
}

func TestDefense_LeatherworkerPerPieceBonus(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Occupation = "Leatherworker"
	p.Helmet = gear.Armor{ID: 1, Slot: gear.SlotHelmet, Defense: 10}
	p.Boots = gear.Armor{ID: 2, Slot: gear.SlotBoots, Defense: 15}

	// 25 from armor plus 3 per equipped piece; the empty bodypiece earns nothing.
	assert.Equal(t, 31, p.Defense())
}

func TestDefense_StrongAccessory(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Bodypiece = gear.Armor{ID: 3, Slot: gear.SlotBodypiece, Defense: 40}
	p.Accessory = gear.Accessory{ID: 9, Prefix: "Strong", Material: "Ruby"}

	assert.Equal(t, 95, p.Defense())
}

func TestAttack_OriginBonus(t *testing.T) {
	p := newTestPlayer(newFakeStore())
	p.Origin = "Crumidia"

	assert.Equal(t, 25, p.Attack())
}
