package ruleset_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvannote/ashvale/internal/game/ruleset"
)

func testRules() *ruleset.Rules {
	return ruleset.NewRules(
		[]*ruleset.Occupation{
			{Name: "Soldier", WeaponBonus: []string{"Spear", "Sword"}, HPBonus: 100},
			{Name: "Traveler"},
		},
		[]*ruleset.Origin{
			{Name: "Crumidia", AttackBonus: 15},
			{Name: "Drifter"},
		},
		[]*ruleset.AccessoryPrefix{
			{Prefix: "Demonic", Stat: "attack", Bonuses: map[string]int{"Wood": 2, "Ruby": 60}},
		},
	)
}

func TestLookups(t *testing.T) {
	r := testRules()

	assert.True(t, r.HasOccupation("Soldier"))
	assert.False(t, r.HasOccupation("Necromancer"))
	assert.True(t, r.HasOrigin("Crumidia"))
	assert.False(t, r.HasOrigin("Atlantis"))

	occ, ok := r.Occupation("Soldier")
	require.True(t, ok)
	assert.Equal(t, 100, occ.HPBonus)

	orig, ok := r.Origin("Crumidia")
	require.True(t, ok)
	assert.Equal(t, 15, orig.AttackBonus)

	_, ok = r.Occupation("Necromancer")
	assert.False(t, ok)
}

func TestBonusWeapon(t *testing.T) {
	r := testRules()
	occ := r.MustOccupation("Soldier")

	assert.True(t, occ.BonusWeapon("Spear"))
	assert.True(t, occ.BonusWeapon("Sword"))
	assert.False(t, occ.BonusWeapon("Bow"))

	traveler := r.MustOccupation("Traveler")
	assert.False(t, traveler.BonusWeapon("Spear"))
}

func TestMustAccessoryBonus(t *testing.T) {
	r := testRules()

	assert.Equal(t, 60, r.MustAccessoryBonus("Demonic", "Ruby"))
	assert.Equal(t, 2, r.MustAccessoryBonus("Demonic", "Wood"))
}

func TestMustLookupsPanicOnUnknownKeys(t *testing.T) {
	r := testRules()

	assert.Panics(t, func() { r.MustOccupation("Necromancer") })
	assert.Panics(t, func() { r.MustOrigin("Atlantis") })
	assert.Panics(t, func() { r.MustAccessoryBonus("Golden", "Ruby") })
	assert.Panics(t, func() { r.MustAccessoryBonus("Demonic", "Mithril") })
}
