package gear_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mvannote/ashvale/internal/game/gear"
)

func TestEmptyVariantsContributeNothing(t *testing.T) {
	assert.True(t, gear.EmptyWeapon().IsEmpty())
	assert.True(t, gear.EmptyArmor().IsEmpty())
	assert.True(t, gear.EmptyAccessory().IsEmpty())
	assert.True(t, gear.EmptyAssociation().IsEmpty())

	c := gear.EmptyCompanion()
	assert.True(t, c.IsEmpty())
	assert.Zero(t, c.AttackContribution())
	assert.Zero(t, c.CritContribution())
	assert.Zero(t, c.HPContribution())
}

func TestCompanionContributions(t *testing.T) {
	c := gear.Companion{ID: 1, Name: "Ilya", Stars: 4, Level: 12, BaseAttack: 40, BaseCrit: 3, BaseHP: 80}

	assert.Equal(t, 88, c.AttackContribution())
	assert.Equal(t, 5, c.CritContribution())
	assert.Equal(t, 176, c.HPContribution())
}

func TestValidArmorSlot(t *testing.T) {
	assert.True(t, gear.ValidArmorSlot(gear.SlotHelmet))
	assert.True(t, gear.ValidArmorSlot(gear.SlotBodypiece))
	assert.True(t, gear.ValidArmorSlot(gear.SlotBoots))
	assert.False(t, gear.ValidArmorSlot("Gauntlets"))
	assert.False(t, gear.ValidArmorSlot(""))
}
