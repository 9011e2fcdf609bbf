package player

import "github.com/mvannote/ashvale/internal/game/gear"

// Occupation names the stat engine special-cases.
const (
	occupationSoldier       = "Soldier"
	occupationLeatherworker = "Leatherworker"
)

// Accessory prefixes recognized by the stat engine.
const (
	prefixDemonic  = "Demonic"
	prefixFlexible = "Flexible"
	prefixThick    = "Thick"
	prefixStrong   = "Strong"
)

// Attack returns the player's final attack stat. No other code may adjust the
// returned value; this is the single source of truth.
//
// The Soldier multiplier truncates after all additive terms and before the
// Demonic accessory bonus; that ordering changes the result and is fixed.
func (p *Player) Attack() int {
	occupation := p.rules.MustOccupation(p.Occupation)
	origin := p.rules.MustOrigin(p.Origin)

	attack := 10 + p.Level/2
	attack += p.Weapon.Attack
	attack += p.Companion1.AttackContribution()
	attack += p.Companion2.AttackContribution()
	if occupation.BonusWeapon(p.Weapon.Type) {
		attack += 20
	}
	attack += origin.AttackBonus
	if p.Association.Type == gear.AssociationBrotherhood {
		level := p.Association.Level
		attack += level * (level + 1) / 4
	}
	attack += occupation.AttackBonus
	if p.Occupation == occupationSoldier {
		attack = int(float64(attack) * 1.1)
	}
	if p.Accessory.Prefix == prefixDemonic {
		attack += p.rules.MustAccessoryBonus(prefixDemonic, p.Accessory.Material)
	}
	return attack
}

// Crit returns the player's final crit stat.
func (p *Player) Crit() int {
	occupation := p.rules.MustOccupation(p.Occupation)
	origin := p.rules.MustOrigin(p.Origin)

	crit := 5
	crit += p.Weapon.Crit
	crit += p.Companion1.CritContribution()
	crit += p.Companion2.CritContribution()
	crit += origin.CritBonus
	if p.Association.Type == gear.AssociationBrotherhood {
		crit += p.Association.Level
	}
	crit += occupation.CritBonus
	if p.Accessory.Prefix == prefixFlexible {
		crit += p.rules.MustAccessoryBonus(prefixFlexible, p.Accessory.Material)
	}
	return crit
}

// HP returns the player's final HP stat.
func (p *Player) HP() int {
	occupation := p.rules.MustOccupation(p.Occupation)
	origin := p.rules.MustOrigin(p.Origin)

	hp := 500 + p.Level*3
	hp += p.Companion1.HPContribution()
	hp += p.Companion2.HPContribution()
	hp += origin.HPBonus
	hp += occupation.HPBonus
	if p.Accessory.Prefix == prefixThick {
		hp += p.rules.MustAccessoryBonus(prefixThick, p.Accessory.Material)
	}
	return hp
}

// Defense returns the player's final defense stat.
func (p *Player) Defense() int {
	defense := p.Helmet.Defense + p.Bodypiece.Defense + p.Boots.Defense
	if p.Occupation == occupationLeatherworker {
		if !p.Helmet.IsEmpty() {
			defense += 3
		}
		if !p.Bodypiece.IsEmpty() {
			defense += 3
		}
		if !p.Boots.IsEmpty() {
			defense += 3
		}
	}
	if p.Accessory.Prefix == prefixStrong {
		defense += p.rules.MustAccessoryBonus(prefixStrong, p.Accessory.Material)
	}
	return defense
}
