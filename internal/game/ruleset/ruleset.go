// Package ruleset holds the static bonus tables keyed by occupation, origin,
// and accessory prefix. Tables are loaded once at startup from YAML content
// files; a lookup with an unknown key is a configuration bug and panics.
package ruleset

import "fmt"

// Occupation is a playable class entry with its stat bonuses.
type Occupation struct {
	Name string `yaml:"name"`
	// WeaponBonus lists the weapon types this occupation is practiced with.
	WeaponBonus []string `yaml:"weapon_bonus"`
	AttackBonus int      `yaml:"atk_bonus"`
	CritBonus   int      `yaml:"crit_bonus"`
	HPBonus     int      `yaml:"hp_bonus"`
}

// BonusWeapon reports whether weaponType is in the occupation's practiced set.
func (o *Occupation) BonusWeapon(weaponType string) bool {
	for _, w := range o.WeaponBonus {
		if w == weaponType {
			return true
		}
	}
	return false
}

// Origin is a home-region entry with its stat bonuses.
type Origin struct {
	Name        string `yaml:"name"`
	AttackBonus int    `yaml:"atk_bonus"`
	CritBonus   int    `yaml:"crit_bonus"`
	HPBonus     int    `yaml:"hp_bonus"`
}

// AccessoryPrefix maps accessory materials to a bonus magnitude for one
// stat-boosting prefix ("Demonic" boosts attack, "Flexible" crit, and so on).
type AccessoryPrefix struct {
	Prefix  string         `yaml:"prefix"`
	Stat    string         `yaml:"stat"`
	Bonuses map[string]int `yaml:"bonuses"`
}

// Rules is the immutable set of bonus tables used by the stat engine.
type Rules struct {
	occupations map[string]*Occupation
	origins     map[string]*Origin
	accessories map[string]*AccessoryPrefix
}

// NewRules assembles a Rules from already-parsed table entries.
//
// Precondition: entry names must be unique within each table.
// Postcondition: Returns a non-nil Rules ready for lookups.
func NewRules(occupations []*Occupation, origins []*Origin, prefixes []*AccessoryPrefix) *Rules {
	r := &Rules{
		occupations: make(map[string]*Occupation, len(occupations)),
		origins:     make(map[string]*Origin, len(origins)),
		accessories: make(map[string]*AccessoryPrefix, len(prefixes)),
	}
	for _, o := range occupations {
		r.occupations[o.Name] = o
	}
	for _, o := range origins {
		r.origins[o.Name] = o
	}
	for _, p := range prefixes {
		r.accessories[p.Prefix] = p
	}
	return r
}

// HasOccupation reports whether name is a known occupation.
func (r *Rules) HasOccupation(name string) bool {
	_, ok := r.occupations[name]
	return ok
}

// HasOrigin reports whether name is a known origin.
func (r *Rules) HasOrigin(name string) bool {
	_, ok := r.origins[name]
	return ok
}

// Occupation returns the occupation entry for name, if present.
func (r *Rules) Occupation(name string) (*Occupation, bool) {
	o, ok := r.occupations[name]
	return o, ok
}

// Origin returns the origin entry for name, if present.
func (r *Rules) Origin(name string) (*Origin, bool) {
	o, ok := r.origins[name]
	return o, ok
}

// MustOccupation returns the occupation entry for name.
//
// Precondition: name must exist in the table; a stored player can only hold
// validated values, so a miss means the content files are broken.
func (r *Rules) MustOccupation(name string) *Occupation {
	o, ok := r.occupations[name]
	if !ok {
		panic(fmt.Sprintf("ruleset: unknown occupation %q", name))
	}
	return o
}

// MustOrigin returns the origin entry for name.
//
// Precondition: name must exist in the table.
func (r *Rules) MustOrigin(name string) *Origin {
	o, ok := r.origins[name]
	if !ok {
		panic(fmt.Sprintf("ruleset: unknown origin %q", name))
	}
	return o
}

// MustAccessoryBonus returns the bonus magnitude for a prefix and material.
//
// Precondition: prefix and material must exist in the accessory table.
func (r *Rules) MustAccessoryBonus(prefix, material string) int {
	p, ok := r.accessories[prefix]
	if !ok {
		panic(fmt.Sprintf("ruleset: unknown accessory prefix %q", prefix))
	}
	bonus, ok := p.Bonuses[material]
	if !ok {
		panic(fmt.Sprintf("ruleset: accessory prefix %q has no bonus for material %q", prefix, material))
	}
	return bonus
}
