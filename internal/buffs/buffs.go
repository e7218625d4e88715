// Package buffs loads named buff presets from YAML and applies their
// modifiers to a combat input state. A preset models the flat bonuses a
// running nano program or perk grants (skill deltas, added critical chance,
// add-all-offense and flat damage).
package buffs

import (
	"fmt"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Def is the static definition of a buff preset, loaded from YAML.
type Def struct {
	ID          string         `yaml:"id"`
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	NCU         int            `yaml:"ncu"`
	Modifiers   map[string]int `yaml:"modifiers"` // skill name -> delta
	AAO         int            `yaml:"aao"`
	Crit        float64        `yaml:"crit"`
	AddDamage   int            `yaml:"add_damage"`
	Script      string         `yaml:"script"` // optional Lua hook filename
}

// Validate checks the definition for internal consistency.
// Postcondition: Returns nil if the definition is usable, or an error
// naming every problem found.
func (d *Def) Validate() error {
	var errs []error
	if d.ID == "" {
		errs = append(errs, fmt.Errorf("id must not be empty"))
	}
	if d.Name == "" {
		errs = append(errs, fmt.Errorf("name must not be empty"))
	}
	if d.NCU < 0 {
		errs = append(errs, fmt.Errorf("ncu must not be negative, got %d", d.NCU))
	}
	for name := range d.Modifiers {
		if _, ok := stats.SkillByName(name); !ok {
			errs = append(errs, fmt.Errorf("unknown modifier skill %q", name))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("buff %q validation failed: %v", d.ID, errs)
	}
	return nil
}

var (
	weaponSkillSet  = toSet(stats.WeaponSkills())
	specialSkillSet = toSet(stats.SpecialSkills())
	damageModSet    = toSet(stats.DamageModifiers())
)

func toSet(ids []stats.ID) map[stats.ID]bool {
	set := make(map[stats.ID]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}

// Apply adds every definition's modifiers into st. Skill deltas land in the
// matching input group; modifier names with no slot in the input state
// (abilities, for example) are skipped.
// Precondition: st must not be nil.
func Apply(defs []*Def, st *combat.InputState) {
	for _, d := range defs {
		st.Crit += d.Crit
		st.Bonuses.AAO += d.AAO
		st.Bonuses.AddDamage += d.AddDamage
		for name, delta := range d.Modifiers {
			id, ok := stats.SkillByName(name)
			if !ok {
				continue
			}
			switch {
			case weaponSkillSet[id]:
				st.WeaponSkills[id] += delta
			case specialSkillSet[id]:
				st.SpecialSkills[id] += delta
			case damageModSet[id]:
				st.Bonuses.AddDamage += delta
			case id == stats.MeleeInit:
				st.Initiative.Melee += delta
			case id == stats.RangedInit:
				st.Initiative.Ranged += delta
			case id == stats.PhysicalInit:
				st.Initiative.Physical += delta
			case id == stats.AddAllOffense:
				st.Bonuses.AAO += delta
			}
		}
	}
}
