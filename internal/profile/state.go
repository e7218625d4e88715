package profile

import (
	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/reqs"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// InputState converts the profile into calculator input. Skill maps are
// resolved through the stat catalog; names outside it are dropped. The
// flat add-damage bonus is the highest elemental damage modifier the
// profile carries.
//
// Precondition: p is non-nil.
// Postcondition: Returns a state safe to pass to every combat function.
func (p *Profile) InputState() *combat.InputState {
	st := combat.NewInputState()
	st.Character = combat.Character{
		Breed:      p.Breed.Num(),
		Profession: p.Profession.Num(),
		Level:      p.Level,
		Side:       p.Side.Num(),
	}
	st.Crit = p.Crit
	if p.AggDef > 0 {
		st.AggDef = p.AggDef
	}
	for name, v := range p.WeaponSkills {
		if id, ok := stats.SkillByName(name); ok {
			st.WeaponSkills[id] = v
		}
	}
	for name, v := range p.SpecialSkills {
		if id, ok := stats.SkillByName(name); ok {
			st.SpecialSkills[id] = v
		}
	}
	st.Initiative = combat.Initiatives{
		Melee:    p.Initiatives.Melee,
		Physical: p.Initiatives.Physical,
		Ranged:   p.Initiatives.Ranged,
	}
	st.Bonuses = combat.Bonuses{
		AAO:       p.AAO,
		AddDamage: p.maxDamageModifier(),
		Wrangle:   p.Wrangle,
	}
	return st
}

func (p *Profile) maxDamageModifier() int {
	best := 0
	for _, v := range p.DamageModifiers {
		if v > best {
			best = v
		}
	}
	return best
}

// Reader materializes the profile into a flat stat map for requirement
// evaluation. Identity stats, abilities, and every named skill group are
// included.
//
// Precondition: p is non-nil.
func (p *Profile) Reader() reqs.StatMap {
	m := reqs.StatMap{
		stats.BreedID:      p.Breed.Num(),
		stats.LevelID:      p.Level,
		stats.ProfessionID: p.Profession.Num(),
		stats.FactionID:    p.Side.Num(),
	}
	for _, group := range []map[string]int{p.Abilities, p.WeaponSkills, p.SpecialSkills, p.DamageModifiers} {
		for name, v := range group {
			if id, ok := stats.SkillByName(name); ok {
				m[id] = v
			}
		}
	}
	m[stats.MeleeInit] = p.Initiatives.Melee
	m[stats.PhysicalInit] = p.Initiatives.Physical
	m[stats.RangedInit] = p.Initiatives.Ranged
	m[stats.AddAllOffense] = p.AAO
	return m
}
