// Package combat implements the weapon damage mathematics. Every function
// is pure and total: absent stats read as zero, unsupported attacks score
// zero, and no weapon and state combination fails to produce a result.
package combat

import "github.com/rubika-tools/aocomp/internal/game/stats"

// DefaultAggDef is the neutral agg/def slider position. At 75 the slider
// neither speeds up nor slows down the weapon.
const DefaultAggDef = 75.0

// Window is the fixed damage window, in seconds, behind every 60-second
// figure the calculator reports.
const Window = 60.0

// MinWeaponTime is the floor, in centiseconds, below which neither attack
// time nor recharge time can be driven.
const MinWeaponTime = 100.0

// Character carries the identity stats of the character being evaluated.
// The damage formulas never read these; requirement checks and report
// headers do.
type Character struct {
	Breed      int
	Profession int
	Level      int
	Side       int
}

// Initiatives holds the character's initiative skill totals. The weapon's
// InitiativeType stat selects which of the three applies.
type Initiatives struct {
	Melee    int
	Physical int
	Ranged   int
}

// Bonuses holds flat combat bonuses that are not skills.
type Bonuses struct {
	// AAO is the add-all-offense total folded into the attack rating.
	AAO int
	// AddDamage is the flat adder from the highest applicable elemental
	// damage modifier.
	AddDamage int
	// Wrangle is carried for display and requirement purposes only; it
	// does not enter the damage formulas.
	Wrangle int
}

// InputState is the complete character-side input to the calculator.
type InputState struct {
	Character Character
	// Crit is the critical hit chance in percent, 0..100.
	Crit float64
	// TargetAC is the armor class of the simulated target.
	TargetAC float64
	// AggDef is the agg/def slider position; DefaultAggDef is neutral.
	AggDef float64
	// WeaponSkills maps each of the seventeen weapon skills to its total.
	WeaponSkills map[stats.ID]int
	// SpecialSkills maps each of the eight special attack skills to its total.
	SpecialSkills map[stats.ID]int
	Initiative    Initiatives
	Bonuses       Bonuses
}

// NewInputState returns an InputState with empty skill maps and the
// neutral agg/def position.
//
// Postcondition: Returns a non-nil state safe to pass to every Calc
// function as-is.
func NewInputState() *InputState {
	return &InputState{
		AggDef:        DefaultAggDef,
		WeaponSkills:  make(map[stats.ID]int),
		SpecialSkills: make(map[stats.ID]int),
	}
}

// WeaponSkill returns the character's total in the given weapon skill.
// Postcondition: Returns 0 for an unknown skill or a nil map.
func (s *InputState) WeaponSkill(id stats.ID) int {
	return s.WeaponSkills[id]
}

// SpecialSkill returns the character's total in the given special attack
// skill.
// Postcondition: Returns 0 for an unknown skill or a nil map.
func (s *InputState) SpecialSkill(id stats.ID) int {
	return s.SpecialSkills[id]
}
