package combat

import (
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Speeds is the effective weapon timing in centiseconds.
type Speeds struct {
	AttackTime   float64
	RechargeTime float64
}

// CycleTime returns the full attack cycle length in seconds.
//
// Postcondition: Returns > 0 for speeds produced by CalcSpeeds.
func (s Speeds) CycleTime() float64 {
	return (s.AttackTime + s.RechargeTime) / 100
}

// CalcSpeeds computes the effective attack and recharge times of w under
// st. The agg/def slider shifts both times linearly around its neutral
// position, and the initiative named by the weapon's InitiativeType stat
// reduces attack time by a sixth and recharge time by a third of its total.
//
// Precondition: w and st are non-nil.
// Postcondition: Neither returned time is below MinWeaponTime.
func CalcSpeeds(w *item.Item, st *InputState) Speeds {
	attack := float64(w.Stat(stats.AttackDelay))
	recharge := float64(w.Stat(stats.RechargeDelay))

	shift := st.AggDef - DefaultAggDef
	attack -= shift
	recharge -= shift

	init := float64(initiativeFor(w, st))
	attack -= init / 6
	recharge -= init / 3

	if attack < MinWeaponTime {
		attack = MinWeaponTime
	}
	if recharge < MinWeaponTime {
		recharge = MinWeaponTime
	}
	return Speeds{AttackTime: attack, RechargeTime: recharge}
}

// initiativeFor selects the initiative total named by the weapon's
// InitiativeType stat. Weapons without one, or with a type outside the
// three weapon initiatives, get no initiative benefit.
func initiativeFor(w *item.Item, st *InputState) int {
	switch stats.ID(w.Stat(stats.InitiativeType)) {
	case stats.MeleeInit:
		return st.Initiative.Melee
	case stats.RangedInit:
		return st.Initiative.Ranged
	case stats.PhysicalInit:
		return st.Initiative.Physical
	default:
		return 0
	}
}
