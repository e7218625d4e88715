package combat

import (
	"math"

	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// BaseDamage aggregates the per-hit and 60-second regular attack figures
// for one weapon under one input state.
type BaseDamage struct {
	AttackTime   float64
	RechargeTime float64

	// Per-hit damage after attack rating scaling. MaxDamage is reduced by
	// a tenth of the target AC and never drops below MinDamage; CritDamage
	// ignores the target AC entirely.
	MinDamage  float64
	AvgDamage  float64
	MaxDamage  float64
	CritDamage float64

	// Attack counts inside the window. Crits is the rounded share of
	// attacks promoted to criticals by the crit chance.
	BasicAttacks int
	Crits        int

	// 60-second totals. Each variant lands BasicAttacks regular hits of
	// its kind plus Crits critical hits; Crit60s is the all-crit ceiling.
	Min60s  float64
	Avg60s  float64
	Max60s  float64
	Crit60s float64
}

// CalcBaseDamage computes the regular attack damage of w over the fixed
// window: per-hit figures from the weapon damage stats and the attack
// rating bonus, attack counts from the effective cycle time, and the
// crit/non-crit split from the crit chance.
//
// Precondition: w and st are non-nil.
// Postcondition: MinDamage <= AvgDamage <= MaxDamage <= CritDamage holds
// whenever the weapon's critical bonus is non-negative and the target AC
// reduction applies; BasicAttacks+Crits == floor(Window / cycle time).
func CalcBaseDamage(w *item.Item, st *InputState) BaseDamage {
	speeds := CalcSpeeds(w, st)
	ar := CalcARBonus(w, st)

	minDmg := float64(w.Stat(stats.MinDamage)) * ar
	maxDmg := float64(w.Stat(stats.MaxDamage))*ar - st.TargetAC/10
	if maxDmg < minDmg {
		maxDmg = minDmg
	}
	avgDmg := minDmg + (maxDmg-minDmg)/2
	critDmg := (float64(w.Stat(stats.MaxDamage)) + float64(w.Stat(stats.CriticalBonus))) * ar

	attacks := int(math.Floor(Window / speeds.CycleTime()))
	crits := int(math.Round(float64(attacks) * st.Crit / 100))
	if crits < 0 {
		crits = 0
	}
	if crits > attacks {
		crits = attacks
	}
	basics := attacks - crits

	return BaseDamage{
		AttackTime:   speeds.AttackTime,
		RechargeTime: speeds.RechargeTime,
		MinDamage:    minDmg,
		AvgDamage:    avgDmg,
		MaxDamage:    maxDmg,
		CritDamage:   critDmg,
		BasicAttacks: basics,
		Crits:        crits,
		Min60s:       minDmg*float64(basics) + critDmg*float64(crits),
		Avg60s:       avgDmg*float64(basics) + critDmg*float64(crits),
		Max60s:       maxDmg*float64(basics) + critDmg*float64(crits),
		Crit60s:      critDmg * float64(attacks),
	}
}
