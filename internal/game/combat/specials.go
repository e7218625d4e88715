package combat

import (
	"math"

	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Hard caps on a single aimed or sneak hit.
const (
	AimedShotCap   = 13000.0
	SneakAttackCap = 13000.0
)

// SpecialResult holds the 60-second damage contribution of every special
// attack plus their sum. Attacks the weapon does not support stay zero.
type SpecialResult struct {
	FlingShot   float64
	Burst       float64
	FullAuto    float64
	AimedShot   float64
	FastAttack  float64
	Brawl       float64
	SneakAttack float64
	Dimach      float64
	Total       float64
}

// SupportedSpecials returns the special attacks declared by the weapon's
// can flags, in can-flag bit order. Unrelated bits are ignored.
//
// Precondition: w is non-nil.
func SupportedSpecials(w *item.Item) []stats.Special {
	flags := w.Flags()
	var out []stats.Special
	for _, s := range stats.Specials() {
		if flags&s.Flag() != 0 {
			out = append(out, s)
		}
	}
	return out
}

// CalcFlingShot returns the 60-second Fling Shot damage of w: one average
// hit every 16×delay/100 − skill/100 seconds, never more often than every
// 6 + delay/100 seconds.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
func CalcFlingShot(w *item.Item, st *InputState, base BaseDamage) float64 {
	delay := float64(w.Stat(stats.AttackDelay))
	skill := float64(st.SpecialSkill(stats.FlingShotSkill))
	cycle := delay/100*16 - skill/100
	if floor := 6 + delay/100; cycle < floor {
		cycle = floor
	}
	return base.AvgDamage * math.Floor(Window/cycle)
}

// CalcBurst returns the 60-second Burst damage of w: three average hits
// every delay/100×20 + burstRecharge/100 − skill/25 seconds, never more
// often than every 8 + delay/100 seconds.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
func CalcBurst(w *item.Item, st *InputState, base BaseDamage) float64 {
	delay := float64(w.Stat(stats.AttackDelay))
	recharge := float64(w.Stat(stats.BurstRecharge))
	skill := float64(st.SpecialSkill(stats.BurstSkill))
	cycle := delay/100*20 + recharge/100 - skill/25
	if floor := 8 + delay/100; cycle < floor {
		cycle = floor
	}
	return base.AvgDamage * 3 * math.Floor(Window/cycle)
}

// CalcFullAuto returns the 60-second Full Auto damage of w. One sweep
// empties the clip at average damage per round, soft capped, and cycles
// every delay/100×40 + rechargeDelay/100×2 + fullAutoRecharge/100 −
// skill/25 seconds, never more often than every 10 + delay/100 seconds.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
func CalcFullAuto(w *item.Item, st *InputState, base BaseDamage) float64 {
	delay := float64(w.Stat(stats.AttackDelay))
	recharge := float64(w.Stat(stats.RechargeDelay))
	faRecharge := float64(w.Stat(stats.FullAutoRecharge))
	skill := float64(st.SpecialSkill(stats.FullAutoSkill))
	cycle := delay/100*40 + recharge/100*2 + faRecharge/100 - skill/25
	if floor := 10 + delay/100; cycle < floor {
		cycle = floor
	}
	sweep := fullAutoCap(base.AvgDamage * float64(w.Stat(stats.ClipSize)))
	return sweep * math.Floor(Window/cycle)
}

// fullAutoCap applies the two-tier soft cap to one full-auto sweep: the
// raw total past 10000 is halved, and the halved remainder past 1500 is
// halved again.
func fullAutoCap(raw float64) float64 {
	if raw <= 10000 {
		return raw
	}
	half := (raw - 10000) / 2
	if half <= 1500 {
		return 10000 + half
	}
	return 11500 + (half-1500)/2
}

// CalcAimedShot returns the Aimed Shot damage of w. A single aimed shot
// is the attack-rating-scaled weapon maximum plus the flat add-damage
// bonus, multiplied by skill/95 and hard capped; the capped figure is
// already the 60-second contribution.
//
// Precondition: w and st are non-nil.
// Postcondition: Returns a value in [0, AimedShotCap].
func CalcAimedShot(w *item.Item, st *InputState, _ BaseDamage) float64 {
	skill := float64(st.SpecialSkill(stats.AimedShotSkill))
	ar := CalcARBonus(w, st)
	dmg := (float64(w.Stat(stats.MaxDamage))*ar + float64(st.Bonuses.AddDamage)) * skill / 95
	if dmg > AimedShotCap {
		dmg = AimedShotCap
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// CalcFastAttack returns the 60-second Fast Attack damage of w: one
// average hit every 15×delay/100 − skill/100 seconds, never more often
// than every 6 + delay/100 seconds.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
func CalcFastAttack(w *item.Item, st *InputState, base BaseDamage) float64 {
	delay := float64(w.Stat(stats.AttackDelay))
	skill := float64(st.SpecialSkill(stats.FastAttackSkill))
	cycle := delay/100*15 - skill/100
	if floor := 6 + delay/100; cycle < floor {
		cycle = floor
	}
	return base.AvgDamage * math.Floor(Window/cycle)
}

// CalcSneakAttack returns the Sneak Attack damage of w: the average hit
// scaled by round(skill/95) and hard capped. As with Aimed Shot, the
// capped figure is the 60-second contribution.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
// Postcondition: Returns a value in [0, SneakAttackCap].
func CalcSneakAttack(w *item.Item, st *InputState, base BaseDamage) float64 {
	skill := float64(st.SpecialSkill(stats.SneakAttackSkill))
	dmg := base.AvgDamage * math.Round(skill/95)
	if dmg > SneakAttackCap {
		dmg = SneakAttackCap
	}
	if dmg < 0 {
		dmg = 0
	}
	return dmg
}

// CalcBrawl returns the Brawl contribution. Brawl damage is not modeled;
// the stub keeps the attack listed in reports and sums as zero.
func CalcBrawl(_ *item.Item, _ *InputState, _ BaseDamage) float64 { return 0 }

// CalcDimach returns the Dimach contribution. Dimach damage is not
// modeled; the stub keeps the attack listed in reports and sums as zero.
func CalcDimach(_ *item.Item, _ *InputState, _ BaseDamage) float64 { return 0 }

// CalcSpecials scores every special attack the weapon supports and sums
// them. Unsupported attacks contribute exactly zero.
//
// Precondition: w and st are non-nil; base was computed from the same pair.
// Postcondition: Total equals the sum of the eight per-attack fields.
func CalcSpecials(w *item.Item, st *InputState, base BaseDamage) SpecialResult {
	var res SpecialResult
	for _, s := range SupportedSpecials(w) {
		switch s {
		case stats.SpecialBurst:
			res.Burst = CalcBurst(w, st, base)
		case stats.SpecialFlingShot:
			res.FlingShot = CalcFlingShot(w, st, base)
		case stats.SpecialFullAuto:
			res.FullAuto = CalcFullAuto(w, st, base)
		case stats.SpecialAimedShot:
			res.AimedShot = CalcAimedShot(w, st, base)
		case stats.SpecialSneakAttack:
			res.SneakAttack = CalcSneakAttack(w, st, base)
		case stats.SpecialFastAttack:
			res.FastAttack = CalcFastAttack(w, st, base)
		case stats.SpecialBrawl:
			res.Brawl = CalcBrawl(w, st, base)
		case stats.SpecialDimach:
			res.Dimach = CalcDimach(w, st, base)
		}
	}
	res.Total = res.FlingShot + res.Burst + res.FullAuto + res.AimedShot +
		res.FastAttack + res.Brawl + res.SneakAttack + res.Dimach
	return res
}
