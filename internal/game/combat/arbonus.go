package combat

import (
	"math"

	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// AttackSkill picks the weapon skill entry that drives the attack rating:
// the first attack stat weighted at 100 percent or more, otherwise the
// heaviest entry.
//
// Precondition: w is non-nil.
// Postcondition: Returns false iff the weapon carries no attack stats.
func AttackSkill(w *item.Item) (stats.ID, bool) {
	if len(w.AttackStats) == 0 {
		return 0, false
	}
	best := w.AttackStats[0]
	for _, e := range w.AttackStats {
		if e.Value >= 100 {
			return e.Stat, true
		}
		if e.Value > best.Value {
			best = e
		}
	}
	return best.Stat, true
}

// CalcARBonus computes the attack rating multiplier for w under st. The
// relevant weapon skill plus add-all-offense scales in three tiers: each
// of the first 1000 points adds 1/400, and every point past 1000 adds
// 1/1200. A weapon declaring MaxBeneficialSkill clamps the total first.
//
// Precondition: w and st are non-nil.
// Postcondition: Returns >= 1.0, non-decreasing in the skill total.
func CalcARBonus(w *item.Item, st *InputState) float64 {
	id, ok := AttackSkill(w)
	if !ok {
		return 1.0
	}
	total := float64(st.WeaponSkill(id) + st.Bonuses.AAO)
	if limit := w.Stat(stats.MaxBeneficialSkill); limit > 0 && total > float64(limit) {
		total = float64(limit)
	}
	if total < 0 {
		total = 0
	}
	bonus := 1.0 + math.Min(total, 1000)/400
	if total > 1000 {
		bonus += (total - 1000) / 1200
	}
	return bonus
}
