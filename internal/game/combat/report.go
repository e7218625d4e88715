package combat

import "github.com/rubika-tools/aocomp/internal/game/item"

// Report is the full damage analysis of one weapon under one input state.
type Report struct {
	Base     BaseDamage
	Specials SpecialResult
	ARBonus  float64
	Total60s float64
	DPS      float64
}

// AnalyzeWeapon runs the full pipeline for one weapon. Speeds and the
// attack rating feed the regular attack figures, supported specials are
// scored on top, and the per-second figure is derived exactly once from
// the 60-second total.
//
// Precondition: w and st are non-nil.
// Postcondition: Total60s == Base.Avg60s + Specials.Total and
// DPS == Total60s / Window.
func AnalyzeWeapon(w *item.Item, st *InputState) Report {
	base := CalcBaseDamage(w, st)
	specials := CalcSpecials(w, st, base)
	total := base.Avg60s + specials.Total
	return Report{
		Base:     base,
		Specials: specials,
		ARBonus:  CalcARBonus(w, st),
		Total60s: total,
		DPS:      DPS(total),
	}
}

// DPS converts a 60-second damage total to damage per second.
func DPS(total60s float64) float64 {
	return total60s / Window
}
