package combat_test

import (
	"testing"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestAnalyzeWeapon_GoldenPistol(t *testing.T) {
	w, st := goldenPistol()
	got := combat.AnalyzeWeapon(w, st)

	assert.Equal(t, 2.5, got.ARBonus)
	assert.Equal(t, 4500.0, got.Base.Avg60s)
	assert.Zero(t, got.Specials.Total) // no special flags on the golden pistol
	assert.Equal(t, 4500.0, got.Total60s)
	assert.Equal(t, 75.0, got.DPS)
}

func TestAnalyzeWeapon_FullCritDoublesOutput(t *testing.T) {
	w, st := goldenPistol()
	st.Crit = 100
	got := combat.AnalyzeWeapon(w, st)
	assert.Equal(t, 9000.0, got.Total60s)
	assert.Equal(t, 150.0, got.DPS)
}

func TestAnalyzeWeapon_SpecialsAddIn(t *testing.T) {
	w, st := goldenPistol()
	w.Stats = w.Stats.Set(stats.CanFlags, stats.CanCarry|stats.CanWear|stats.CanFlingShot)
	st.SpecialSkills[stats.FlingShotSkill] = 1000

	// fling cycle: raw 16*2 - 10 = 22s vs floor 8s -> 22s -> 2 flings * 375
	got := combat.AnalyzeWeapon(w, st)
	assert.Equal(t, 750.0, got.Specials.FlingShot)
	assert.Equal(t, 5250.0, got.Total60s)
	assert.Equal(t, 87.5, got.DPS)
}

func TestDPS(t *testing.T) {
	assert.Equal(t, 75.0, combat.DPS(4500))
	assert.Zero(t, combat.DPS(0))
}

func TestAnalyzeWeapon_Property_TotalsAgree(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		w, st := goldenPistol()
		flags := 0
		if rapid.Bool().Draw(rt, "fling") {
			flags |= stats.CanFlingShot
		}
		if rapid.Bool().Draw(rt, "aimed") {
			flags |= stats.CanAimedShot
		}
		w.Stats = w.Stats.Set(stats.CanFlags, flags)
		st.Crit = float64(rapid.IntRange(0, 100).Draw(rt, "crit"))
		st.SpecialSkills[stats.FlingShotSkill] = rapid.IntRange(0, 2000).Draw(rt, "fling_skill")
		st.SpecialSkills[stats.AimedShotSkill] = rapid.IntRange(0, 2000).Draw(rt, "aimed_skill")

		got := combat.AnalyzeWeapon(w, st)
		assert.Equal(rt, got.Base.Avg60s+got.Specials.Total, got.Total60s)
		assert.InDelta(rt, got.Total60s, got.DPS*combat.Window, 1e-9)
	})
}
