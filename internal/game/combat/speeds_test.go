package combat_test

import (
	"testing"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func speedWeapon(initType stats.ID) *item.Item {
	w := &item.Item{
		Name: "Speed Test Gun",
		QL:   100,
		Stats: stats.List{
			{Stat: stats.AttackDelay, Value: 200},
			{Stat: stats.RechargeDelay, Value: 300},
		},
	}
	if initType != 0 {
		w.Stats = w.Stats.Set(stats.InitiativeType, int(initType))
	}
	return w
}

func TestCalcSpeeds_NeutralSlider(t *testing.T) {
	st := combat.NewInputState()
	got := combat.CalcSpeeds(speedWeapon(0), st)
	assert.Equal(t, 200.0, got.AttackTime)
	assert.Equal(t, 300.0, got.RechargeTime)
	assert.Equal(t, 5.0, got.CycleTime()) // (200+300)/100
}

func TestCalcSpeeds_SliderShift(t *testing.T) {
	tests := []struct {
		aggdef       float64
		wantAttack   float64
		wantRecharge float64
	}{
		{100, 175, 275}, // full agg: both times drop by 25
		{75, 200, 300},  // neutral
		{0, 275, 375},   // full def: both times rise by 75
	}
	for _, tc := range tests {
		st := combat.NewInputState()
		st.AggDef = tc.aggdef
		got := combat.CalcSpeeds(speedWeapon(0), st)
		assert.Equal(t, tc.wantAttack, got.AttackTime, "aggdef=%v", tc.aggdef)
		assert.Equal(t, tc.wantRecharge, got.RechargeTime, "aggdef=%v", tc.aggdef)
	}
}

func TestCalcSpeeds_InitiativeSelectedByWeapon(t *testing.T) {
	st := combat.NewInputState()
	st.Initiative = combat.Initiatives{Melee: 1200, Physical: 900, Ranged: 600}

	// Ranged weapon: attack 200 - 600/6 = 100, recharge 300 - 600/3 = 100.
	got := combat.CalcSpeeds(speedWeapon(stats.RangedInit), st)
	assert.Equal(t, 100.0, got.AttackTime)
	assert.Equal(t, 100.0, got.RechargeTime)

	// Physical weapon: attack 200 - 150 = 100 (floored from 50), recharge 300 - 300 = 100.
	got = combat.CalcSpeeds(speedWeapon(stats.PhysicalInit), st)
	assert.Equal(t, 100.0, got.AttackTime)
	assert.Equal(t, 100.0, got.RechargeTime)
}

func TestCalcSpeeds_NoInitiativeTypeIgnoresInitiative(t *testing.T) {
	st := combat.NewInputState()
	st.Initiative = combat.Initiatives{Melee: 3000, Physical: 3000, Ranged: 3000}
	got := combat.CalcSpeeds(speedWeapon(0), st)
	assert.Equal(t, 200.0, got.AttackTime)
	assert.Equal(t, 300.0, got.RechargeTime)
}

func TestCalcSpeeds_NanoInitiativeNeverApplies(t *testing.T) {
	st := combat.NewInputState()
	st.Initiative = combat.Initiatives{Melee: 3000, Physical: 3000, Ranged: 3000}
	got := combat.CalcSpeeds(speedWeapon(stats.NanoCInit), st)
	assert.Equal(t, 200.0, got.AttackTime)
	assert.Equal(t, 300.0, got.RechargeTime)
}

func TestCalcSpeeds_FlooredAtMinimum(t *testing.T) {
	st := combat.NewInputState()
	st.AggDef = 100
	st.Initiative = combat.Initiatives{Ranged: 6000}
	got := combat.CalcSpeeds(speedWeapon(stats.RangedInit), st)
	assert.Equal(t, combat.MinWeaponTime, got.AttackTime)
	assert.Equal(t, combat.MinWeaponTime, got.RechargeTime)
}

func TestCalcSpeeds_Property_NeverBelowFloor(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := combat.NewInputState()
		st.AggDef = float64(rapid.IntRange(0, 100).Draw(rt, "aggdef"))
		st.Initiative.Ranged = rapid.IntRange(0, 10000).Draw(rt, "init")
		w := speedWeapon(stats.RangedInit)
		got := combat.CalcSpeeds(w, st)
		assert.GreaterOrEqual(rt, got.AttackTime, combat.MinWeaponTime)
		assert.GreaterOrEqual(rt, got.RechargeTime, combat.MinWeaponTime)
	})
}

func TestCalcSpeeds_Property_MoreInitiativeNeverSlower(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo := rapid.IntRange(0, 5000).Draw(rt, "lo")
		hi := lo + rapid.IntRange(0, 5000).Draw(rt, "extra")
		w := speedWeapon(stats.PhysicalInit)

		slow := combat.NewInputState()
		slow.Initiative.Physical = lo
		fast := combat.NewInputState()
		fast.Initiative.Physical = hi

		assert.GreaterOrEqual(rt,
			combat.CalcSpeeds(w, slow).CycleTime(),
			combat.CalcSpeeds(w, fast).CycleTime())
	})
}
