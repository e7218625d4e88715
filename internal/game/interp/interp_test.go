package interp_test

import (
	"testing"

	"github.com/rubika-tools/aocomp/internal/game/interp"
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func variantPair() (*item.Item, *item.Item) {
	lo := &item.Item{
		AOID: 1000,
		Name: "Scaling Rifle",
		QL:   100,
		Stats: stats.List{
			{Stat: stats.CanFlags, Value: stats.CanCarry | stats.CanWear | stats.CanAimedShot},
			{Stat: stats.MinDamage, Value: 100},
			{Stat: stats.MaxDamage, Value: 200},
			{Stat: stats.AttackDelay, Value: 200},
			{Stat: stats.CriticalBonus, Value: 10},
		},
		AttackStats: stats.List{{Stat: stats.Rifle, Value: 100}},
		Requirements: []item.Criterion{
			{Stat: stats.Rifle, Value: 300, Op: item.OpGreaterThan},
			{Stat: stats.LevelID, Value: 50, Op: item.OpGreaterThan},
			{Stat: 0, Value: 0, Op: item.OpAnd},
		},
	}
	hi := &item.Item{
		AOID: 1001,
		Name: "Scaling Rifle",
		QL:   200,
		Stats: stats.List{
			{Stat: stats.CanFlags, Value: stats.CanCarry | stats.CanWear | stats.CanAimedShot},
			{Stat: stats.MinDamage, Value: 200},
			{Stat: stats.MaxDamage, Value: 400},
			{Stat: stats.AttackDelay, Value: 200},
			{Stat: stats.CriticalBonus, Value: 25},
		},
		AttackStats: stats.List{{Stat: stats.Rifle, Value: 100}},
		Requirements: []item.Criterion{
			{Stat: stats.Rifle, Value: 600, Op: item.OpGreaterThan},
			{Stat: stats.LevelID, Value: 100, Op: item.OpGreaterThan},
			{Stat: 0, Value: 0, Op: item.OpAnd},
		},
	}
	return lo, hi
}

func TestInterpolate_AtEndpoints(t *testing.T) {
	lo, hi := variantPair()

	got, err := interp.Interpolate(lo, hi, 100)
	require.NoError(t, err)
	assert.Equal(t, lo.Stats, got.Stats)
	assert.Equal(t, 100, got.QL)

	got, err = interp.Interpolate(lo, hi, 200)
	require.NoError(t, err)
	assert.Equal(t, 200, got.Stat(stats.MinDamage))
	assert.Equal(t, 400, got.Stat(stats.MaxDamage))
	assert.Equal(t, 25, got.Stat(stats.CriticalBonus))
}

func TestInterpolate_Midpoint(t *testing.T) {
	lo, hi := variantPair()
	got, err := interp.Interpolate(lo, hi, 150)
	require.NoError(t, err)

	assert.Equal(t, 150, got.QL)
	assert.Equal(t, 150, got.Stat(stats.MinDamage))   // 100 + (200-100)*0.5
	assert.Equal(t, 300, got.Stat(stats.MaxDamage))   // 200 + (400-200)*0.5
	assert.Equal(t, 200, got.Stat(stats.AttackDelay)) // flat across the pair
	assert.Equal(t, 18, got.Stat(stats.CriticalBonus)) // 17.5 rounds up
}

func TestInterpolate_RequirementsScale(t *testing.T) {
	lo, hi := variantPair()
	got, err := interp.Interpolate(lo, hi, 150)
	require.NoError(t, err)

	require.Len(t, got.Requirements, 3)
	assert.Equal(t, 450, got.Requirements[0].Value) // rifle 300..600
	assert.Equal(t, 75, got.Requirements[1].Value)  // level 50..100
	assert.Equal(t, item.OpAnd, got.Requirements[2].Op)
}

func TestInterpolate_FlagsComeFromLowVariant(t *testing.T) {
	lo, hi := variantPair()
	hi.Stats = hi.Stats.Set(stats.CanFlags, stats.CanCarry) // corrupt the high variant
	got, err := interp.Interpolate(lo, hi, 199)
	require.NoError(t, err)
	assert.Equal(t, lo.Stat(stats.CanFlags), got.Stat(stats.CanFlags))
}

func TestInterpolate_ClampsTarget(t *testing.T) {
	lo, hi := variantPair()

	got, err := interp.Interpolate(lo, hi, 1)
	require.NoError(t, err)
	assert.Equal(t, 100, got.QL)

	got, err = interp.Interpolate(lo, hi, 400)
	require.NoError(t, err)
	assert.Equal(t, 200, got.QL)
	assert.Equal(t, 400, got.Stat(stats.MaxDamage))
}

func TestInterpolate_SingleVariant(t *testing.T) {
	lo, _ := variantPair()
	got, err := interp.Interpolate(lo, lo, 100)
	require.NoError(t, err)
	assert.Equal(t, lo.Stats, got.Stats)
}

func TestInterpolate_Errors(t *testing.T) {
	lo, hi := variantPair()

	_, err := interp.Interpolate(hi, lo, 150) // inverted order
	assert.Error(t, err)

	other := &item.Item{Name: "Different Gun", QL: 300}
	_, err = interp.Interpolate(lo, other, 150)
	assert.Error(t, err)
}

func TestInterpolate_MismatchedRequirementsKeepLow(t *testing.T) {
	lo, hi := variantPair()
	hi.Requirements = hi.Requirements[:2] // structurally different stack
	got, err := interp.Interpolate(lo, hi, 150)
	require.NoError(t, err)
	assert.Equal(t, lo.Requirements, got.Requirements)
}

func TestInterpolate_Property_ValuesStayBounded(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo, hi := variantPair()
		ql := rapid.IntRange(100, 200).Draw(rt, "ql")
		got, err := interp.Interpolate(lo, hi, ql)
		require.NoError(rt, err)

		for _, id := range []stats.ID{stats.MinDamage, stats.MaxDamage, stats.CriticalBonus} {
			v := got.Stat(id)
			assert.GreaterOrEqual(rt, v, lo.Stat(id), "stat=%d ql=%d", id, ql)
			assert.LessOrEqual(rt, v, hi.Stat(id), "stat=%d ql=%d", id, ql)
		}
	})
}

func TestInterpolate_Property_StatSetPreserved(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		lo, hi := variantPair()
		ql := rapid.IntRange(1, 300).Draw(rt, "ql")
		got, err := interp.Interpolate(lo, hi, ql)
		require.NoError(rt, err)

		require.Len(rt, got.Stats, len(lo.Stats))
		for i := range lo.Stats {
			assert.Equal(rt, lo.Stats[i].Stat, got.Stats[i].Stat)
		}
	})
}
