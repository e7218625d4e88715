// Package interp derives the stats of an item at an arbitrary quality
// level from the surrounding pair of database variants.
package interp

import (
	"fmt"
	"math"

	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Stats that name kinds rather than magnitudes. These are copied from the
// low variant instead of being scaled.
var flagStats = map[stats.ID]bool{
	stats.CanFlags:       true,
	stats.DamageType:     true,
	stats.InitiativeType: true,
}

// Interpolate produces the item at ql between the lo and hi variants of
// the same item line. Numeric stats scale linearly and round to nearest;
// flag-like stats, attack and defense weights, and identity fields come
// from the low variant. A target outside [lo.QL, hi.QL] is clamped.
//
// Precondition: lo and hi are non-nil.
// Postcondition: The result carries exactly the stat identifiers of lo,
// in lo's order.
func Interpolate(lo, hi *item.Item, ql int) (*item.Item, error) {
	if lo.Name != hi.Name {
		return nil, fmt.Errorf("interpolating across different items: %q vs %q", lo.Name, hi.Name)
	}
	if lo.QL > hi.QL {
		return nil, fmt.Errorf("variant order inverted: QL %d above QL %d", lo.QL, hi.QL)
	}
	if ql < lo.QL {
		ql = lo.QL
	}
	if ql > hi.QL {
		ql = hi.QL
	}

	factor := 0.0
	if hi.QL > lo.QL {
		factor = float64(ql-lo.QL) / float64(hi.QL-lo.QL)
	}

	out := &item.Item{
		AOID:         lo.AOID,
		Name:         lo.Name,
		QL:           ql,
		Description:  lo.Description,
		ItemClass:    lo.ItemClass,
		IsNano:       lo.IsNano,
		Stats:        lerpList(lo.Stats, hi.Stats, factor),
		AttackStats:  append(stats.List(nil), lo.AttackStats...),
		DefenseStats: append(stats.List(nil), lo.DefenseStats...),
		Requirements: lerpRequirements(lo.Requirements, hi.Requirements, factor),
	}
	return out, nil
}

func lerpList(lo, hi stats.List, factor float64) stats.List {
	out := make(stats.List, 0, len(lo))
	for _, e := range lo {
		v := e.Value
		if !flagStats[e.Stat] && hi.Has(e.Stat) {
			v = lerp(e.Value, hi.Get(e.Stat), factor)
		}
		out = append(out, stats.Entry{Stat: e.Stat, Value: v})
	}
	return out
}

// lerpRequirements scales criterion thresholds when the two variants carry
// structurally identical requirement stacks; otherwise the low variant's
// stack is kept as-is.
func lerpRequirements(lo, hi []item.Criterion, factor float64) []item.Criterion {
	out := make([]item.Criterion, len(lo))
	copy(out, lo)
	if len(lo) != len(hi) {
		return out
	}
	for i := range lo {
		if lo[i].Stat != hi[i].Stat || lo[i].Op != hi[i].Op {
			return out
		}
	}
	for i := range out {
		if out[i].Op == item.OpEqual || out[i].Op == item.OpLessThan || out[i].Op == item.OpGreaterThan {
			out[i].Value = lerp(lo[i].Value, hi[i].Value, factor)
		}
	}
	return out
}

func lerp(lo, hi int, factor float64) int {
	return int(math.Round(float64(lo) + float64(hi-lo)*factor))
}
