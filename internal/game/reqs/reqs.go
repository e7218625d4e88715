// Package reqs evaluates item requirement expressions against a character.
//
// Requirements arrive as postfix stacks: comparison criteria push an
// outcome, and And, Or, and Not combine outcomes already on the stack.
package reqs

import (
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// StatReader resolves a character's current value for a stat identifier.
type StatReader interface {
	StatValue(id stats.ID) int
}

// StatMap is a StatReader backed by a plain map. Missing stats read as 0.
type StatMap map[stats.ID]int

// StatValue returns the mapped value for id, 0 if absent.
func (m StatMap) StatValue(id stats.ID) int { return m[id] }

// Check is the outcome of a single comparison criterion.
type Check struct {
	Stat stats.ID
	Op   item.Op
	Need int
	Have int
	Met  bool
}

// Result is the outcome of evaluating a full requirement stack.
type Result struct {
	Met    bool
	Checks []Check
}

// Evaluate runs a postfix requirement expression against r. An empty
// expression is met. Several outcomes left on the stack must all hold, as
// item data regularly omits trailing conjunctions. A malformed stack or
// an unknown operator makes the whole expression unmet; Evaluate never
// panics on bad data.
//
// Postcondition: Checks holds one entry per comparison criterion, in
// expression order, regardless of the overall outcome.
func Evaluate(criteria []item.Criterion, r StatReader) Result {
	if len(criteria) == 0 {
		return Result{Met: true}
	}
	var res Result
	var stack []bool
	for _, c := range criteria {
		switch c.Op {
		case item.OpEqual, item.OpLessThan, item.OpGreaterThan:
			have := r.StatValue(c.Stat)
			met := compare(have, c.Value, c.Op)
			res.Checks = append(res.Checks, Check{
				Stat: c.Stat, Op: c.Op, Need: c.Value, Have: have, Met: met,
			})
			stack = append(stack, met)
		case item.OpAnd, item.OpOr:
			if len(stack) < 2 {
				return res
			}
			a, b := stack[len(stack)-2], stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if c.Op == item.OpAnd {
				stack[len(stack)-1] = a && b
			} else {
				stack[len(stack)-1] = a || b
			}
		case item.OpNot:
			if len(stack) < 1 {
				return res
			}
			stack[len(stack)-1] = !stack[len(stack)-1]
		default:
			return res
		}
	}
	res.Met = true
	for _, v := range stack {
		res.Met = res.Met && v
	}
	return res
}

// CheckItem evaluates the item's own requirement stack against r.
func CheckItem(it *item.Item, r StatReader) Result {
	return Evaluate(it.Requirements, r)
}

func compare(have, need int, op item.Op) bool {
	switch op {
	case item.OpEqual:
		return have == need
	case item.OpLessThan:
		return have < need
	case item.OpGreaterThan:
		return have > need
	default:
		return false
	}
}
