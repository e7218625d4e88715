// Package item defines the game item model shared by the damage calculator,
// the remote data client, and local weapon documents.
package item

import (
	"errors"
	"fmt"

	"github.com/rubika-tools/aocomp/internal/game/stats"
)

// Op is a requirement criterion operator. Comparisons consume a stat and a
// value; And, Or, and Not combine earlier results on the evaluation stack.
type Op int

const (
	OpEqual       Op = 0
	OpLessThan    Op = 1
	OpGreaterThan Op = 2
	OpOr          Op = 3
	OpAnd         Op = 4
	OpNot         Op = 42
)

// Criterion is one element of an item's postfix requirement expression.
type Criterion struct {
	Stat  stats.ID `yaml:"stat" json:"id"`
	Value int      `yaml:"value" json:"value"`
	Op    Op       `yaml:"op" json:"operator"`
}

// Item class identifiers from the game data.
const (
	ItemClassNone    = 0
	ItemClassWeapon  = 1
	ItemClassArmor   = 2
	ItemClassImplant = 3
)

// Item is a single game item at a concrete quality level. Stat lists keep
// the order of the source data; a stat the item does not carry reads as 0.
type Item struct {
	AOID         int          `yaml:"aoid"`
	Name         string       `yaml:"name"`
	QL           int          `yaml:"ql"`
	Description  string       `yaml:"description,omitempty"`
	ItemClass    int          `yaml:"item_class,omitempty"`
	IsNano       bool         `yaml:"is_nano,omitempty"`
	Stats        stats.List   `yaml:"stats,omitempty"`
	AttackStats  stats.List   `yaml:"attack_stats,omitempty"`
	DefenseStats stats.List   `yaml:"defense_stats,omitempty"`
	Requirements []Criterion  `yaml:"requirements,omitempty"`
}

// Stat returns the value of id from the item's plain stat list, 0 if absent.
func (it *Item) Stat(id stats.ID) int {
	return it.Stats.Get(id)
}

// AttackStat returns the value of id from the attack stat list, 0 if absent.
func (it *Item) AttackStat(id stats.ID) int {
	return it.AttackStats.Get(id)
}

// DefenseStat returns the value of id from the defense stat list, 0 if absent.
func (it *Item) DefenseStat(id stats.ID) int {
	return it.DefenseStats.Get(id)
}

// Flags returns the can-flag bits of stat 30.
func (it *Item) Flags() int {
	return it.Stats.Get(stats.CanFlags)
}

// IsWeapon reports whether the item is usable by the damage calculator:
// not a nano program, and carrying both an attack delay and a max damage.
func (it *Item) IsWeapon() bool {
	return !it.IsNano && it.Stats.Has(stats.AttackDelay) && it.Stats.Has(stats.MaxDamage)
}

// Validate checks that the Item satisfies its invariants.
// Precondition: it is non-nil.
// Postcondition: returns nil iff all fields are valid.
func (it *Item) Validate() error {
	var errs []error
	if it.Name == "" {
		errs = append(errs, errors.New("Name must not be empty"))
	}
	if it.QL < 1 || it.QL > 500 {
		errs = append(errs, fmt.Errorf("QL %d outside 1..500", it.QL))
	}
	if it.AOID < 0 {
		errs = append(errs, errors.New("AOID must not be negative"))
	}
	if err := noDuplicateStats(it.Stats); err != nil {
		errs = append(errs, fmt.Errorf("stats: %w", err))
	}
	if err := noDuplicateStats(it.AttackStats); err != nil {
		errs = append(errs, fmt.Errorf("attack stats: %w", err))
	}
	if err := noDuplicateStats(it.DefenseStats); err != nil {
		errs = append(errs, fmt.Errorf("defense stats: %w", err))
	}
	if len(errs) > 0 {
		return fmt.Errorf("item validation failed: %v", errs)
	}
	return nil
}

func noDuplicateStats(l stats.List) error {
	seen := make(map[stats.ID]bool, len(l))
	for _, e := range l {
		if seen[e.Stat] {
			return fmt.Errorf("duplicate stat %d", e.Stat)
		}
		seen[e.Stat] = true
	}
	return nil
}
