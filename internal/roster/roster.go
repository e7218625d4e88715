// Package roster builds ranked damage tables: it runs the combat analysis
// over a set of candidate weapons and sorts the survivors by damage per
// second.
package roster

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/rubika-tools/aocomp/internal/game/combat"
	"github.com/rubika-tools/aocomp/internal/game/item"
)

// Row is one analyzed weapon in the results table.
type Row struct {
	Item   *item.Item
	Report combat.Report
}

// Options controls a roster build.
type Options struct {
	// Workers bounds parallel weapon analyses; values below 1 mean 1.
	Workers int
	// TopN truncates the sorted table; 0 keeps every row.
	TopN int
}

// Build analyzes every weapon in items under st and returns rows sorted by
// DPS descending, name ascending on ties. Nano programs and items without
// weapon stats are skipped.
//
// Precondition: st must not be nil.
// Postcondition: Row order is deterministic for a given input set.
func Build(ctx context.Context, items []*item.Item, st *combat.InputState, opts Options) ([]Row, error) {
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}

	var weapons []*item.Item
	for _, it := range items {
		if it.IsWeapon() {
			weapons = append(weapons, it)
		}
	}

	rows := make([]Row, len(weapons))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, w := range weapons {
		i, w := i, w
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			rows[i] = Row{Item: w, Report: combat.AnalyzeWeapon(w, st)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Report.DPS != rows[j].Report.DPS {
			return rows[i].Report.DPS > rows[j].Report.DPS
		}
		return rows[i].Item.Name < rows[j].Item.Name
	})

	if opts.TopN > 0 && len(rows) > opts.TopN {
		rows = rows[:opts.TopN]
	}
	return rows, nil
}
