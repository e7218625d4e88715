// Package main provides the weapon comparison command. It loads a character
// profile, applies buffs and their Lua hooks, gathers candidate weapons from
// the item API or a local directory, and prints a damage roster.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rubika-tools/aocomp/internal/aodb"
	"github.com/rubika-tools/aocomp/internal/buffs"
	"github.com/rubika-tools/aocomp/internal/config"
	"github.com/rubika-tools/aocomp/internal/game/interp"
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/game/reqs"
	"github.com/rubika-tools/aocomp/internal/observability"
	"github.com/rubika-tools/aocomp/internal/output"
	"github.com/rubika-tools/aocomp/internal/profile"
	"github.com/rubika-tools/aocomp/internal/roster"
	"github.com/rubika-tools/aocomp/internal/scripting"
	"github.com/rubika-tools/aocomp/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	profileArg := flag.String("profile", "", "profile name in the database or path to a profile YAML file")
	weaponsDir := flag.String("weapons-dir", "", "path to a local weapon YAML directory; empty = search the item API")
	name := flag.String("name", "", "item name filter for the API search")
	minQL := flag.Int("min-ql", 0, "minimum quality level for the API search")
	maxQL := flag.Int("max-ql", 0, "maximum quality level for the API search")
	targetQL := flag.Int("ql", 0, "interpolate each item line to this quality level")
	buffIDs := flag.String("buffs", "", "comma-separated buff ids to apply")
	buffsDir := flag.String("buffs-dir", "content/buffs", "path to buff YAML definitions directory")
	scriptsDir := flag.String("scripts-dir", "content/buffs", "directory of Lua buff hooks; empty = scripting disabled")
	targetAC := flag.Float64("target-ac", -1, "target armor class override")
	crit := flag.Float64("crit", -1, "critical chance override, percent")
	aggDef := flag.Float64("aggdef", -1, "agg/def slider override")
	top := flag.Int("top", 0, "show only the top N weapons; 0 = config default")
	xlsx := flag.Bool("xlsx", false, "also export the roster to a spreadsheet")
	flag.Parse()

	if *profileArg == "" {
		fmt.Fprintln(os.Stderr, "usage: fite -profile <name|file.yaml> [-weapons-dir <dir> | -name <filter>] [flags]")
		os.Exit(1)
	}

	ctx := context.Background()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	prof, err := loadProfile(ctx, cfg, *profileArg)
	if err != nil {
		logger.Fatal("loading profile", zap.String("profile", *profileArg), zap.Error(err))
	}
	st := prof.InputState()

	if *targetAC >= 0 {
		st.TargetAC = *targetAC
	}
	if *crit >= 0 {
		st.Crit = *crit
	}
	if *aggDef >= 0 {
		st.AggDef = *aggDef
	}

	if *buffIDs != "" {
		registry, err := buffs.LoadDirectory(*buffsDir)
		if err != nil {
			logger.Fatal("loading buff definitions", zap.String("dir", *buffsDir), zap.Error(err))
		}
		defs, err := registry.Resolve(splitIDs(*buffIDs))
		if err != nil {
			logger.Fatal("resolving buffs", zap.Error(err))
		}
		buffs.Apply(defs, st)
		logger.Info("buffs applied", zap.Int("count", len(defs)))

		if *scriptsDir != "" {
			mgr := scripting.NewManager(logger, scripting.DefaultInstructionLimit)
			if err := mgr.LoadDirectory(*scriptsDir); err != nil {
				logger.Fatal("loading buff scripts", zap.String("dir", *scriptsDir), zap.Error(err))
			}
			for _, def := range defs {
				if def.Script != "" {
					mgr.Apply(def.Script, st)
				}
			}
			mgr.Close()
		}
	}

	var source roster.Source
	if *weaponsDir != "" {
		source = roster.NewDirSource(*weaponsDir)
	} else {
		client := aodb.NewClient(cfg.API, logger)
		source = roster.NewAPISource(client, aodb.ItemQuery{
			Name:      *name,
			MinQL:     *minQL,
			MaxQL:     *maxQL,
			ItemClass: item.ItemClassWeapon,
		})
	}

	fetchStart := time.Now()
	items, err := source.Fetch(ctx)
	if err != nil {
		logger.Fatal("fetching weapons", zap.Error(err))
	}
	logger.Info("weapons fetched",
		zap.Int("count", len(items)),
		zap.Duration("elapsed", time.Since(fetchStart)),
	)

	if *targetQL > 0 {
		items = interpolateLines(items, *targetQL, logger)
	}

	topN := cfg.Roster.Top
	if *top > 0 {
		topN = *top
	}
	rows, err := roster.Build(ctx, items, st, roster.Options{
		Workers: cfg.Roster.Workers,
		TopN:    topN,
	})
	if err != nil {
		logger.Fatal("building roster", zap.Error(err))
	}

	if err := output.PrintTable(os.Stdout, rows); err != nil {
		logger.Fatal("printing roster", zap.Error(err))
	}

	reader := prof.Reader()
	var unmet []string
	for _, r := range rows {
		if res := reqs.CheckItem(r.Item, reader); !res.Met {
			unmet = append(unmet, r.Item.Name)
		}
	}
	if len(unmet) > 0 {
		fmt.Printf("\nrequirements not met: %s\n", strings.Join(unmet, ", "))
	}

	if *xlsx {
		path, err := output.ExportXLSX(cfg.Roster.ExportDir, prof.Name, rows)
		if err != nil {
			logger.Fatal("exporting roster", zap.Error(err))
		}
		fmt.Printf("exported %s\n", path)
	}

	logger.Info("roster complete",
		zap.Int("weapons", len(rows)),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// loadProfile resolves the -profile argument: a YAML file when the argument
// names one, otherwise a profile looked up in the database by name.
func loadProfile(ctx context.Context, cfg config.Config, arg string) (*profile.Profile, error) {
	if strings.HasSuffix(arg, ".yaml") || strings.HasSuffix(arg, ".yml") {
		return profile.Load(arg)
	}
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	defer pool.Close()
	return postgres.NewProfileRepository(pool.DB()).GetByName(ctx, arg)
}

func splitIDs(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// interpolateLines reduces each item line to a single entry at the target
// quality level, derived from the closest variants around it. Variants of a
// line are recognized by name.
func interpolateLines(items []*item.Item, ql int, logger *zap.Logger) []*item.Item {
	byName := make(map[string][]*item.Item)
	var order []string
	for _, it := range items {
		if _, ok := byName[it.Name]; !ok {
			order = append(order, it.Name)
		}
		byName[it.Name] = append(byName[it.Name], it)
	}

	out := make([]*item.Item, 0, len(order))
	for _, n := range order {
		variants := byName[n]
		sort.Slice(variants, func(i, j int) bool { return variants[i].QL < variants[j].QL })

		lo := variants[0]
		for _, v := range variants {
			if v.QL <= ql {
				lo = v
			}
		}
		hi := variants[len(variants)-1]
		for i := len(variants) - 1; i >= 0; i-- {
			if variants[i].QL >= ql {
				hi = variants[i]
			}
		}

		it, err := interp.Interpolate(lo, hi, ql)
		if err != nil {
			logger.Warn("skipping item line", zap.String("name", n), zap.Error(err))
			continue
		}
		out = append(out, it)
	}
	return out
}
