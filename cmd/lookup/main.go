// Package main provides the item database lookup command. It browses the
// remote game-data API for items, nanos, symbiants, and pocket bosses, and
// can record queries in the search history, save favorites, and queue a
// boss's drops on a profile's farm list.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rubika-tools/aocomp/internal/aodb"
	"github.com/rubika-tools/aocomp/internal/config"
	"github.com/rubika-tools/aocomp/internal/game/item"
	"github.com/rubika-tools/aocomp/internal/observability"
	"github.com/rubika-tools/aocomp/internal/storage/postgres"
)

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	kind := flag.String("kind", "item", "what to look up: item, nano, symbiant, or boss")
	name := flag.String("name", "", "name filter")
	aoid := flag.Int("aoid", 0, "fetch one item by identifier instead of searching")
	minQL := flag.Int("min-ql", 0, "minimum quality level")
	maxQL := flag.Int("max-ql", 0, "maximum quality level")
	itemClass := flag.Int("item-class", 0, "item class filter: 1 weapon, 2 armor, 3 implant")
	profession := flag.String("profession", "", "nano profession filter")
	family := flag.String("family", "", "symbiant family filter")
	slot := flag.String("slot", "", "symbiant slot filter")
	playfield := flag.String("playfield", "", "pocket boss playfield filter")
	page := flag.Int("page", 1, "result page")
	saveHistory := flag.Bool("save-history", false, "record the query in the search history")
	fave := flag.String("fave", "", "profile name; save the item fetched with -aoid as a favorite")
	farm := flag.String("farm", "", "profile name; queue the matched boss's drops on the farm list")
	flag.Parse()

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

	client := aodb.NewClient(cfg.API, logger)

	var count int
	var query string
	var detail *item.Item
	var bosses []aodb.PocketBoss

	switch *kind {
	case "item":
		if *aoid > 0 {
			detail, err = client.GetItem(ctx, *aoid)
			if err != nil {
				logger.Fatal("fetching item", zap.Int("aoid", *aoid), zap.Error(err))
			}
			printItemDetail(detail)
			count = 1
			query = "aoid=" + strconv.Itoa(*aoid)
			break
		}
		q := aodb.ItemQuery{Name: *name, MinQL: *minQL, MaxQL: *maxQL, ItemClass: *itemClass, Page: *page}
		result, err := client.SearchItems(ctx, q)
		if err != nil {
			logger.Fatal("searching items", zap.Error(err))
		}
		for _, it := range result.Items {
			fmt.Printf("- %s (ql %d) [aoid %d]\n", it.Name, it.QL, it.AOID)
		}
		fmt.Printf("%d of %d items (page %d)\n", len(result.Items), result.Total, result.Page)
		count = result.Total
		query = itemQueryString(q)

	case "nano":
		q := aodb.NanoQuery{Name: *name, Profession: *profession, Page: *page}
		result, err := client.SearchNanos(ctx, q)
		if err != nil {
			logger.Fatal("searching nanos", zap.Error(err))
		}
		for _, n := range result.Items {
			fmt.Printf("- %s (ql %d, %s) %s L%d [aoid %d]\n",
				n.Name, n.QL, n.School, n.Profession, n.Level, n.AOID)
		}
		fmt.Printf("%d of %d nanos (page %d)\n", len(result.Items), result.Total, result.Page)
		count = result.Total
		query = fmt.Sprintf("name=%s&profession=%s", url.QueryEscape(*name), url.QueryEscape(*profession))

	case "symbiant":
		symbiants, err := client.Symbiants(ctx, *family, *slot)
		if err != nil {
			logger.Fatal("searching symbiants", zap.Error(err))
		}
		for _, s := range symbiants {
			fmt.Printf("- %s (ql %d) %s / %s [aoid %d]\n", s.Name, s.QL, s.Family, s.Slot, s.AOID)
		}
		fmt.Printf("%d symbiants\n", len(symbiants))
		count = len(symbiants)
		query = fmt.Sprintf("family=%s&slot=%s", url.QueryEscape(*family), url.QueryEscape(*slot))

	case "boss":
		bosses, err = client.PocketBosses(ctx, *name, *playfield)
		if err != nil {
			logger.Fatal("searching pocket bosses", zap.Error(err))
		}
		for _, b := range bosses {
			fmt.Printf("- %s (L%d) %s, %s\n", b.Name, b.Level, b.Playfield, b.Location)
			for _, d := range b.Drops {
				fmt.Printf("    drops %s\n", d)
			}
		}
		fmt.Printf("%d pocket bosses\n", len(bosses))
		count = len(bosses)
		query = fmt.Sprintf("name=%s&playfield=%s", url.QueryEscape(*name), url.QueryEscape(*playfield))

	default:
		fmt.Fprintf(os.Stderr, "unknown kind %q (supported: item, nano, symbiant, boss)\n", *kind)
		os.Exit(1)
	}

	if *saveHistory || *fave != "" || *farm != "" {
		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		defer pool.Close()

		if *saveHistory {
			historyRepo := postgres.NewSearchHistoryRepository(pool.DB())
			if err := historyRepo.Record(ctx, *kind, query, count); err != nil {
				logger.Fatal("recording search", zap.Error(err))
			}
			logger.Info("search recorded", zap.String("kind", *kind), zap.String("query", query))
		}

		if *fave != "" {
			if detail == nil {
				fmt.Fprintln(os.Stderr, "-fave requires -kind item with -aoid")
				os.Exit(1)
			}
			prof, err := postgres.NewProfileRepository(pool.DB()).GetByName(ctx, *fave)
			if err != nil {
				logger.Fatal("loading profile", zap.String("profile", *fave), zap.Error(err))
			}
			f := &postgres.Favorite{
				ProfileID: prof.ID,
				ItemAOID:  detail.AOID,
				ItemName:  detail.Name,
				ItemQL:    detail.QL,
			}
			if _, err := postgres.NewFavoriteRepository(pool.DB()).Add(ctx, f); err != nil {
				logger.Fatal("saving favorite", zap.Int("aoid", detail.AOID), zap.Error(err))
			}
			fmt.Printf("favorited %s for %s\n", detail.Name, prof.Name)
		}

		if *farm != "" {
			if len(bosses) != 1 {
				fmt.Fprintf(os.Stderr, "-farm requires a boss filter matching exactly one boss, matched %d\n", len(bosses))
				os.Exit(1)
			}
			prof, err := postgres.NewProfileRepository(pool.DB()).GetByName(ctx, *farm)
			if err != nil {
				logger.Fatal("loading profile", zap.String("profile", *farm), zap.Error(err))
			}
			farmRepo := postgres.NewFarmListRepository(pool.DB())
			for _, d := range bosses[0].Drops {
				e := &postgres.FarmEntry{
					ProfileID: prof.ID,
					BossName:  bosses[0].Name,
					Playfield: bosses[0].Playfield,
					ItemName:  d,
				}
				if _, err := farmRepo.Add(ctx, e); err != nil {
					logger.Fatal("queueing farm entry", zap.String("item", d), zap.Error(err))
				}
			}
			fmt.Printf("queued %d farm entries for %s\n", len(bosses[0].Drops), prof.Name)
		}
	}

	logger.Info("lookup complete",
		zap.String("kind", *kind),
		zap.Int("results", count),
		zap.Duration("elapsed", time.Since(start)),
	)
}

// printItemDetail renders one item with its stats and requirements.
func printItemDetail(it *item.Item) {
	fmt.Printf("%s (ql %d) [aoid %d]\n", it.Name, it.QL, it.AOID)
	if it.Description != "" {
		fmt.Printf("  %s\n", it.Description)
	}
	for _, e := range it.Stats {
		fmt.Printf("  stat %d = %d\n", e.Stat, e.Value)
	}
	for _, e := range it.AttackStats {
		fmt.Printf("  attack stat %d weight %d\n", e.Stat, e.Value)
	}
	for _, e := range it.DefenseStats {
		fmt.Printf("  defense stat %d weight %d\n", e.Stat, e.Value)
	}
	for _, c := range it.Requirements {
		fmt.Printf("  requires stat %d %s %d\n", c.Stat, opString(c.Op), c.Value)
	}
}

func opString(op item.Op) string {
	switch op {
	case item.OpEqual:
		return "="
	case item.OpLessThan:
		return "<"
	case item.OpGreaterThan:
		return ">"
	case item.OpOr:
		return "or"
	case item.OpAnd:
		return "and"
	case item.OpNot:
		return "not"
	default:
		return "?"
	}
}

func itemQueryString(q aodb.ItemQuery) string {
	parts := []string{}
	if q.Name != "" {
		parts = append(parts, "name="+url.QueryEscape(q.Name))
	}
	if q.MinQL > 0 {
		parts = append(parts, "min_ql="+strconv.Itoa(q.MinQL))
	}
	if q.MaxQL > 0 {
		parts = append(parts, "max_ql="+strconv.Itoa(q.MaxQL))
	}
	if q.ItemClass > 0 {
		parts = append(parts, "item_class="+strconv.Itoa(q.ItemClass))
	}
	return strings.Join(parts, "&")
}
