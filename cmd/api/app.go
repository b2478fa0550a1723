package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli"

	"github.com/pefman/duel-arena/internal/api"
	"github.com/pefman/duel-arena/internal/battle"
	"github.com/pefman/duel-arena/internal/config"
	"github.com/pefman/duel-arena/internal/game"
	"github.com/pefman/duel-arena/internal/models"
	"github.com/pefman/duel-arena/internal/server"
	"github.com/pefman/duel-arena/internal/stats"
	"github.com/pefman/duel-arena/internal/storage"
	"github.com/pefman/duel-arena/internal/storage/memory"
	"github.com/pefman/duel-arena/internal/storage/sqlite"
)

type store interface {
	storage.CombatantStore
	storage.BattleStore
}

func newApp(ctx context.Context, cfg config.Config) *cli.App {
	app := cli.NewApp()
	app.Name = "duel"
	app.Usage = "Resolve deterministic battles between stored combatants"
	app.Writer = os.Stdout

	app.Commands = []cli.Command{
		{
			Name:  "serve",
			Usage: "Run the HTTP API",
			Flags: []cli.Flag{
				cli.IntFlag{Name: "port", Value: cfg.Port, Usage: "listen port"},
				cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "SQLite database path"},
				cli.BoolFlag{Name: "memory", Usage: "keep everything in memory instead of SQLite"},
				cli.StringFlag{Name: "cors-origin", Value: cfg.CORSOrigin, Usage: "Access-Control-Allow-Origin value"},
			},
			Action: func(c *cli.Context) error {
				cfg.Port = c.Int("port")
				cfg.DBPath = c.String("db")
				cfg.CORSOrigin = c.String("cors-origin")
				return serve(ctx, cfg, c.Bool("memory"))
			},
		},
		{
			Name:      "simulate",
			Usage:     "Simulate one battle from stats given on the command line",
			ArgsUsage: " ",
			Flags:     append(sideFlags("a", "Challenger"), sideFlags("b", "Defender")...),
			Action: func(c *cli.Context) error {
				a, err := storage.NormalizeCombatant(sideStats(c, "a", 1))
				if err != nil {
					return cli.NewExitError("side a: "+err.Error(), 2)
				}
				b, err := storage.NormalizeCombatant(sideStats(c, "b", 2))
				if err != nil {
					return cli.NewExitError("side b: "+err.Error(), 2)
				}
				printOutcome(c.App.Writer, a, b, game.Simulate(a, b))
				return nil
			},
		},
		{
			Name:      "import",
			Usage:     "Import combatants by name from the catalog into the database",
			ArgsUsage: "NAME [NAME...]",
			Flags: []cli.Flag{
				cli.StringFlag{Name: "db", Value: cfg.DBPath, Usage: "SQLite database path"},
				cli.StringFlag{Name: "catalog", Value: cfg.CatalogBaseURL, Usage: "catalog base URL"},
			},
			Action: func(c *cli.Context) error {
				if c.NArg() == 0 {
					return cli.NewExitError("at least one name is required", 2)
				}
				st, err := openSQLite(c.String("db"))
				if err != nil {
					return err
				}
				defer st.Close()
				client := api.NewClient(api.Config{BaseURL: c.String("catalog"), Timeout: cfg.CatalogTimeout})
				return importCombatants(ctx, c.App.Writer, client, st, c.Args())
			},
		},
	}
	return app
}

func serve(ctx context.Context, cfg config.Config, inMemory bool) error {
	var st store
	if inMemory {
		log.Printf("storage: in-memory")
		st = memory.New()
	} else {
		sq, err := openSQLite(cfg.DBPath)
		if err != nil {
			return err
		}
		defer func() {
			if err := sq.Close(); err != nil {
				log.Printf("close store: %v", err)
			}
		}()
		log.Printf("storage: sqlite path=%s", cfg.DBPath)
		st = sq
	}

	tracker := stats.NewTracker()
	svc := battle.NewService(st, st, tracker)
	srv := server.New(svc, tracker, server.Options{
		CORSOrigin:        cfg.CORSOrigin,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		ShutdownTimeout:   cfg.ShutdownTimeout,
	})
	return srv.ListenAndServe(ctx, cfg.Addr())
}

func openSQLite(path string) (*sqlite.Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	return sqlite.Open(path)
}

// Fetcher loads one stat block from a remote catalog.
type Fetcher interface {
	FetchCombatant(ctx context.Context, name string) (models.CombatantStats, error)
}

func importCombatants(ctx context.Context, w io.Writer, f Fetcher, st storage.CombatantStore, names []string) error {
	var failed int
	for _, name := range names {
		c, err := f.FetchCombatant(ctx, name)
		if err != nil {
			log.Printf("import: %s: %v", name, err)
			failed++
			continue
		}
		created, err := st.CreateCombatant(ctx, c)
		if errors.Is(err, storage.ErrAlreadyExists) {
			fmt.Fprintf(w, "skip %s (already stored)\n", c.Name)
			continue
		}
		if err != nil {
			log.Printf("import: store %s: %v", c.Name, err)
			failed++
			continue
		}
		fmt.Fprintf(w, "imported %s as #%d (atk %d def %d hp %d spd %d)\n",
			created.Name, created.ID, created.Attack, created.Defense, created.HP, created.Speed)
	}
	if failed > 0 {
		return cli.NewExitError(fmt.Sprintf("%d of %d imports failed", failed, len(names)), 1)
	}
	return nil
}

func sideFlags(prefix, name string) []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: prefix + "-name", Value: name},
		cli.IntFlag{Name: prefix + "-attack", Value: 10},
		cli.IntFlag{Name: prefix + "-defense", Value: 10},
		cli.IntFlag{Name: prefix + "-hp", Value: 10},
		cli.IntFlag{Name: prefix + "-speed", Value: 10},
	}
}

func sideStats(c *cli.Context, prefix string, id int64) models.CombatantStats {
	return models.CombatantStats{
		ID:      id,
		Name:    c.String(prefix + "-name"),
		Attack:  c.Int(prefix + "-attack"),
		Defense: c.Int(prefix + "-defense"),
		HP:      c.Int(prefix + "-hp"),
		Speed:   c.Int(prefix + "-speed"),
	}
}

func printOutcome(w io.Writer, a, b models.CombatantStats, out game.BattleOutcome) {
	fmt.Fprintf(w, "%s (atk %d def %d hp %d spd %d) vs %s (atk %d def %d hp %d spd %d)\n",
		a.Name, a.Attack, a.Defense, a.HP, a.Speed,
		b.Name, b.Attack, b.Defense, b.HP, b.Speed)
	for i, t := range out.Turns {
		fmt.Fprintf(w, "turn %d: %s hits %s for %d, %s has %d hp left\n",
			i+1, t.Attacker.Name, t.Defender.Name, t.Damage, t.Defender.Name, t.RemainingHP)
	}
	fmt.Fprintf(w, "winner: %s after %d turn(s)\n", out.Winner.Name, len(out.Turns))
}
