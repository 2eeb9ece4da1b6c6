package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	orchestrator "github.com/ceverett10/experience-marketplace-platform-sub000"
	orchestratorcmd "github.com/ceverett10/experience-marketplace-platform-sub000/internal/commands/orchestrator"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/di"
	"github.com/ceverett10/experience-marketplace-platform-sub000/internal/logging/gologger"
)

const usage = `roadmap inspects and drives the site launch pipeline.

Usage:
  roadmap [flags] overview <site-id>   show per-phase task status
  roadmap [flags] retry <site-id>      aggressive reconciliation pass
  roadmap [flags] pause <site-id>      suppress autonomous processing
  roadmap [flags] resume <site-id>     resume autonomous processing
  roadmap [flags] create <name>        register a new site
`

func main() {
	cfg := orchestrator.DefaultConfig()

	var jsonOut bool
	flag.StringVar(&cfg.Database.Driver, "driver", envOr("ORCHESTRATOR_DB_DRIVER", cfg.Database.Driver), "database driver (sqlite|postgres)")
	flag.StringVar(&cfg.Database.DSN, "dsn", envOr("ORCHESTRATOR_DB_DSN", cfg.Database.DSN), "database dsn")
	flag.BoolVar(&jsonOut, "json", false, "emit machine-readable output")
	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	args := flag.Args()
	if len(args) < 2 {
		flag.Usage()
		os.Exit(2)
	}

	bunDB, err := openDatabase(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer bunDB.Close()

	provider, err := gologger.NewProvider(gologger.Config{Level: "warn", Format: "console"})
	if err != nil {
		log.Fatalf("initialise logging: %v", err)
	}

	module, err := orchestrator.New(cfg,
		di.WithBunDB(bunDB),
		di.WithLoggerProvider(provider),
	)
	if err != nil {
		log.Fatalf("initialise orchestrator: %v", err)
	}

	ctx := context.Background()
	if err := run(ctx, module, provider, args, jsonOut); err != nil {
		log.Fatalf("%s: %v", args[0], err)
	}
}

func run(ctx context.Context, module *orchestrator.Module, provider *gologger.Provider, args []string, jsonOut bool) error {
	command, target := args[0], args[1]

	if command == "create" {
		site, err := module.Sites().CreateSite(ctx, orchestrator.CreateSiteInput{Name: target})
		if err != nil {
			return err
		}
		planned, err := module.EnsurePlan(ctx, site.ID)
		if err != nil {
			return err
		}
		fmt.Printf("created site %s (%s), %d tasks planned\n", site.ID, site.Name, planned)
		return nil
	}

	siteID, err := uuid.Parse(target)
	if err != nil {
		return fmt.Errorf("invalid site id %q: %w", target, err)
	}

	switch command {
	case "overview":
		site, err := module.Sites().GetSite(ctx, siteID)
		if err != nil {
			return err
		}
		views, err := module.Executor().Overview(ctx, site)
		if err != nil {
			return err
		}
		if jsonOut {
			return json.NewEncoder(os.Stdout).Encode(views)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "PHASE\tTASK\tSTATUS\tREASON")
		for _, v := range views {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", v.Phase, v.Type, v.Status, v.Reason)
		}
		return w.Flush()

	case "retry":
		handler := orchestratorcmd.NewRetrySiteHandler(module.Sites(), module.Executor(), provider.GetLogger("orchestrator.commands"))
		return handler.Execute(ctx, orchestratorcmd.RetrySiteCommand{SiteID: siteID})

	case "pause", "resume":
		handler := orchestratorcmd.NewSetAutomationHandler(module.Sites(), provider.GetLogger("orchestrator.commands"))
		return handler.Execute(ctx, orchestratorcmd.SetAutomationCommand{
			SiteID: siteID,
			Paused: command == "pause",
		})

	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func openDatabase(driver, dsn string) (*bun.DB, error) {
	switch strings.TrimSpace(driver) {
	case "sqlite":
		sqlDB, err := sql.Open("sqlite3", dsn)
		if err != nil {
			return nil, err
		}
		db := bun.NewDB(sqlDB, sqlitedialect.New())
		db.SetMaxOpenConns(1)
		return db, nil
	case "postgres":
		sqlDB, err := sql.Open("postgres", dsn)
		if err != nil {
			return nil, err
		}
		return bun.NewDB(sqlDB, pgdialect.New()), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
