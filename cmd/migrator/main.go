// Command migrator applies the embedded goose migrations.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/Ultrahd-dev/student-portal/internal/config"
	"github.com/Ultrahd-dev/student-portal/internal/database"
	"github.com/Ultrahd-dev/student-portal/migrations"
)

func main() {
	configPath := flag.String("config", os.Getenv("CONFIG_PATH"), "path to the YAML configuration file")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(2)
	}

	log := slog.New(slog.NewTextHandler(os.Stderr, nil))

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	db, err := database.Open(ctx, cfg.Database, log)
	if err != nil {
		log.Error("failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Error("failed to set dialect", slog.String("error", err.Error()))
		os.Exit(1)
	}

	switch command := args[0]; command {
	case "up":
		err = goose.UpContext(ctx, db, ".")
	case "down":
		err = goose.DownContext(ctx, db, ".")
	case "status":
		err = goose.StatusContext(ctx, db, ".")
	case "version":
		err = goose.VersionContext(ctx, db, ".")
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", command)
		flag.Usage()
		os.Exit(2)
	}
	if err != nil {
		log.Error("migration failed", slog.String("command", args[0]), slog.String("error", err.Error()))
		os.Exit(1)
	}
	log.Info("migration finished", slog.String("command", args[0]))
}

func usage() {
	fmt.Println("Usage: migrator [-config file] <command>")
	fmt.Println("Commands:")
	fmt.Println("  up       apply all pending migrations")
	fmt.Println("  down     roll back the latest migration")
	fmt.Println("  status   print migration status")
	fmt.Println("  version  print the current schema version")
}
