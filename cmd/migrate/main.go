package main

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/frituurapp/backend/internal/infrastructure/config"
	"github.com/frituurapp/backend/internal/infrastructure/logger"
	"github.com/frituurapp/backend/internal/infrastructure/migration"
)

const defaultMigrationsPath = "migrations"

func main() {
	args := os.Args[1:]
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}
	command := args[0]

	log, err := logger.New(&logger.Config{
		Level:  "info",
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = log.Sync()
	}()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	migrationsPath, err := filepath.Abs(defaultMigrationsPath)
	if err != nil {
		log.Fatal("Failed to resolve migrations path", zap.Error(err))
	}

	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to open database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	migrator, err := migration.New(db, migrationsPath, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator", zap.Error(err))
	}
	defer func() {
		_ = migrator.Close()
	}()

	switch command {
	case "up":
		if err := migrator.Up(); err != nil {
			log.Fatal("Migration up failed", zap.Error(err))
		}
		log.Info("Migrations applied")

	case "down":
		if err := migrator.Down(); err != nil {
			log.Fatal("Migration down failed", zap.Error(err))
		}
		log.Info("Migrations rolled back")

	case "steps":
		if len(args) < 2 {
			log.Fatal("Step count required. Usage: migrate steps <n>")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid step count", zap.String("value", args[1]))
		}
		if err := migrator.Steps(n); err != nil {
			log.Fatal("Migration steps failed", zap.Error(err))
		}
		log.Info("Migration steps applied", zap.Int("steps", n))

	case "version":
		version, dirty, err := migrator.Version()
		if err != nil {
			log.Fatal("Failed to read migration version", zap.Error(err))
		}
		log.Info("Current migration version",
			zap.Uint("version", version),
			zap.Bool("dirty", dirty),
		)

	case "force":
		if len(args) < 2 {
			log.Fatal("Version required. Usage: migrate force <version>")
		}
		version, err := strconv.Atoi(args[1])
		if err != nil {
			log.Fatal("Invalid version", zap.String("value", args[1]))
		}
		if err := migrator.Force(version); err != nil {
			log.Fatal("Migration force failed", zap.Error(err))
		}
		log.Info("Migration version forced", zap.Int("version", version))

	default:
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: migrate <command> [args]

Commands:
  up               Apply all pending migrations
  down             Roll back all migrations
  steps <n>        Apply n migrations (negative rolls back)
  version          Print the current migration version
  force <version>  Force the migration version without running migrations`)
}
