package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/globaltrotters/backend/internal/pkg/config"
	"github.com/globaltrotters/backend/internal/pkg/logging"
)

const migrationsDir = "migrations"

func main() {
	if len(os.Args) < 2 {
		log.Fatal("usage: migrate <up|down>")
	}

	_ = godotenv.Load()

	cfg, err := config.Load("globaltrotters-migrate")
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	logging.Setup(cfg.Log.Level, "text")

	if cfg.Database.Driver != config.DriverPostgres {
		log.Fatalf("migrations only apply to the %s driver, configured: %s", config.DriverPostgres, cfg.Database.Driver)
	}

	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := ensureVersionTable(ctx, pool); err != nil {
		log.Fatalf("schema_migrations: %v", err)
	}

	switch os.Args[1] {
	case "up":
		err = up(ctx, pool)
	case "down":
		err = down(ctx, pool)
	default:
		log.Fatalf("unknown command: %s", os.Args[1])
	}
	if err != nil {
		log.Fatal(err)
	}
}

func ensureVersionTable(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version    TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	return err
}

// migrationFiles returns the versions found in migrationsDir, oldest first.
// A version is a file name without its ".up.sql" suffix.
func migrationFiles() ([]string, error) {
	matches, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return nil, err
	}
	versions := make([]string, 0, len(matches))
	for _, m := range matches {
		versions = append(versions, strings.TrimSuffix(filepath.Base(m), ".up.sql"))
	}
	sort.Strings(versions)
	return versions, nil
}

// up applies every version not yet recorded, each in its own transaction.
func up(ctx context.Context, pool *pgxpool.Pool) error {
	versions, err := migrationFiles()
	if err != nil {
		return err
	}

	applied := 0
	for _, v := range versions {
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE version = $1)`, v).Scan(&exists); err != nil {
			return fmt.Errorf("check %s: %w", v, err)
		}
		if exists {
			continue
		}

		err := apply(ctx, pool, v+".up.sql", func(tx pgx.Tx) error {
			_, err := tx.Exec(ctx, `INSERT INTO schema_migrations (version) VALUES ($1)`, v)
			return err
		})
		if err != nil {
			return err
		}
		slog.Info("applied", "version", v)
		applied++
	}

	slog.Info("migrations up to date", "applied", applied)
	return nil
}

// down reverts the most recent applied version.
func down(ctx context.Context, pool *pgxpool.Pool) error {
	var v string
	err := pool.QueryRow(ctx, `SELECT version FROM schema_migrations ORDER BY version DESC LIMIT 1`).Scan(&v)
	if errors.Is(err, pgx.ErrNoRows) {
		slog.Info("nothing to revert")
		return nil
	}
	if err != nil {
		return err
	}

	err = apply(ctx, pool, v+".down.sql", func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `DELETE FROM schema_migrations WHERE version = $1`, v)
		return err
	})
	if err != nil {
		return err
	}
	slog.Info("reverted", "version", v)
	return nil
}

func apply(ctx context.Context, pool *pgxpool.Pool, file string, record func(pgx.Tx) error) error {
	data, err := os.ReadFile(filepath.Join(migrationsDir, file))
	if err != nil {
		return fmt.Errorf("read %s: %w", file, err)
	}

	return pgx.BeginFunc(ctx, pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, string(data)); err != nil {
			return fmt.Errorf("exec %s: %w", file, err)
		}
		return record(tx)
	})
}
