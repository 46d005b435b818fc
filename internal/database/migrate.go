package database

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Migrate applies every pending *.up.sql file from the migrations directory
// in lexical order, recording applied versions in schema_migrations.
func Migrate(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version VARCHAR(255) PRIMARY KEY,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	files, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("failed to read migrations: %w", err)
	}

	var upMigrations []string

	for _, file := range files {
		name := file.Name()

		if strings.HasSuffix(name, ".up.sql") {
			upMigrations = append(upMigrations, name)
		}
	}

	sort.Strings(upMigrations)

	query := "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)"

	for _, migration := range upMigrations {
		var exists bool

		err := pool.QueryRow(ctx, query, migration).Scan(&exists)
		if err != nil {
			return fmt.Errorf("failed to check migrations %s: %w", migration, err)
		}

		if exists {
			continue
		}

		sqlBytes, err := os.ReadFile(filepath.Join(dir, migration))
		if err != nil {
			return fmt.Errorf("failed to read sql file: %s: %w", migration, err)
		}

		_, err = pool.Exec(ctx, string(sqlBytes))
		if err != nil {
			return fmt.Errorf("failed to complete sql file: %s: %w", migration, err)
		}

		insertQuery := "INSERT INTO schema_migrations (version) VALUES ($1)"
		_, err = pool.Exec(ctx, insertQuery, migration)
		if err != nil {
			return fmt.Errorf("failed to record migration %s: %w", migration, err)
		}

		log.Printf("applied migration %s", migration)
	}

	return nil
}
