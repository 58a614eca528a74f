package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// RunMigrations applies every pending SQL migration file found in
// migrationsPath. It runs once at startup; applied migrations are tracked
// in the schema_migrations table, so repeated runs are no-ops.
func (db *DB) RunMigrations(ctx context.Context, migrationsPath string) error {
	if err := db.createMigrationsTable(ctx); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	files, err := listMigrationFiles(migrationsPath)
	if err != nil {
		return fmt.Errorf("failed to list migration files: %w", err)
	}

	applied, err := db.appliedMigrations(ctx)
	if err != nil {
		return fmt.Errorf("failed to get applied migrations: %w", err)
	}

	for _, file := range files {
		if applied[file] {
			continue
		}

		if err := db.applyMigration(ctx, migrationsPath, file); err != nil {
			return fmt.Errorf("failed to apply migration %s: %w", file, err)
		}

		db.logger.Info("migration_applied", fmt.Sprintf("Applied migration: %s", file), "startup", nil)
	}

	return nil
}

func (db *DB) createMigrationsTable(ctx context.Context) error {
	sql := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			id SERIAL PRIMARY KEY,
			migration_name VARCHAR(255) NOT NULL UNIQUE,
			applied_at TIMESTAMPTZ DEFAULT NOW()
		)
	`
	return db.Exec(ctx, sql)
}

// listMigrationFiles returns the .sql files in the migrations directory,
// sorted so they apply in order.
func listMigrationFiles(migrationsPath string) ([]string, error) {
	entries, err := os.ReadDir(migrationsPath)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".sql") {
			files = append(files, entry.Name())
		}
	}

	sort.Strings(files)
	return files, nil
}

func (db *DB) appliedMigrations(ctx context.Context) (map[string]bool, error) {
	applied := make(map[string]bool)

	rows, err := db.Pool.Query(ctx, "SELECT migration_name FROM schema_migrations")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		applied[name] = true
	}

	return applied, rows.Err()
}

// applyMigration executes a single migration file and records it, both in
// the same transaction.
func (db *DB) applyMigration(ctx context.Context, migrationsPath, filename string) error {
	content, err := os.ReadFile(filepath.Join(migrationsPath, filename))
	if err != nil {
		return fmt.Errorf("failed to read migration file: %w", err)
	}

	tx, err := db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, string(content)); err != nil {
		return fmt.Errorf("failed to execute migration: %w", err)
	}

	if _, err := tx.Exec(ctx, "INSERT INTO schema_migrations (migration_name) VALUES ($1)", filename); err != nil {
		return fmt.Errorf("failed to record migration: %w", err)
	}

	return tx.Commit(ctx)
}
