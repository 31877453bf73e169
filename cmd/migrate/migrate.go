package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/designflow/backend/internal/logging"
	"github.com/designflow/backend/internal/repository"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply pending migrations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			return runIncremental(ctx, pool, migrationDir)
		})
	},
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Drop every table and recreate the consolidated schema",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			if err := runDropAll(ctx, pool, migrationDir); err != nil {
				return err
			}
			return runConsolidated(ctx, pool, migrationDir)
		})
	},
}

var freshCmd = &cobra.Command{
	Use:   "fresh",
	Short: "Drop every table and apply all migrations in order",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		withPool(cmd.Context(), func(ctx context.Context, pool *pgxpool.Pool) error {
			if err := runDropAll(ctx, pool, migrationDir); err != nil {
				return err
			}
			return runIncremental(ctx, pool, migrationDir)
		})
	},
}

func withPool(ctx context.Context, fn func(context.Context, *pgxpool.Pool) error) {
	if ctx == nil {
		ctx = context.Background()
	}
	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		logging.Fatal("connect failed", "error", err)
	}
	defer pool.Close()

	if err := fn(ctx, pool); err != nil {
		pool.Close()
		logging.Fatal("migrate failed", "error", err)
	}
}

// collectUpFiles は .up.sql ファイル名をソート済みで返す
func collectUpFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations dir: %w", err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

func ensureSchemaMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		name TEXT PRIMARY KEY,
		applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`)
	return err
}

func execFile(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("apply %s: %w", filepath.Base(path), err)
	}
	return nil
}

// runIncremental は未適用の .up.sql を順番に適用する
func runIncremental(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	if err := ensureSchemaMigrations(ctx, pool); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(dir)
	if err != nil {
		return err
	}

	applied := 0
	for i, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")

		var exists bool
		if err := pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE name=$1)", name).Scan(&exists); err != nil {
			return err
		}
		if exists {
			continue
		}

		if err := execFile(ctx, pool, filepath.Join(dir, filename)); err != nil {
			return err
		}
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1)", name); err != nil {
			return fmt.Errorf("record migration %s: %w", name, err)
		}
		applied++
		slog.Info("migration completed", "number", i+1, "migration", name)
	}

	if applied == 0 {
		slog.Info("all migrations already applied")
	} else {
		slog.Info("migrations completed", "count", applied)
	}
	return nil
}

func runDropAll(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	slog.Info("dropping all tables")
	if err := execFile(ctx, pool, filepath.Join(dir, "000_drop_all.sql")); err != nil {
		return err
	}
	slog.Info("all tables dropped")
	return nil
}

// runConsolidated は集約スキーマを適用し、全マイグレーションを適用済みとして記録する
func runConsolidated(ctx context.Context, pool *pgxpool.Pool, dir string) error {
	slog.Info("applying consolidated schema")
	if err := execFile(ctx, pool, filepath.Join(dir, "000_consolidated.sql")); err != nil {
		return err
	}

	if err := ensureSchemaMigrations(ctx, pool); err != nil {
		return err
	}
	upFiles, err := collectUpFiles(dir)
	if err != nil {
		return err
	}
	for _, filename := range upFiles {
		name := strings.TrimSuffix(filename, ".up.sql")
		if _, err := pool.Exec(ctx, "INSERT INTO schema_migrations (name) VALUES ($1) ON CONFLICT DO NOTHING", name); err != nil {
			return err
		}
	}
	slog.Info("consolidated schema applied", "migrations_marked", len(upFiles))
	return nil
}
