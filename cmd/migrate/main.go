package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/dinepos/internal/storage/postgres"
)

const (
	defaultTimeout = 30 * time.Second
)

func main() {
	var (
		direction string
		steps     int
		dsn       string
	)

	flag.StringVar(&direction, "direction", "up", "migration direction: up|down|status")
	flag.IntVar(&steps, "steps", 0, "number of migrations to apply/rollback (0=all for up, 1 for down)")
	flag.StringVar(&dsn, "dsn", "", "PostgreSQL DSN (fallback: DINEPOS_POSTGRES_DSN)")
	flag.Parse()

	if strings.TrimSpace(dsn) == "" {
		dsn = strings.TrimSpace(os.Getenv("DINEPOS_POSTGRES_DSN"))
	}
	if dsn == "" {
		fail("DINEPOS_POSTGRES_DSN (or -dsn) is required")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()

	summary, err := runMigrate(ctx, direction, steps, dsn)
	if err != nil {
		fail("%v", err)
	}
	fmt.Println(summary)
}

// runMigrate выполняет миграцию в заданном направлении и возвращает сводку.
func runMigrate(ctx context.Context, direction string, steps int, dsn string) (string, error) {
	dir := strings.ToLower(strings.TrimSpace(direction))
	switch dir {
	case "up", "down", "status":
	default:
		return "", fmt.Errorf("unsupported direction: %s (use up|down|status)", direction)
	}

	store, err := postgres.Open(ctx, dsn)
	if err != nil {
		return "", fmt.Errorf("open postgres store: %w", err)
	}
	defer store.Close()

	switch dir {
	case "up":
		if err := store.MigrateUp(ctx, steps); err != nil {
			return "", fmt.Errorf("migrate up failed: %w", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			return "", fmt.Errorf("migration status failed: %w", err)
		}
		return fmt.Sprintf("migrate up ok: version=%d applied=%d", version, count), nil
	case "down":
		if steps <= 0 {
			steps = 1
		}
		if err := store.MigrateDown(ctx, steps); err != nil {
			return "", fmt.Errorf("migrate down failed: %w", err)
		}
		version, count, err := store.MigrationStatus(ctx)
		if err != nil {
			return "", fmt.Errorf("migration status failed: %w", err)
		}
		return fmt.Sprintf("migrate down ok: version=%d applied=%d", version, count), nil
	}

	version, count, err := store.MigrationStatus(ctx)
	if err != nil {
		return "", fmt.Errorf("migration status failed: %w", err)
	}
	return fmt.Sprintf("migration status: version=%d applied=%d", version, count), nil
}

func fail(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
