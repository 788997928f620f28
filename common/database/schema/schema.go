// Package schema applies versioned ClickHouse DDL and records what ran in a
// schema_migrations table.
package schema

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"go.uber.org/zap"
)

type Migration struct {
	Version     int
	Description string
	Up          string
	Down        string
}

// Conn is the subset of clickhouse.Conn the migrator needs.
type Conn interface {
	Exec(ctx context.Context, query string, args ...any) error
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
}

type Migrator struct {
	conn   Conn
	logger *zap.Logger
}

func NewMigrator(conn Conn, logger *zap.Logger) *Migrator {
	return &Migrator{
		conn:   conn,
		logger: logger,
	}
}

func (m *Migrator) ensureTable(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version Int32,
			description String,
			applied_at DateTime
		) ENGINE = MergeTree()
		ORDER BY version
	`
	if err := m.conn.Exec(ctx, query); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}
	return nil
}

// Applied returns the recorded versions and when they ran.
func (m *Migrator) Applied(ctx context.Context) (map[int]time.Time, error) {
	rows, err := m.conn.Query(ctx, "SELECT version, applied_at FROM schema_migrations ORDER BY version")
	if err != nil {
		return nil, fmt.Errorf("failed to query schema_migrations: %w", err)
	}
	defer rows.Close()

	applied := make(map[int]time.Time)
	for rows.Next() {
		var version int32
		var appliedAt time.Time
		if err := rows.Scan(&version, &appliedAt); err != nil {
			return nil, fmt.Errorf("failed to scan migration row: %w", err)
		}
		applied[int(version)] = appliedAt
	}
	return applied, rows.Err()
}

// Pending returns the migrations missing from applied, ordered by version.
// Duplicate or non-positive versions are rejected.
func Pending(all []Migration, applied map[int]time.Time) ([]Migration, error) {
	seen := make(map[int]bool, len(all))
	var pending []Migration
	for _, mig := range all {
		if mig.Version <= 0 {
			return nil, fmt.Errorf("migration %q has invalid version %d", mig.Description, mig.Version)
		}
		if seen[mig.Version] {
			return nil, fmt.Errorf("duplicate migration version %d", mig.Version)
		}
		seen[mig.Version] = true
		if _, ok := applied[mig.Version]; !ok {
			pending = append(pending, mig)
		}
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Version < pending[j].Version })
	return pending, nil
}

// Migrate applies every pending migration and returns how many ran.
func (m *Migrator) Migrate(ctx context.Context, all []Migration) (int, error) {
	if err := m.ensureTable(ctx); err != nil {
		return 0, err
	}

	applied, err := m.Applied(ctx)
	if err != nil {
		return 0, err
	}

	pending, err := Pending(all, applied)
	if err != nil {
		return 0, err
	}

	for i, mig := range pending {
		m.logger.Info("Applying migration",
			zap.Int("version", mig.Version),
			zap.String("description", mig.Description),
		)
		if err := m.conn.Exec(ctx, mig.Up); err != nil {
			return i, fmt.Errorf("failed to apply migration %d: %w", mig.Version, err)
		}
		if err := m.conn.Exec(ctx,
			"INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, now())",
			int32(mig.Version), mig.Description); err != nil {
			return i, fmt.Errorf("failed to record migration %d: %w", mig.Version, err)
		}
	}

	m.logger.Info("Schema up to date",
		zap.Int("applied", len(pending)),
		zap.Int("known", len(all)))
	return len(pending), nil
}

// Rollback runs the Down statement of the migration with the given version
// and forgets it.
func (m *Migrator) Rollback(ctx context.Context, all []Migration, version int) error {
	for _, mig := range all {
		if mig.Version != version {
			continue
		}
		if err := m.conn.Exec(ctx, mig.Down); err != nil {
			return fmt.Errorf("failed to roll back migration %d: %w", version, err)
		}
		if err := m.conn.Exec(ctx, "ALTER TABLE schema_migrations DELETE WHERE version = ?", int32(version)); err != nil {
			return fmt.Errorf("failed to remove migration record %d: %w", version, err)
		}
		m.logger.Info("Rolled back migration", zap.Int("version", version))
		return nil
	}
	return fmt.Errorf("unknown migration version %d", version)
}
