package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"strconv"

	"github.com/pressly/goose/v3"
)

// DefaultDir is the on-disk location of the Postgres migrations, relative to the
// repository root. cmd/migrate creates and validates files there.
const DefaultDir = "pkg/migrate/migrations/postgres"

const (
	postgresDir = "migrations/postgres"
	sqliteDir   = "migrations/sqlite"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var embedded embed.FS

// Dialect selects the migration set.
type Dialect string

const (
	DialectPostgres Dialect = "postgres"
	DialectSQLite   Dialect = "sqlite3"
)

// Run executes a goose command (up, down, status, redo, version, ...) against the
// embedded Postgres migrations.
func Run(ctx context.Context, db *sql.DB, command string, args ...string) error {
	if db == nil {
		return fmt.Errorf("db is required")
	}
	if err := usePostgres(); err != nil {
		return err
	}
	if err := goose.RunContext(ctx, command, db, postgresDir, args...); err != nil {
		return fmt.Errorf("goose %s: %w", command, err)
	}
	return nil
}

// MigrateToVersion moves the schema up or down to targetVersion.
func MigrateToVersion(ctx context.Context, db *sql.DB, targetVersion string) error {
	if targetVersion == "" {
		return fmt.Errorf("targetVersion is required")
	}
	target, err := strconv.ParseInt(targetVersion, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid version %q (expected YYYYMMDDHHMMSS): %w", targetVersion, err)
	}
	if err := usePostgres(); err != nil {
		return err
	}

	current, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return fmt.Errorf("get db version: %w", err)
	}

	switch {
	case current == target:
		return nil
	case current < target:
		if err := goose.UpToContext(ctx, db, postgresDir, target); err != nil {
			return fmt.Errorf("goose up-to %d: %w", target, err)
		}
	default:
		if err := goose.DownToContext(ctx, db, postgresDir, target); err != nil {
			return fmt.Errorf("goose down-to %d: %w", target, err)
		}
	}
	return nil
}

// Up applies every pending migration for dialect using a goose Provider, which
// keeps no package-level state and is safe to call from tests.
func Up(ctx context.Context, db *sql.DB, dialect Dialect) ([]*goose.MigrationResult, error) {
	if db == nil {
		return nil, fmt.Errorf("db is required")
	}
	provider, err := newProvider(db, dialect)
	if err != nil {
		return nil, err
	}
	results, err := provider.Up(ctx)
	if err != nil {
		return results, fmt.Errorf("goose up (%s): %w", dialect, err)
	}
	return results, nil
}

func newProvider(db *sql.DB, dialect Dialect) (*goose.Provider, error) {
	var (
		dir          string
		gooseDialect goose.Dialect
	)
	switch dialect {
	case DialectPostgres:
		dir, gooseDialect = postgresDir, goose.DialectPostgres
	case DialectSQLite:
		dir, gooseDialect = sqliteDir, goose.DialectSQLite3
	default:
		return nil, fmt.Errorf("unsupported migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedded, dir)
	if err != nil {
		return nil, fmt.Errorf("open embedded migrations: %w", err)
	}
	provider, err := goose.NewProvider(gooseDialect, db, fsys)
	if err != nil {
		return nil, fmt.Errorf("create goose provider: %w", err)
	}
	return provider, nil
}

func usePostgres() error {
	goose.SetBaseFS(embedded)
	if err := goose.SetDialect(string(DialectPostgres)); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}
