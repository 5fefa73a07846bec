//go:build integration

package migrate

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

func TestPostgresMigrationsUpAndDown(t *testing.T) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("gocart_test"),
		tcpostgres.WithUsername("gocart"),
		tcpostgres.WithPassword("gocart"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("terminate container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := sql.Open("pgx", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	results, err := Up(ctx, db, DialectPostgres)
	require.NoError(t, err)
	require.Len(t, results, 4)

	var exists bool
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'order_items')`).Scan(&exists))
	require.True(t, exists)

	_, err = db.ExecContext(ctx, `INSERT INTO users (id, name, email) VALUES ('u1', 'A', 'a@example.com')`)
	require.NoError(t, err)
	_, err = db.ExecContext(ctx, `INSERT INTO stores (user_id, name, description, username, address, email, contact)
		VALUES ('u1', 'S', 'd', 'Upper', 'addr', 's@example.com', '1')`)
	require.Error(t, err, "mixed-case usernames violate the lowercase check")

	require.NoError(t, Run(ctx, db, "reset"))
	require.NoError(t, db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = 'order_items')`).Scan(&exists))
	require.False(t, exists)
}
