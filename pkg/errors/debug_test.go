package errors

import (
	stdErrors "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpCapturesPgxFields(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "stores_username_key", TableName: "stores", Detail: "Key (username)=(acme) already exists."}
	err := Wrap(CodeDependency, fmt.Errorf("insert: %w", pgErr), "create store")

	d := Dump(err)
	if d.Code != CodeDependency {
		t.Fatalf("expected dependency code, got %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "stores_username_key" || d.PGTable != "stores" {
		t.Fatalf("unexpected pg fields %+v", d)
	}
	if len(d.Chain) != 3 {
		t.Fatalf("expected 3 chain entries, got %d: %v", len(d.Chain), d.Chain)
	}
	if PostgresConstraint(err) != "stores_username_key" {
		t.Fatalf("unexpected constraint %q", PostgresConstraint(err))
	}
}

func TestDumpCapturesPqFields(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", &pq.Error{Code: "23503", Constraint: "orders_store_id_fkey", Table: "orders"})

	d := Dump(err)
	if d.PGCode != "23503" || d.PGConstraint != "orders_store_id_fkey" {
		t.Fatalf("unexpected pq fields %+v", d)
	}
	if PostgresCode(err) != "23503" {
		t.Fatalf("unexpected code %q", PostgresCode(err))
	}
}

func TestDumpFieldsOmitEmptyPostgres(t *testing.T) {
	fields := Dump(stdErrors.New("plain")).Fields()
	if _, ok := fields["pg_code"]; ok {
		t.Fatalf("did not expect pg fields for plain error: %v", fields)
	}
	if fields["error"] != "plain" {
		t.Fatalf("unexpected error field %v", fields["error"])
	}
}
