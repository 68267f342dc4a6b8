package db

import (
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func TestMigrateSQLiteCardColumns(t *testing.T) {
	conn, errOpen := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if errOpen != nil {
		t.Fatalf("open sqlite: %v", errOpen)
	}

	if errMigrate := Migrate(conn); errMigrate != nil {
		t.Fatalf("migrate: %v", errMigrate)
	}

	for _, column := range []string{"id", "amount", "owner"} {
		if !conn.Migrator().HasColumn("cards", column) {
			t.Fatalf("cards missing column %s", column)
		}
	}
	for _, column := range []string{"username", "password", "roles", "disabled"} {
		if !conn.Migrator().HasColumn("users", column) {
			t.Fatalf("users missing column %s", column)
		}
	}
}

func TestDetectDialectFromDSN(t *testing.T) {
	cases := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/cashcard", DialectPostgres},
		{"host=localhost user=cashcard dbname=cashcard sslmode=disable", DialectPostgres},
		{"file:data/cashcard.db", DialectSQLite},
		{"sqlite://data/cashcard.db", DialectSQLite},
		{"cashcard.db", DialectSQLite},
	}
	for _, tc := range cases {
		got, err := detectDialectFromDSN(tc.dsn)
		if err != nil {
			t.Fatalf("detectDialectFromDSN(%q): %v", tc.dsn, err)
		}
		if got != tc.want {
			t.Fatalf("detectDialectFromDSN(%q) = %q, want %q", tc.dsn, got, tc.want)
		}
	}

	if _, err := detectDialectFromDSN("mysql://localhost/cashcard"); err == nil {
		t.Fatalf("expected error for unsupported dsn")
	}
}
