// Package dbtest provides in-memory databases carrying the production schema.
package dbtest

import (
	"database/sql"
	"testing"

	"openmusic/db"

	_ "github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open creates an in-memory SQLite database with foreign keys enforced and the
// schema applied. It is closed when the test ends.
func Open(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	// Every new connection would get its own empty in-memory database.
	conn.SetMaxOpenConns(1)
	t.Cleanup(func() { conn.Close() })

	if err := db.InitDB(conn); err != nil {
		t.Fatalf("failed to apply schema: %v", err)
	}
	return conn
}

// Gorm wraps conn in a GORM session using the SQLite dialect.
func Gorm(t *testing.T, conn *sql.DB) *gorm.DB {
	t.Helper()

	gdb, err := gorm.Open(sqlite.New(sqlite.Config{Conn: conn}), &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open gorm session: %v", err)
	}
	return gdb
}
