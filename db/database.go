package db

import (
	"database/sql"
	"fmt"
	"time"

	"openmusic/config"
	"openmusic/logger"

	"github.com/go-sql-driver/mysql"
)

// ConnectDB opens the shared MySQL pool. The handle is passed explicitly to
// every service; there is no package level connection.
func ConnectDB(cfg *config.Config) (*sql.DB, error) {
	dsn := mysql.NewConfig()
	dsn.User = cfg.DBUser
	dsn.Passwd = cfg.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = fmt.Sprintf("%s:%s", cfg.DBHost, cfg.DBPort)
	dsn.DBName = cfg.DBName
	// UPDATE must report matched rows, not changed rows, for not-found checks.
	dsn.ClientFoundRows = true

	conn, err := sql.Open("mysql", dsn.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	conn.SetMaxIdleConns(10)
	conn.SetMaxOpenConns(100)
	conn.SetConnMaxLifetime(time.Hour)

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Successfully connected to the database", logger.String("addr", dsn.Addr), logger.String("db", dsn.DBName))
	return conn, nil
}

// InitDB creates the tables if they don't exist.
func InitDB(conn *sql.DB) error {
	for _, stmt := range Schema {
		if _, err := conn.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	logger.Info("Database schema ensured", logger.Int("tables", len(Schema)))
	return nil
}
