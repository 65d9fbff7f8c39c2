package cmd

import (
	"database/sql"
	"fmt"

	"openmusic/config"
	"openmusic/db"
	"openmusic/logger"
)

// bootstrap loads configuration and initialises logging.
func bootstrap() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	err = logger.InitLogger(logger.Config{
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
		MaxSize:    cfg.LogMaxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     cfg.LogMaxAge,
		Compress:   cfg.LogCompress,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return cfg, nil
}

// openDatabase connects to MySQL and ensures the schema exists.
func openDatabase(cfg *config.Config) (*sql.DB, error) {
	conn, err := db.ConnectDB(cfg)
	if err != nil {
		return nil, err
	}
	if err := db.InitDB(conn); err != nil {
		conn.Close()
		return nil, err
	}
	return conn, nil
}
