package database

import (
	"fmt"
	"time"

	"team-collab/configs"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

func init() {
	// modernc registers itself as "sqlite", which sqlx does not know.
	sqlx.BindDriver(configs.DriverSQLite, sqlx.QUESTION)
}

// PostgresDSN builds a lib/pq connection string for the given database.
func PostgresDSN(cfg configs.Config, dbName string) string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, dbName)
}

// ConnectDB opens the database selected by cfg.DBDriver and pings it.
func ConnectDB(cfg configs.Config) (*sqlx.DB, error) {
	switch cfg.DBDriver {
	case configs.DriverSQLite:
		return OpenSQLite(cfg.SQLitePath)
	case configs.DriverPostgres, "":
		return OpenPostgres(PostgresDSN(cfg, cfg.DBName))
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

func OpenPostgres(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(time.Hour)
	return db, nil
}

// OpenSQLite opens a SQLite database file, or a private in-memory database
// for ":memory:". SQLite serializes writers, so the pool holds one connection.
func OpenSQLite(path string) (*sqlx.DB, error) {
	db, err := sqlx.Connect(configs.DriverSQLite, path)
	if err != nil {
		return nil, fmt.Errorf("connect sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
