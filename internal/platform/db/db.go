package db

import (
	"database/sql"
	"fmt"
	"time"
)

// Open a postgres connection pool via the pgx stdlib driver. Pool limits
// are sized for bulk uploads: each group commits its own short transaction,
// so a modest pool keeps concurrent uploads from starving each other.
func Open(databaseURL string) (*sql.DB, error) {
	db, err := sql.Open("pgx", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("openDB: open postgres database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify postgres connection: %w", err)
	}

	return db, nil
}
