package repositories

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Initialize the postgres schema for requests, trailers, and their links.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createRequestsQuery := `
	CREATE TABLE IF NOT EXISTS must_go_requests (
		id BIGSERIAL PRIMARY KEY,
		shipment_number TEXT NOT NULL,
		authorization_code TEXT NOT NULL UNIQUE,
		plant TEXT NOT NULL DEFAULT '',
		route_info TEXT NOT NULL DEFAULT '',
		pallet_count INTEGER NOT NULL DEFAULT 0,
		status TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createTrailersQuery := `
	CREATE TABLE IF NOT EXISTS trailers (
		id BIGSERIAL PRIMARY KEY,
		trailer_number TEXT NOT NULL UNIQUE
	);
	`

	createAssignmentsQuery := `
	CREATE TABLE IF NOT EXISTS request_trailers (
		request_id BIGINT NOT NULL REFERENCES must_go_requests(id) ON DELETE CASCADE,
		trailer_id BIGINT NOT NULL REFERENCES trailers(id),
		is_transload BOOLEAN NOT NULL DEFAULT FALSE,
		PRIMARY KEY (request_id, trailer_id)
	);
	`

	createPartDetailsQuery := `
	CREATE TABLE IF NOT EXISTS part_details (
		id BIGSERIAL PRIMARY KEY,
		request_id BIGINT NOT NULL REFERENCES must_go_requests(id) ON DELETE CASCADE,
		trailer_id BIGINT NOT NULL REFERENCES trailers(id),
		part_number TEXT NOT NULL,
		quantity INTEGER NOT NULL
	);
	`

	createAuditLogQuery := `
	CREATE TABLE IF NOT EXISTS request_audit_log (
		id BIGSERIAL PRIMARY KEY,
		request_id BIGINT NOT NULL REFERENCES must_go_requests(id) ON DELETE CASCADE,
		note TEXT NOT NULL,
		created_by TEXT NOT NULL DEFAULT '',
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_part_details_request
	ON part_details(request_id);
	`

	statements := []string{
		createRequestsQuery,
		createTrailersQuery,
		createAssignmentsQuery,
		createPartDetailsQuery,
		createAuditLogQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}

type TrailerSeed struct {
	TrailerNumber string `json:"trailer_number"`
}

// Populate the trailers table from a JSON file. Existing trailer numbers
// are left untouched.
func SeedFromJSON(db *sql.DB, jsonPath string) error {
	bytes, err := os.ReadFile(jsonPath)
	if err != nil {
		return fmt.Errorf("seed trailers: read %q: %w", jsonPath, err)
	}

	var data []TrailerSeed
	if err := json.Unmarshal(bytes, &data); err != nil {
		return fmt.Errorf("seed trailers: parse json: %w", err)
	}

	rows := make([]TrailerSeed, 0, len(data))
	for i, item := range data {
		number := strings.TrimSpace(item.TrailerNumber)
		if number == "" {
			return fmt.Errorf("seed trailers: item at index %d: trailer_number cannot be empty", i+1)
		}
		rows = append(rows, TrailerSeed{TrailerNumber: number})
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("seed trailers: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
	INSERT INTO trailers (trailer_number)
	VALUES ($1)
	ON CONFLICT (trailer_number) DO NOTHING;
	`
	stmt, err := tx.Prepare(query)
	if err != nil {
		return fmt.Errorf("seed trailers: prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, t := range rows {
		if _, err := stmt.Exec(t.TrailerNumber); err != nil {
			return fmt.Errorf("seed trailers: insert trailer_number=%q: %w", t.TrailerNumber, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed trailers: commit tx: %w", err)
	}

	return nil
}
