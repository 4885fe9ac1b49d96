package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"mustgo-request-service/internal/domain"
	"mustgo-request-service/internal/platform/obs"
)

// SQL-backed implementation of the RequestStore port.
type SQLRequestStore struct{ DB *sql.DB }

func NewSQLRequestStore(db *sql.DB) *SQLRequestStore {
	return &SQLRequestStore{DB: db}
}

// SaveRequestGroup writes one request graph in a single transaction:
// request row with audit entry, trailer upserts keyed by trailer number,
// trailer associations, and per-trailer part details. Concurrent uploads
// referencing the same trailer number are arbitrated by the unique
// constraint on trailers.trailer_number, not by this store.
func (s *SQLRequestStore) SaveRequestGroup(
	ctx context.Context,
	req *domain.NewRequest,
) (_ *domain.PersistedRequest, err error) {
	defer obs.Time(ctx, "store.SaveRequestGroup")(&err)

	if s.DB == nil {
		return nil, errors.New("request store: DB is nil")
	}
	if req == nil {
		return nil, errors.New("save request group: request is nil")
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("save request group: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	authCode := uuid.NewString()

	var requestID int64
	insertRequest := `
	INSERT INTO must_go_requests (
		shipment_number, authorization_code, plant, route_info,
		pallet_count, status, created_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7)
	RETURNING id;
	`
	err = tx.QueryRowContext(ctx, insertRequest,
		req.ShipmentNumber, authCode, req.Plant, req.RouteInfo,
		req.PalletCount, string(req.Status), req.CreatedBy,
	).Scan(&requestID)
	if err != nil {
		return nil, fmt.Errorf("save request group: insert request: %w", err)
	}

	insertAudit := `
	INSERT INTO request_audit_log (request_id, note, created_by)
	VALUES ($1, $2, $3);
	`
	if _, err := tx.ExecContext(ctx, insertAudit, requestID, req.AuditNote, req.CreatedBy); err != nil {
		return nil, fmt.Errorf("save request group: insert audit entry: %w", err)
	}

	upsertTrailer := `
	INSERT INTO trailers (trailer_number)
	VALUES ($1)
	ON CONFLICT (trailer_number) DO UPDATE
	SET trailer_number = EXCLUDED.trailer_number
	RETURNING id;
	`
	insertAssignment := `
	INSERT INTO request_trailers (request_id, trailer_id, is_transload)
	VALUES ($1, $2, FALSE);
	`
	insertPart := `
	INSERT INTO part_details (request_id, trailer_id, part_number, quantity)
	VALUES ($1, $2, $3, $4);
	`

	for _, trailer := range req.Trailers {
		var trailerID int64
		err := tx.QueryRowContext(ctx, upsertTrailer, trailer.TrailerNumber).Scan(&trailerID)
		if err != nil {
			return nil, fmt.Errorf("save request group: upsert trailer %q: %w", trailer.TrailerNumber, err)
		}

		if _, err := tx.ExecContext(ctx, insertAssignment, requestID, trailerID); err != nil {
			return nil, fmt.Errorf("save request group: link trailer %q: %w", trailer.TrailerNumber, err)
		}

		for _, part := range trailer.Parts {
			_, err := tx.ExecContext(ctx, insertPart, requestID, trailerID, part.PartNumber, part.Quantity)
			if err != nil {
				return nil, fmt.Errorf(
					"save request group: insert part %q trailer %q: %w",
					part.PartNumber, trailer.TrailerNumber, err,
				)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("save request group: commit tx: %w", err)
	}

	return &domain.PersistedRequest{
		ID:                requestID,
		ShipmentNumber:    req.ShipmentNumber,
		AuthorizationCode: authCode,
		PalletCount:       req.PalletCount,
		Status:            req.Status,
	}, nil
}

// ListRequests returns all persisted requests, oldest first.
func (s *SQLRequestStore) ListRequests(ctx context.Context) (_ []*domain.MustGoRequest, err error) {
	defer obs.Time(ctx, "store.ListRequests")(&err)

	if s.DB == nil {
		return nil, errors.New("request store: DB is nil")
	}

	query := `
	SELECT
		id, shipment_number, authorization_code, plant, route_info,
		pallet_count, status, created_by, created_at
	FROM must_go_requests
	ORDER BY id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list requests: query must_go_requests: %w", err)
	}
	defer rows.Close()

	requests := make([]*domain.MustGoRequest, 0, 64)
	for rows.Next() {
		var r domain.MustGoRequest
		var status string
		err := rows.Scan(
			&r.ID, &r.ShipmentNumber, &r.AuthorizationCode, &r.Plant, &r.RouteInfo,
			&r.PalletCount, &status, &r.CreatedBy, &r.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("list requests: scan row: %w", err)
		}
		r.Status = domain.Status(status)
		requests = append(requests, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list requests: row iteration: %w", err)
	}

	return requests, nil
}

// UpdatePalletCounts overwrites pallet counts by request id in one
// transaction. An unknown id fails the whole batch.
func (s *SQLRequestStore) UpdatePalletCounts(ctx context.Context, counts map[int64]int) (err error) {
	defer obs.Time(ctx, "store.UpdatePalletCounts")(&err)

	if s.DB == nil {
		return errors.New("request store: DB is nil")
	}
	if len(counts) == 0 {
		return nil
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("update pallet counts: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, `
	UPDATE must_go_requests
	SET pallet_count = $2
	WHERE id = $1;
	`)
	if err != nil {
		return fmt.Errorf("update pallet counts: prepare update: %w", err)
	}
	defer stmt.Close()

	for id, count := range counts {
		if count < 0 {
			return fmt.Errorf("update pallet counts: request id=%d: pallet count must not be negative", id)
		}

		res, err := stmt.ExecContext(ctx, id, count)
		if err != nil {
			return fmt.Errorf("update pallet counts: request id=%d: %w", id, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update pallet counts: request id=%d rows affected: %w", id, err)
		}
		if affected == 0 {
			return fmt.Errorf("update pallet counts: request id=%d not found", id)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("update pallet counts: commit tx: %w", err)
	}

	return nil
}
