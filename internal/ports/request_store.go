package ports

import (
	"context"

	"mustgo-request-service/internal/domain"
)

// Port: a boundary for persisting and retrieving must-go requests.
type RequestStore interface {
	// Persist one request graph as a single atomic unit of work: the
	// request record with its audit entry, trailer upserts by trailer
	// number, trailer associations, and per-trailer part details. A
	// returned error means nothing from this graph was written.
	SaveRequestGroup(ctx context.Context, req *domain.NewRequest) (*domain.PersistedRequest, error)

	// Retrieve all persisted requests, oldest first.
	ListRequests(ctx context.Context) ([]*domain.MustGoRequest, error)

	// Overwrite the pallet count of already-persisted requests by id.
	// Used by the post-upload override flow.
	UpdatePalletCounts(ctx context.Context, counts map[int64]int) error
}
