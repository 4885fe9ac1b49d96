package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mustgo-request-service/internal/domain"
)

// In-memory implementation of the RequestStore port for tests and local
// experiments. FailOn simulates persistence failures: saving a request
// whose shipment number has an entry returns that error and writes nothing.
type MemoryRequestStore struct {
	Saved  []*domain.NewRequest
	FailOn map[string]error

	requests []*domain.MustGoRequest
	nextID   int64
}

func NewMemoryRequestStore() *MemoryRequestStore {
	return &MemoryRequestStore{FailOn: map[string]error{}, nextID: 1}
}

func (m *MemoryRequestStore) SaveRequestGroup(
	ctx context.Context,
	req *domain.NewRequest,
) (*domain.PersistedRequest, error) {
	if err, ok := m.FailOn[req.ShipmentNumber]; ok {
		return nil, err
	}

	id := m.nextID
	m.nextID++

	persisted := &domain.MustGoRequest{
		ID:                id,
		ShipmentNumber:    req.ShipmentNumber,
		AuthorizationCode: uuid.NewString(),
		Plant:             req.Plant,
		RouteInfo:         req.RouteInfo,
		PalletCount:       req.PalletCount,
		Status:            req.Status,
		CreatedBy:         req.CreatedBy,
		CreatedAt:         time.Now(),
	}

	m.Saved = append(m.Saved, req)
	m.requests = append(m.requests, persisted)

	return &domain.PersistedRequest{
		ID:                persisted.ID,
		ShipmentNumber:    persisted.ShipmentNumber,
		AuthorizationCode: persisted.AuthorizationCode,
		PalletCount:       persisted.PalletCount,
		Status:            persisted.Status,
	}, nil
}

func (m *MemoryRequestStore) ListRequests(ctx context.Context) ([]*domain.MustGoRequest, error) {
	out := make([]*domain.MustGoRequest, len(m.requests))
	copy(out, m.requests)
	return out, nil
}

func (m *MemoryRequestStore) UpdatePalletCounts(ctx context.Context, counts map[int64]int) error {
	byID := make(map[int64]*domain.MustGoRequest, len(m.requests))
	for _, r := range m.requests {
		byID[r.ID] = r
	}

	for id := range counts {
		if _, ok := byID[id]; !ok {
			return fmt.Errorf("update pallet counts: request id=%d not found", id)
		}
	}
	for id, count := range counts {
		byID[id].PalletCount = count
	}

	return nil
}
