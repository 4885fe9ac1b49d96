package domain

import "time"

// Role of the user acting on the system. Authentication and authorization
// happen upstream; the role only influences the initial status of requests
// created on the actor's behalf.
type Role string

const (
	RoleCustomerService Role = "customer-service"
	RoleWarehouse       Role = "warehouse"
	RoleAdmin           Role = "admin"
)

// CanCreateRequests reports whether the role is permitted to create
// must-go requests (including via bulk upload).
func (r Role) CanCreateRequests() bool {
	switch r {
	case RoleCustomerService, RoleWarehouse, RoleAdmin:
		return true
	}
	return false
}

// Lifecycle status of a must-go request.
type Status string

const (
	StatusPending    Status = "PENDING"
	StatusReporting  Status = "REPORTING"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
)

// InitialStatus returns the status a freshly created request starts in.
// Warehouse staff create requests that are already being worked, so theirs
// skip straight to REPORTING.
func InitialStatus(role Role) Status {
	if role == RoleWarehouse {
		return StatusReporting
	}
	return StatusPending
}

// UnitsPerPallet is the fixed number of units one pallet holds in this domain.
const UnitsPerPallet = 24

// PalletCount converts a part quantity to the number of pallets it occupies,
// rounding up. Non-positive quantities occupy no pallets.
func PalletCount(quantity int) int {
	if quantity <= 0 {
		return 0
	}
	return (quantity + UnitsPerPallet - 1) / UnitsPerPallet
}

// Represents a must-go expedite request as stored in the system.
type MustGoRequest struct {
	ID                int64
	ShipmentNumber    string
	AuthorizationCode string
	Plant             string
	RouteInfo         string
	PalletCount       int
	Status            Status
	CreatedBy         string
	CreatedAt         time.Time
}

// NewRequest is the full request graph to persist as one atomic unit:
// the request record itself plus its trailer associations and per-trailer
// part details.
type NewRequest struct {
	ShipmentNumber string
	Plant          string
	RouteInfo      string
	PalletCount    int
	CreatedBy      string
	Status         Status
	AuditNote      string
	Trailers       []NewTrailer
}

// NewTrailer is one distinct trailer referenced by a NewRequest together
// with the parts assigned to it. The association defaults to non-transload.
type NewTrailer struct {
	TrailerNumber string
	Parts         []NewPartDetail
}

type NewPartDetail struct {
	PartNumber string
	Quantity   int
}

// PersistedRequest is returned after a NewRequest graph has been committed.
type PersistedRequest struct {
	ID                int64
	ShipmentNumber    string
	AuthorizationCode string
	PalletCount       int
	Status            Status
}
