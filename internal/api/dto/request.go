package dto

import "time"

type RequestResponse struct {
	ID                int64     `json:"id"`
	ShipmentNumber    string    `json:"shipment_number"`
	AuthorizationCode string    `json:"authorization_code"`
	Plant             string    `json:"plant"`
	RouteInfo         string    `json:"route_info"`
	PalletCount       int       `json:"pallet_count"`
	Status            string    `json:"status"`
	CreatedBy         string    `json:"created_by"`
	CreatedAt         time.Time `json:"created_at"`
}

type ListRequestsResponse struct {
	Requests []RequestResponse `json:"requests"`
}

// PalletCountUpdate overrides the suggested pallet count of one persisted
// request after a bulk upload.
type PalletCountUpdate struct {
	RequestID   int64 `json:"request_id"`
	PalletCount int   `json:"pallet_count"`
}

type UpdatePalletCountsRequest struct {
	Updates []PalletCountUpdate `json:"updates"`
}
