package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"mustgo-request-service/internal/api/dto"
	"mustgo-request-service/internal/ports"
)

// RequestHandler exposes persisted must-go requests and the post-upload
// pallet-count override flow.
type RequestHandler struct {
	Store ports.RequestStore
}

func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	requests, err := h.Store.ListRequests(r.Context())
	if err != nil {
		log.Printf("list requests failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	res := dto.ListRequestsResponse{
		Requests: make([]dto.RequestResponse, 0, len(requests)),
	}
	for _, req := range requests {
		res.Requests = append(res.Requests, dto.RequestResponse{
			ID:                req.ID,
			ShipmentNumber:    req.ShipmentNumber,
			AuthorizationCode: req.AuthorizationCode,
			Plant:             req.Plant,
			RouteInfo:         req.RouteInfo,
			PalletCount:       req.PalletCount,
			Status:            string(req.Status),
			CreatedBy:         req.CreatedBy,
			CreatedAt:         req.CreatedAt,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}

// UpdatePalletCounts applies user overrides to the pallet counts suggested
// by a bulk upload. The whole batch applies or none of it does.
func (h *RequestHandler) UpdatePalletCounts(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.UpdatePalletCountsRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	if len(req.Updates) == 0 {
		writeError(w, r, http.StatusBadRequest, "updates must not be empty")
		return
	}

	counts := make(map[int64]int, len(req.Updates))
	for _, u := range req.Updates {
		if u.RequestID <= 0 {
			writeError(w, r, http.StatusBadRequest, "request_id must be positive")
			return
		}
		if u.PalletCount < 0 {
			writeError(w, r, http.StatusBadRequest, "pallet_count must not be negative")
			return
		}
		counts[u.RequestID] = u.PalletCount
	}

	if err := h.Store.UpdatePalletCounts(r.Context(), counts); err != nil {
		log.Printf("update pallet counts failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, map[string]int{"updated": len(counts)})
}
