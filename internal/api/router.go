package api

import (
	"net/http"

	"mustgo-request-service/internal/api/handlers"
	"mustgo-request-service/internal/ports"
	"mustgo-request-service/internal/upload"
)

// NewRouter wires HTTP handlers with their dependencies and returns an
// http.Handler. This is the API composition root (handlers stay unaware of
// concrete adapters).
func NewRouter(store ports.RequestStore) http.Handler {
	mux := http.NewServeMux()

	uploadHandler := &handlers.UploadHandler{
		Pipeline: &upload.Pipeline{Store: store},
	}
	requestHandler := &handlers.RequestHandler{Store: store}

	mux.HandleFunc("/health", handlers.Health)
	mux.HandleFunc("/uploads", uploadHandler.Upload)
	mux.HandleFunc("/requests", requestHandler.List)
	mux.HandleFunc("/requests/pallet-counts", requestHandler.UpdatePalletCounts)

	return loggingMiddleware(mux)
}
