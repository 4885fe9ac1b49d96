package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"

	"mustgo-request-service/internal/api/dto"
	"mustgo-request-service/internal/domain"
	"mustgo-request-service/internal/upload"
)

// Uploaded workbooks are held in memory for the duration of the call.
const maxUploadBytes = 10 << 20

// UploadHandler accepts bulk uploads of must-go requests, either as a
// spreadsheet file (multipart) or pasted tabular text (JSON). Identity and
// role arrive on headers set by the authenticating proxy; the handler only
// checks that the role may create requests.
type UploadHandler struct {
	Pipeline *upload.Pipeline
}

func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	userID := strings.TrimSpace(r.Header.Get("X-User-ID"))
	role := domain.Role(strings.TrimSpace(r.Header.Get("X-User-Role")))
	if userID == "" {
		writeError(w, r, http.StatusBadRequest, "X-User-ID header is required")
		return
	}
	if !role.CanCreateRequests() {
		writeError(w, r, http.StatusForbidden, "role is not permitted to create requests")
		return
	}

	in := upload.Input{UserID: userID, UserRole: role}

	contentType := r.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "multipart/form-data"):
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid multipart form")
			return
		}

		file, _, err := r.FormFile("file")
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "file field is required")
			return
		}
		defer file.Close()

		data, err := io.ReadAll(io.LimitReader(file, maxUploadBytes+1))
		if err != nil {
			writeError(w, r, http.StatusBadRequest, "could not read uploaded file")
			return
		}
		if len(data) > maxUploadBytes {
			writeError(w, r, http.StatusBadRequest, "uploaded file is too large")
			return
		}

		in.FileBytes = data
		in.Strategy = upload.Strategy(strings.TrimSpace(r.FormValue("strategy")))

	default:
		var req dto.UploadRequest

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

		if strings.TrimSpace(req.Text) == "" {
			writeError(w, r, http.StatusBadRequest, "text is required")
			return
		}

		in.Text = req.Text
		in.Strategy = upload.Strategy(strings.TrimSpace(req.Strategy))
	}

	if in.Strategy == "" {
		in.Strategy = upload.GroupByShipment
	}
	if !in.Strategy.Valid() {
		writeError(w, r, http.StatusBadRequest, "strategy must be one of shipment, trailer, route, part")
		return
	}

	report, err := h.Pipeline.Run(r.Context(), in)
	if err != nil {
		// Only malformed input reaches here; per-group failures are
		// itemized inside the report.
		log.Printf("upload failed: %v", err)
		writeError(w, r, http.StatusBadRequest, "input could not be parsed")
		return
	}

	res := dto.UploadReportResponse{
		Success:        report.Success,
		TotalRows:      report.TotalRows,
		SuccessfulRows: report.SuccessfulRows,
		FailedRows:     report.FailedRows,
		Errors:         make([]dto.RowErrorResponse, 0, len(report.Errors)),
		Created:        make([]dto.CreatedRequestResponse, 0, len(report.Created)),
	}
	for _, e := range report.Errors {
		res.Errors = append(res.Errors, dto.RowErrorResponse{Row: e.RowIndex, Messages: e.Messages})
	}
	for _, c := range report.Created {
		res.Created = append(res.Created, dto.CreatedRequestResponse{
			RequestID:            c.RequestID,
			ShipmentNumber:       c.ShipmentNumber,
			SuggestedPalletCount: c.SuggestedPalletCount,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
