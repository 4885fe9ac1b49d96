package upload

import (
	"context"
	"fmt"

	"mustgo-request-service/internal/domain"
	"mustgo-request-service/internal/ports"
)

// Input is one bulk upload: either raw workbook bytes or pasted text, plus
// the grouping strategy and the acting user. The caller has already
// confirmed the user may create requests.
type Input struct {
	FileBytes []byte
	Text      string
	Strategy  Strategy
	UserID    string
	UserRole  domain.Role
}

// RowError records why one group failed, keyed by the group's 1-based
// position in the grouper's output.
type RowError struct {
	RowIndex int      `json:"row"`
	Messages []string `json:"messages"`
}

// CreatedRequest is the handoff for the post-upload pallet override flow:
// what was created and the pallet count the pipeline suggested for it.
type CreatedRequest struct {
	RequestID            int64  `json:"request_id"`
	ShipmentNumber       string `json:"shipment_number"`
	SuggestedPalletCount int    `json:"suggested_pallet_count"`
}

// Report aggregates the outcome of one upload. TotalRows counts request
// groups, not raw input rows.
type Report struct {
	Success        bool             `json:"success"`
	TotalRows      int              `json:"total_rows"`
	SuccessfulRows int              `json:"successful_rows"`
	FailedRows     int              `json:"failed_rows"`
	Errors         []RowError       `json:"errors"`
	Created        []CreatedRequest `json:"created"`
}

// Pipeline converts raw upload input into persisted must-go requests:
// parse, group, validate, then persist each valid group in its own
// transaction. One group's failure never blocks or rolls back another's.
type Pipeline struct {
	Store ports.RequestStore
}

// Run processes one upload to completion and returns the aggregate report.
// Only a malformed input (undecodable workbook or text) or an unknown
// strategy fails the whole call; validation and persistence failures are
// captured per group inside the report.
func (p *Pipeline) Run(ctx context.Context, in Input) (*Report, error) {
	if !in.Strategy.Valid() {
		return nil, fmt.Errorf("run upload: unknown grouping strategy %q", in.Strategy)
	}

	var rows []RawRow
	var err error
	if len(in.FileBytes) > 0 {
		rows, err = ParseSpreadsheet(in.FileBytes)
	} else {
		rows, err = ParseText(in.Text)
	}
	if err != nil {
		return nil, fmt.Errorf("run upload: %w", err)
	}

	groups := GroupRows(rows, in.Strategy)

	report := &Report{
		TotalRows: len(groups),
		Errors:    []RowError{},
		Created:   []CreatedRequest{},
	}

	for i, group := range groups {
		result := ValidateGroup(group)
		if !result.IsValid {
			report.FailedRows++
			report.Errors = append(report.Errors, RowError{RowIndex: i + 1, Messages: result.Errors})
			continue
		}

		created, err := p.Store.SaveRequestGroup(ctx, buildRequest(group, in))
		if err != nil {
			report.FailedRows++
			report.Errors = append(report.Errors, RowError{RowIndex: i + 1, Messages: []string{err.Error()}})
			continue
		}

		report.SuccessfulRows++
		report.Created = append(report.Created, CreatedRequest{
			RequestID:            created.ID,
			ShipmentNumber:       created.ShipmentNumber,
			SuggestedPalletCount: created.PalletCount,
		})
	}

	report.Success = report.FailedRows == 0
	return report, nil
}

// buildRequest shapes one validated group into the graph the store commits:
// total pallet count summed over parts, parts partitioned by their own
// trailer number in first-encounter order.
func buildRequest(group *RequestGroup, in Input) *domain.NewRequest {
	totalPallets := 0
	for _, part := range group.Parts {
		totalPallets += domain.PalletCount(part.Quantity)
	}

	byTrailer := make(map[string]int)
	trailers := make([]domain.NewTrailer, 0, 1)
	for _, part := range group.Parts {
		idx, ok := byTrailer[part.TrailerNumber]
		if !ok {
			idx = len(trailers)
			byTrailer[part.TrailerNumber] = idx
			trailers = append(trailers, domain.NewTrailer{TrailerNumber: part.TrailerNumber})
		}
		trailers[idx].Parts = append(trailers[idx].Parts, domain.NewPartDetail{
			PartNumber: part.PartNumber,
			Quantity:   part.Quantity,
		})
	}

	return &domain.NewRequest{
		ShipmentNumber: group.ShipmentNumber,
		Plant:          group.Plant,
		RouteInfo:      group.RouteInfo,
		PalletCount:    totalPallets,
		CreatedBy:      in.UserID,
		Status:         domain.InitialStatus(in.UserRole),
		AuditNote:      fmt.Sprintf("Request created with %d part number(s)", len(group.Parts)),
		Trailers:       trailers,
	}
}
