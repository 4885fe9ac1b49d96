package dto

// UploadRequest is the JSON body for pasted-text uploads. File uploads use
// multipart form fields instead.
type UploadRequest struct {
	Text     string `json:"text"`
	Strategy string `json:"strategy"`
}

type RowErrorResponse struct {
	Row      int      `json:"row"`
	Messages []string `json:"messages"`
}

type CreatedRequestResponse struct {
	RequestID            int64  `json:"request_id"`
	ShipmentNumber       string `json:"shipment_number"`
	SuggestedPalletCount int    `json:"suggested_pallet_count"`
}

type UploadReportResponse struct {
	Success        bool                     `json:"success"`
	TotalRows      int                      `json:"total_rows"`
	SuccessfulRows int                      `json:"successful_rows"`
	FailedRows     int                      `json:"failed_rows"`
	Errors         []RowErrorResponse       `json:"errors"`
	Created        []CreatedRequestResponse `json:"created"`
}
