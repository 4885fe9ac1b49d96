package upload

// Column labels shared by both parser entry points. The spreadsheet path
// keys rows by the workbook's own header row, which carries these labels;
// the text path assigns positional fields to the same labels so the grouper
// sees one uniform shape.
const (
	ColShipment   = "SHIPMENT"
	ColPlant      = "PLANT"
	ColPartNumber = "DELPHI P/N"
	ColQuantity   = "MG QTY"
	ColRoute      = "INSTRUCTIONS"
	ColTrailer    = "1ST truck #"
)

// RawRow is one physical input row, mapped column label -> cell text.
// Columns outside the known set are carried but ignored downstream.
type RawRow map[string]string

// Strategy selects which raw rows coalesce into one request.
type Strategy string

const (
	GroupByShipment Strategy = "shipment"
	GroupByTrailer  Strategy = "trailer"
	GroupByRoute    Strategy = "route"
	GroupByPart     Strategy = "part"
)

func (s Strategy) Valid() bool {
	switch s {
	case GroupByShipment, GroupByTrailer, GroupByRoute, GroupByPart:
		return true
	}
	return false
}

// PartLine is one usable part row after the pre-filter: part number present
// and quantity parsed to a positive integer. It retains its own trailer
// number, so one group may span several trailers.
type PartLine struct {
	PartNumber     string
	Quantity       int
	ShipmentNumber string
	Plant          string
	TrailerNumber  string
	RouteInfo      string
}

// RequestGroup is one logical request accumulated from rows sharing a group
// key. Plant and RouteInfo come from the first row that created the group.
// Parts is never empty: a group only exists because a part line was added.
type RequestGroup struct {
	GroupKey       string
	ShipmentNumber string
	Plant          string
	RouteInfo      string
	Parts          []PartLine
}
