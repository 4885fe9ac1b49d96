package upload

import (
	"reflect"
	"testing"
)

func row(shipment, plant, part, qty, route, trailer string) RawRow {
	return RawRow{
		ColShipment:   shipment,
		ColPlant:      plant,
		ColPartNumber: part,
		ColQuantity:   qty,
		ColRoute:      route,
		ColTrailer:    trailer,
	}
}

func TestGroupRowsByShipment(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "PN100", "24", "Route A", "TRL1"),
		row("SHIP001", "PLNT", "PN200", "48", "Route A", "TRL1"),
		row("SHIP002", "PLNT", "PN300", "12", "Route B", "TRL2"),
	}

	groups := GroupRows(rows, GroupByShipment)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}

	first := groups[0]
	if first.GroupKey != "SHIP001" || first.ShipmentNumber != "SHIP001" {
		t.Fatalf("first group key/label = %q/%q", first.GroupKey, first.ShipmentNumber)
	}
	if len(first.Parts) != 2 {
		t.Fatalf("expected 2 parts in SHIP001, got %d", len(first.Parts))
	}
	if first.Parts[0].PartNumber != "PN100" || first.Parts[1].PartNumber != "PN200" {
		t.Fatalf("parts out of encounter order: %+v", first.Parts)
	}

	if groups[1].GroupKey != "SHIP002" {
		t.Fatalf("second group key = %q, want SHIP002", groups[1].GroupKey)
	}
}

func TestGroupRowsPreFilter(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "", "24", "Route A", "TRL1"),     // no part number
		row("SHIP001", "PLNT", "PN100", "", "Route A", "TRL1"),  // blank quantity
		row("SHIP001", "PLNT", "PN200", "x7", "Route A", "TRL1"), // non-numeric
		row("SHIP001", "PLNT", "PN300", "0", "Route A", "TRL1"), // zero
		row("SHIP001", "PLNT", "PN400", "-3", "Route A", "TRL1"), // negative
	}

	groups := GroupRows(rows, GroupByShipment)
	if len(groups) != 0 {
		t.Fatalf("expected all rows dropped, got %d groups", len(groups))
	}
}

func TestGroupRowsByTrailerBlankTrailer(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "PN100", "24", "Route A", ""),
		row("SHIP001", "PLNT", "PN200", "48", "Route A", ""),
	}

	groups := GroupRows(rows, GroupByTrailer)
	if len(groups) != 1 {
		t.Fatalf("expected blank trailers to merge, got %d groups", len(groups))
	}

	g := groups[0]
	if g.GroupKey != "no-trailer-SHIP001" {
		t.Fatalf("group key = %q, want no-trailer-SHIP001", g.GroupKey)
	}
	if g.ShipmentNumber != "group-no-trailer-SHIP001" {
		t.Fatalf("shipment label = %q, want group-no-trailer-SHIP001", g.ShipmentNumber)
	}
	if len(g.Parts) != 2 {
		t.Fatalf("expected 2 parts, got %d", len(g.Parts))
	}
}

func TestGroupRowsByRoute(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "PN100", "24", "", "TRL1"),
		row("SHIP001", "PLNT", "PN200", "24", "Route A", "TRL2"),
	}

	groups := GroupRows(rows, GroupByRoute)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if groups[0].ShipmentNumber != "group-no-route-SHIP001" {
		t.Fatalf("blank route label = %q", groups[0].ShipmentNumber)
	}
	if groups[1].ShipmentNumber != "group-Route A-SHIP001" {
		t.Fatalf("route label = %q", groups[1].ShipmentNumber)
	}
}

func TestGroupRowsByPartMergesAcrossShipments(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "PN100", "24", "Route A", "TRL1"),
		row("SHIP002", "PLNT", "PN100", "48", "Route B", "TRL2"),
	}

	groups := GroupRows(rows, GroupByPart)
	if len(groups) != 1 {
		t.Fatalf("expected 1 merged group, got %d", len(groups))
	}

	g := groups[0]
	if g.GroupKey != "PN100" || g.ShipmentNumber != "PN100-group" {
		t.Fatalf("group key/label = %q/%q", g.GroupKey, g.ShipmentNumber)
	}
	// Parts keep their own trailer numbers; a group can span trailers.
	if g.Parts[0].TrailerNumber != "TRL1" || g.Parts[1].TrailerNumber != "TRL2" {
		t.Fatalf("trailer numbers not retained per part: %+v", g.Parts)
	}
}

func TestGroupRowsFirstRowWins(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT-A", "PN100", "24", "Route A", "TRL1"),
		row("SHIP001", "PLNT-B", "PN200", "48", "Route B", "TRL1"),
	}

	groups := GroupRows(rows, GroupByShipment)
	if len(groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(groups))
	}
	// Plant and route stay from the row that opened the group.
	if groups[0].Plant != "PLNT-A" || groups[0].RouteInfo != "Route A" {
		t.Fatalf("group plant/route = %q/%q, want first row's values",
			groups[0].Plant, groups[0].RouteInfo)
	}
}

func TestGroupRowsBlankShipmentIsItsOwnGroup(t *testing.T) {
	rows := []RawRow{
		row("", "PLNT", "PN100", "24", "Route A", "TRL1"),
		row("", "PLNT", "PN200", "48", "Route A", "TRL1"),
		row("SHIP001", "PLNT", "PN300", "12", "Route A", "TRL1"),
	}

	groups := GroupRows(rows, GroupByShipment)
	if len(groups) != 2 {
		t.Fatalf("expected 2 groups, got %d", len(groups))
	}
	if len(groups[0].Parts) != 2 || groups[0].ShipmentNumber != "" {
		t.Fatalf("blank shipment group malformed: %+v", groups[0])
	}
}

func TestGroupRowsIdempotent(t *testing.T) {
	rows := []RawRow{
		row("SHIP001", "PLNT", "PN100", "24", "Route A", "TRL1"),
		row("SHIP002", "PLNT", "PN200", "48", "Route B", "TRL2"),
		row("SHIP001", "PLNT", "PN300", "12", "Route A", "TRL1"),
	}

	first := GroupRows(rows, GroupByShipment)
	second := GroupRows(rows, GroupByShipment)

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("grouping not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}
