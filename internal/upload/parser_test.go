package upload

import (
	"testing"

	"github.com/xuri/excelize/v2"
)

const pastedFixture = "HEADER_IGNORED\n" +
	"SHIP001,,PLNT,CPN,PN100,24,Route A,TRL1,\n" +
	"SHIP001,,PLNT,CPN,PN200,48,Route A,TRL1,\n" +
	"SHIP002,,PLNT,CPN,PN300,0,Route B,TRL2,\n"

func TestParseTextFixedColumns(t *testing.T) {
	rows, err := ParseText(pastedFixture)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}

	first := rows[0]
	if first[ColShipment] != "SHIP001" {
		t.Fatalf("shipment = %q, want SHIP001", first[ColShipment])
	}
	if first[ColPlant] != "PLNT" {
		t.Fatalf("plant = %q, want PLNT", first[ColPlant])
	}
	if first[ColPartNumber] != "PN100" {
		t.Fatalf("part number = %q, want PN100", first[ColPartNumber])
	}
	if first[ColQuantity] != "24" {
		t.Fatalf("quantity = %q, want 24", first[ColQuantity])
	}
	if first[ColRoute] != "Route A" {
		t.Fatalf("route = %q, want Route A", first[ColRoute])
	}
	if first[ColTrailer] != "TRL1" {
		t.Fatalf("trailer = %q, want TRL1", first[ColTrailer])
	}

	// Zero quantity passes through the parser untouched; dropping it is
	// the grouper's job.
	if rows[2][ColQuantity] != "0" {
		t.Fatalf("third row quantity = %q, want 0", rows[2][ColQuantity])
	}
}

func TestParseTextQuantityFallback(t *testing.T) {
	text := "HEADER\n" +
		"SHIP001,,PLNT,CPN,PN100,,Route A,TRL1,36\n" +
		"SHIP001,,PLNT,CPN,PN200,,Route A,TRL1,\n"

	rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if rows[0][ColQuantity] != "36" {
		t.Fatalf("fallback quantity = %q, want 36", rows[0][ColQuantity])
	}
	// Both quantity fields blank stays blank (dropped later, not defaulted).
	if rows[1][ColQuantity] != "" {
		t.Fatalf("quantity = %q, want empty", rows[1][ColQuantity])
	}
}

func TestParseTextPercentDecodeAndBlankLines(t *testing.T) {
	text := "HEADER\r\n\r\nSHIP001%20A,,PLNT,CPN,PN100,24,Route%20A,TRL1,\r\n\r\n"

	rows, err := ParseText(text)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0][ColShipment] != "SHIP001 A" {
		t.Fatalf("shipment = %q, want %q", rows[0][ColShipment], "SHIP001 A")
	}
	if rows[0][ColRoute] != "Route A" {
		t.Fatalf("route = %q, want %q", rows[0][ColRoute], "Route A")
	}
}

func TestParseTextBadPercentEscape(t *testing.T) {
	if _, err := ParseText("HEADER\nSHIP%ZZ,,P,C,PN,1,R,T,"); err == nil {
		t.Fatal("expected error for invalid percent escape")
	}
}

func TestParseTextShortLines(t *testing.T) {
	rows, err := ParseText("HEADER\nSHIP001,,PLNT,CPN,PN100\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	// Missing positions are blank, not an error at this stage.
	if rows[0][ColQuantity] != "" || rows[0][ColTrailer] != "" {
		t.Fatalf("expected blank quantity and trailer, got %q / %q",
			rows[0][ColQuantity], rows[0][ColTrailer])
	}
}

func TestParseTextHeaderOnly(t *testing.T) {
	rows, err := ParseText("HEADER_ONLY\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func buildWorkbook(t *testing.T, header []any, lines [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		t.Fatalf("set header row: %v", err)
	}
	for i, line := range lines {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &line); err != nil {
			t.Fatalf("set row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestParseSpreadsheet(t *testing.T) {
	data := buildWorkbook(t,
		[]any{"SHIPMENT", "PLANT", "DELPHI P/N", "MG QTY", "INSTRUCTIONS", "1ST truck #"},
		[][]any{
			{"SHIP001", "PLNT", "PN100", 24, "Route A", "TRL1"},
			{"SHIP002", "PLNT", "PN200", 48, "Route B", "TRL2"},
		},
	)

	rows, err := ParseSpreadsheet(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0][ColShipment] != "SHIP001" {
		t.Fatalf("shipment = %q, want SHIP001", rows[0][ColShipment])
	}
	if rows[0][ColQuantity] != "24" {
		t.Fatalf("quantity = %q, want 24", rows[0][ColQuantity])
	}
	if rows[1][ColTrailer] != "TRL2" {
		t.Fatalf("trailer = %q, want TRL2", rows[1][ColTrailer])
	}
}

func TestParseSpreadsheetHeaderOnly(t *testing.T) {
	data := buildWorkbook(t,
		[]any{"SHIPMENT", "PLANT", "DELPHI P/N", "MG QTY", "INSTRUCTIONS", "1ST truck #"},
		nil,
	)

	rows, err := ParseSpreadsheet(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("expected no rows, got %d", len(rows))
	}
}

func TestParseSpreadsheetCorruptBytes(t *testing.T) {
	if _, err := ParseSpreadsheet([]byte("not a workbook")); err == nil {
		t.Fatal("expected error for undecodable bytes")
	}
}
