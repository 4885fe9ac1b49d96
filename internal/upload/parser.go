package upload

import (
	"bytes"
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"github.com/xuri/excelize/v2"
)

var (
	lineSplitter  = regexp.MustCompile(`[\r\n]+`)
	fieldSplitter = regexp.MustCompile(`[\t,]`)
)

// Positional slots for pasted tabular text. The header line is skipped and
// a fixed column order is assumed instead of reading it.
const (
	posShipment    = 0
	posPlant       = 2
	posPartNumber  = 4
	posQuantity    = 5
	posRoute       = 6
	posTrailer     = 7
	posQuantityAlt = 8
)

// ParseSpreadsheet decodes the first worksheet of a binary workbook into
// RawRows keyed by the worksheet's header row labels. A workbook with no
// data rows yields an empty sequence; undecodable bytes are an error and
// abort the whole upload.
func ParseSpreadsheet(data []byte) ([]RawRow, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet: open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return []RawRow{}, nil
	}

	cells, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("parse spreadsheet: read sheet %q: %w", sheets[0], err)
	}
	if len(cells) == 0 {
		return []RawRow{}, nil
	}

	header := cells[0]
	rows := make([]RawRow, 0, len(cells)-1)
	for _, line := range cells[1:] {
		row := make(RawRow, len(header))
		for i, label := range header {
			label = strings.TrimSpace(label)
			if label == "" {
				continue
			}
			if i < len(line) {
				row[label] = line[i]
			} else {
				row[label] = ""
			}
		}
		rows = append(rows, row)
	}

	return rows, nil
}

// ParseText converts pasted delimited text into RawRows. The text is
// percent-decoded, split into lines on runs of CR/LF, blank lines are
// dropped, the first remaining line (the header) is skipped, and each data
// line is split on every tab or comma into positional fields. Short lines
// simply leave their missing slots blank; no row-level validation happens
// here.
func ParseText(text string) ([]RawRow, error) {
	decoded, err := url.PathUnescape(text)
	if err != nil {
		return nil, fmt.Errorf("parse text: percent-decode: %w", err)
	}

	lines := make([]string, 0, 16)
	for _, line := range lineSplitter.Split(decoded, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	if len(lines) <= 1 {
		return []RawRow{}, nil
	}

	rows := make([]RawRow, 0, len(lines)-1)
	for _, line := range lines[1:] {
		fields := fieldSplitter.Split(line, -1)
		at := func(pos int) string {
			if pos < len(fields) {
				return strings.TrimSpace(fields[pos])
			}
			return ""
		}

		// Primary quantity column, else the trailing fallback column.
		// Both blank leaves the quantity blank so the grouper drops the
		// row, which is distinct from defaulting it.
		quantity := at(posQuantity)
		if quantity == "" {
			quantity = at(posQuantityAlt)
		}

		rows = append(rows, RawRow{
			ColShipment:   at(posShipment),
			ColPlant:      at(posPlant),
			ColPartNumber: at(posPartNumber),
			ColQuantity:   quantity,
			ColRoute:      at(posRoute),
			ColTrailer:    at(posTrailer),
		})
	}

	return rows, nil
}
