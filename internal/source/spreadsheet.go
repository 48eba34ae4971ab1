package source

import (
	"context"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"call-metrics-service/internal/model"
)

// SpreadsheetSource reads call attempts from an xlsx workbook. The first
// row of the sheet is the header; its cells become the RawRow keys.
type SpreadsheetSource struct {
	path  string
	sheet string // empty = first sheet
}

func NewSpreadsheetSource(path, sheet string) *SpreadsheetSource {
	return &SpreadsheetSource{path: path, sheet: sheet}
}

func (s *SpreadsheetSource) Name() string {
	return "spreadsheet"
}

func (s *SpreadsheetSource) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	sheet := s.sheet
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("no sheets")
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read rows: %w", err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	return mapRows(rows[0], rows[1:]), nil
}

// mapRows zips a header with data rows into RawRows. Short rows are
// padded by omission; fully empty rows are skipped.
func mapRows(header []string, rows [][]string) []model.RawRow {
	out := make([]model.RawRow, 0, len(rows))
	for _, cells := range rows {
		row := model.RawRow{}
		empty := true
		for i, key := range header {
			if strings.TrimSpace(key) == "" || i >= len(cells) {
				continue
			}
			row[key] = cells[i]
			if strings.TrimSpace(cells[i]) != "" {
				empty = false
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}
