package source

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"call-metrics-service/internal/model"
)

// CSVFileSource reads call attempts from a local CSV file with a header
// row. It doubles as the fallback origin when a remote source is down.
type CSVFileSource struct {
	path string
}

func NewCSVFileSource(path string) *CSVFileSource {
	return &CSVFileSource{path: path}
}

func (s *CSVFileSource) Name() string {
	return "csv-file"
}

func (s *CSVFileSource) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer f.Close()

	return parseCSV(f)
}

func parseCSV(r io.Reader) ([]model.RawRow, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("parse csv: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("no header row")
	}

	return mapRows(records[0], records[1:]), nil
}
