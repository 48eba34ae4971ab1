package source

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CSVFileSourceTestSuite struct {
	suite.Suite
}

func TestCSVFileSourceSuite(t *testing.T) {
	suite.Run(t, new(CSVFileSourceTestSuite))
}

func (s *CSVFileSourceTestSuite) writeFile(content string) string {
	path := filepath.Join(s.T().TempDir(), "calls.csv")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	return path
}

func (s *CSVFileSourceTestSuite) TestFetchRows() {
	path := s.writeFile(strings.Join([]string{
		"timestamp,success,booking_id,clinic",
		"2025-01-06T09:00:00Z,true,B1,North",
		"2025-01-06T10:00:00Z,false,,South",
	}, "\n"))

	rows, err := NewCSVFileSource(path).FetchRows(context.Background())

	s.Require().NoError(err)
	s.Require().Len(rows, 2)
	s.Equal("true", rows[0]["success"])
	s.Equal("B1", rows[0]["booking_id"])
	s.Equal("South", rows[1]["clinic"])
}

func (s *CSVFileSourceTestSuite) TestFetchRows_MissingFile() {
	_, err := NewCSVFileSource("/nonexistent/calls.csv").FetchRows(context.Background())
	s.Error(err)
}

func (s *CSVFileSourceTestSuite) TestParseCSV_RaggedRows() {
	rows, err := parseCSV(strings.NewReader(strings.Join([]string{
		"timestamp,success,clinic",
		"2025-01-06T09:00:00Z,true",
		",,",
	}, "\n")))

	s.Require().NoError(err)
	// The short row keeps its present cells; the blank row is dropped.
	s.Require().Len(rows, 1)
	s.Equal("true", rows[0]["success"])
	_, hasClinic := rows[0]["clinic"]
	s.False(hasClinic)
}

func (s *CSVFileSourceTestSuite) TestParseCSV_Empty() {
	_, err := parseCSV(strings.NewReader(""))
	s.ErrorContains(err, "no header row")
}
