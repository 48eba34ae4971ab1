package export

import (
	"bytes"
	"encoding/csv"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"call-metrics-service/internal/model"
	"call-metrics-service/internal/normalizer"
)

type CSVExportTestSuite struct {
	suite.Suite
}

func TestCSVExportSuite(t *testing.T) {
	suite.Run(t, new(CSVExportTestSuite))
}

func (s *CSVExportTestSuite) TestWriteRecords() {
	records := normalizer.Normalize([]model.RawRow{
		{
			"timestamp":      "2025-01-06T09:00:00Z",
			"success":        "true",
			"query_resolved": "Yes",
			"booking_id":     "B1",
			"clinic":         "North",
			"doctor":         "Dr. Kaya",
			"latency_ms":     "700",
			"campaign":       "winter",
		},
		{
			"timestamp":  "2025-01-07T10:00:00Z",
			"success":    "false",
			"error_code": "SLOT_BUSY",
			"clinic":     "South",
		},
	})

	var buf bytes.Buffer
	s.Require().NoError(WriteRecords(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 3)

	// Derived columns first, unrecognized raw columns appended.
	s.Equal(append(append([]string{}, derivedHeader...), "campaign"), rows[0])

	s.Equal("2025-01-06T09:00:00Z", rows[1][0])
	s.Equal("Mon", rows[1][2])
	s.Equal("9", rows[1][3])
	s.Equal("true", rows[1][4])
	s.Equal("true", rows[1][5])
	s.Equal("B1", rows[1][6])
	s.Equal("700", rows[1][10])
	s.Equal("BOOKED", rows[1][11])
	s.Equal("winter", rows[1][12])

	// The second record lacks the campaign column; the cell stays empty.
	s.Equal("SLOT_BUSY", rows[2][7])
	s.Equal("", rows[2][12])
}

func (s *CSVExportTestSuite) TestWriteRecords_OptionalFieldsEmpty() {
	records := []model.CallRecord{{Outcome: model.OutcomeOther}}

	var buf bytes.Buffer
	s.Require().NoError(WriteRecords(&buf, records))

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 2)

	// timestamp, hour, success, resolved and latency render as empty strings.
	s.Equal("", rows[1][0])
	s.Equal("", rows[1][3])
	s.Equal("", rows[1][4])
	s.Equal("", rows[1][5])
	s.Equal("", rows[1][10])
	s.Equal("OTHER", rows[1][11])
}

func (s *CSVExportTestSuite) TestWriteRecords_EmptyInput() {
	var buf bytes.Buffer
	s.Require().NoError(WriteRecords(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal(derivedHeader, rows[0])
}

func (s *CSVExportTestSuite) TestDerivedValues_Timestamp() {
	ts := time.Date(2025, 3, 1, 15, 30, 0, 0, time.UTC)
	values := derivedValues(model.CallRecord{
		Timestamp: &ts,
		Date:      "2025-03-01",
		Hour:      15,
		Weekday:   "Sat",
		Outcome:   model.OutcomeOther,
	})

	s.Equal("2025-03-01T15:30:00Z", values[0])
	s.Equal("15", values[3])
}
