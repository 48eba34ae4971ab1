package source

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"call-metrics-service/internal/testdata/mockclickhouseconnection"
	"call-metrics-service/internal/testdata/mockclickhouserows"
)

type ClickHouseSourceTestSuite struct {
	suite.Suite
	conn *mockclickhouseconnection.Connection
	src  *ClickHouseSource
}

func TestClickHouseSourceSuite(t *testing.T) {
	suite.Run(t, new(ClickHouseSourceTestSuite))
}

func (s *ClickHouseSourceTestSuite) SetupTest() {
	s.conn = &mockclickhouseconnection.Connection{}
	s.src = NewClickHouseSource(s.conn, "call_attempts")
}

func (s *ClickHouseSourceTestSuite) TestFetchRows() {
	rows := &mockclickhouserows.Rows{Data: [][]any{
		{
			time.Date(2025, 1, 6, 9, 0, 0, 0, time.UTC),
			"true", "B1", "", "North", "Dr. Kaya", 700.5,
		},
		{
			time.Date(2025, 1, 6, 10, 0, 0, 0, time.UTC),
			"false", "", "SLOT_BUSY", "South", "Dr. Demir", 900.0,
		},
	}}
	s.conn.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	out, err := s.src.FetchRows(context.Background())

	s.Require().NoError(err)
	s.Require().Len(out, 2)
	s.Equal("2025-01-06T09:00:00Z", out[0]["timestamp"])
	s.Equal("true", out[0]["success"])
	s.Equal("B1", out[0]["booking_id"])
	s.Equal("North", out[0]["clinic_name"])
	s.Equal("700.5", out[0]["latency_ms"])
	s.Equal("SLOT_BUSY", out[1]["error_code"])
	s.True(rows.Closed())
}

func (s *ClickHouseSourceTestSuite) TestFetchRows_QueryError() {
	s.conn.On("Query", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))

	_, err := s.src.FetchRows(context.Background())
	s.Error(err)
}

func (s *ClickHouseSourceTestSuite) TestFetchRows_IterationError() {
	rows := &mockclickhouserows.Rows{IterErr: errors.New("stream cut")}
	s.conn.On("Query", mock.Anything, mock.Anything, mock.Anything).Return(rows, nil)

	_, err := s.src.FetchRows(context.Background())
	s.ErrorContains(err, "iterate rows")
}

func (s *ClickHouseSourceTestSuite) TestName() {
	s.Equal("clickhouse", s.src.Name())
}
