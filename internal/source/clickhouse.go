package source

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"

	"call-metrics-service/internal/model"
)

// fetchRowsQuery reads the full call-attempt table. The column list is
// fixed; %s is the configured table name.
const fetchRowsQuery = `
	SELECT call_time, success, booking_id, error_code, clinic_name, doctor_name, latency_ms
	FROM %s
	ORDER BY call_time
`

// ClickHouseSource reads call attempts from a ClickHouse table.
type ClickHouseSource struct {
	conn  clickhouse.Conn
	table string
}

func NewClickHouseSource(conn clickhouse.Conn, table string) *ClickHouseSource {
	return &ClickHouseSource{conn: conn, table: table}
}

func (s *ClickHouseSource) Name() string {
	return "clickhouse"
}

func (s *ClickHouseSource) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	rows, err := s.conn.Query(ctx, fmt.Sprintf(fetchRowsQuery, s.table))
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", s.table, err)
	}
	defer rows.Close()

	var out []model.RawRow
	for rows.Next() {
		var (
			callTime  time.Time
			success   string
			bookingID string
			errorCode string
			clinic    string
			doctor    string
			latencyMs float64
		)
		if err := rows.Scan(&callTime, &success, &bookingID, &errorCode, &clinic, &doctor, &latencyMs); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		out = append(out, model.RawRow{
			"timestamp":   callTime.UTC().Format(time.RFC3339),
			"success":     success,
			"booking_id":  bookingID,
			"error_code":  errorCode,
			"clinic_name": clinic,
			"doctor_name": doctor,
			"latency_ms":  strconv.FormatFloat(latencyMs, 'f', -1, 64),
		})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
