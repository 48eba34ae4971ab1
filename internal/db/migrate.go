package db

import (
	"context"
	"fmt"

	"github.com/ClickHouse/clickhouse-go/v2"
)

// RunMigrations ensures the call-attempt table exists. This keeps local
// compose setups self-contained without an external migration step; the
// service itself only ever reads from the table.
func RunMigrations(ctx context.Context, conn clickhouse.Conn, table string) error {
	err := conn.Exec(ctx, fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s
(
	call_time    DateTime64(3, 'UTC'),
	success      String,
	booking_id   String,
	error_code   String,
	clinic_name  String,
	doctor_name  String,
	latency_ms   Float64,
	ingested_at  DateTime DEFAULT now()
)
ENGINE = MergeTree
PARTITION BY toYYYYMMDD(call_time)
ORDER BY (call_time, clinic_name, doctor_name)
SETTINGS
    index_granularity = 8192;
`, table))
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}
