package mockclickhouserows

import (
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
)

// Rows is a data-backed driver.Rows fake. Each entry of Data is one row
// whose values are copied into the scan destinations in order.
type Rows struct {
	Data    [][]any
	IterErr error

	idx    int
	closed bool
}

var _ driver.Rows = &Rows{}

func (r *Rows) Next() bool {
	if r.idx >= len(r.Data) {
		return false
	}
	r.idx++
	return true
}

func (r *Rows) Scan(dest ...any) error {
	row := r.Data[r.idx-1]
	if len(dest) != len(row) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(row), len(dest))
	}
	for i, v := range row {
		switch d := dest[i].(type) {
		case *time.Time:
			*d = v.(time.Time)
		case *string:
			*d = v.(string)
		case *float64:
			*d = v.(float64)
		default:
			return fmt.Errorf("scan: unsupported destination %T", dest[i])
		}
	}
	return nil
}

func (r *Rows) ScanStruct(dest any) error {
	return fmt.Errorf("scan struct: not supported")
}

func (r *Rows) ColumnTypes() []driver.ColumnType {
	return nil
}

func (r *Rows) Totals(dest ...any) error {
	return nil
}

func (r *Rows) Columns() []string {
	return nil
}

func (r *Rows) Close() error {
	r.closed = true
	return nil
}

func (r *Rows) Closed() bool {
	return r.closed
}

func (r *Rows) Err() error {
	return r.IterErr
}
