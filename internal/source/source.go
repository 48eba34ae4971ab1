package source

import (
	"context"

	"call-metrics-service/internal/model"
)

// RowSource fetches raw call-attempt rows from an external origin. All
// I/O happens here, strictly before the normalize/aggregate pipeline runs.
type RowSource interface {
	// Name identifies the source in logs, metrics and response metadata.
	Name() string

	// FetchRows returns every available row as a string-keyed mapping.
	FetchRows(ctx context.Context) ([]model.RawRow, error)
}
