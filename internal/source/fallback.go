package source

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"call-metrics-service/internal/model"
)

// FallbackSource tries a primary origin and degrades to a secondary one
// when the primary fails, mirroring the dashboard's local-file recovery.
type FallbackSource struct {
	primary   RowSource
	secondary RowSource
	log       *logrus.Entry
}

func NewFallbackSource(primary, secondary RowSource, log *logrus.Entry) *FallbackSource {
	return &FallbackSource{primary: primary, secondary: secondary, log: log}
}

func (s *FallbackSource) Name() string {
	return fmt.Sprintf("%s(fallback=%s)", s.primary.Name(), s.secondary.Name())
}

func (s *FallbackSource) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	rows, err := s.primary.FetchRows(ctx)
	if err == nil {
		return rows, nil
	}

	s.log.WithError(err).WithField("primary", s.primary.Name()).
		Warn("primary source failed, using fallback")

	rows, fbErr := s.secondary.FetchRows(ctx)
	if fbErr != nil {
		return nil, fmt.Errorf("primary: %v; fallback: %w", err, fbErr)
	}
	return rows, nil
}
