package mocksource

import (
	"context"

	"github.com/stretchr/testify/mock"

	"call-metrics-service/internal/model"
)

type Source struct {
	mock.Mock
}

func (m *Source) Name() string {
	return m.Called().String(0)
}

func (m *Source) FetchRows(ctx context.Context) ([]model.RawRow, error) {
	args := m.Called(ctx)
	if v := args.Get(0); v != nil {
		return v.([]model.RawRow), args.Error(1)
	}
	return nil, args.Error(1)
}
