package mockservice

import (
	"context"

	"github.com/stretchr/testify/mock"

	"call-metrics-service/internal/model"
)

type Service struct {
	mock.Mock
}

func (m *Service) Refresh(ctx context.Context) (model.RefreshResult, error) {
	args := m.Called(ctx)
	return args.Get(0).(model.RefreshResult), args.Error(1)
}

func (m *Service) BuildFilter(req model.FilterRequest) (model.FilterSpec, error) {
	args := m.Called(req)
	return args.Get(0).(model.FilterSpec), args.Error(1)
}

func (m *Service) GetDashboard(ctx context.Context, spec model.FilterSpec) (model.DashboardResponse, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(model.DashboardResponse), args.Error(1)
}

func (m *Service) GetRecords(ctx context.Context, spec model.FilterSpec) (model.RecordsResponse, error) {
	args := m.Called(ctx, spec)
	return args.Get(0).(model.RecordsResponse), args.Error(1)
}
