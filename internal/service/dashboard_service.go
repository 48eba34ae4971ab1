package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"call-metrics-service/internal/aggregator"
	"call-metrics-service/internal/model"
	"call-metrics-service/internal/normalizer"
	"call-metrics-service/internal/source"
	"call-metrics-service/internal/store"
	"call-metrics-service/internal/telemetry"
)

const dateLayout = "2006-01-02"

// ValidationError represents user input issues.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// DashboardService wires the fetch, normalize and aggregate stages for
// the presentation layer.
type DashboardService interface {
	Refresh(ctx context.Context) (model.RefreshResult, error)
	BuildFilter(req model.FilterRequest) (model.FilterSpec, error)
	GetDashboard(ctx context.Context, spec model.FilterSpec) (model.DashboardResponse, error)
	GetRecords(ctx context.Context, spec model.FilterSpec) (model.RecordsResponse, error)
}

type dashboardService struct {
	src   source.RowSource
	store *store.SnapshotStore
	log   *logrus.Entry
	now   func() time.Time

	avgVisitValue float64
	monthlyFee    float64
}

// NewDashboardService constructs a dashboardService.
func NewDashboardService(src source.RowSource, snap *store.SnapshotStore, avgVisitValue, monthlyFee float64, log *logrus.Entry) DashboardService {
	return &dashboardService{
		src:           src,
		store:         snap,
		log:           log,
		now:           time.Now,
		avgVisitValue: avgVisitValue,
		monthlyFee:    monthlyFee,
	}
}

// Refresh re-fetches raw rows from the source, normalizes them and swaps
// the snapshot. Safe to call concurrently; the last writer wins.
func (s *dashboardService) Refresh(ctx context.Context) (model.RefreshResult, error) {
	rows, err := s.src.FetchRows(ctx)
	if err != nil {
		telemetry.RecordRefresh(s.src.Name(), "error")
		return model.RefreshResult{}, fmt.Errorf("fetch rows: %w", err)
	}

	records := normalizer.Normalize(rows)
	refreshedAt := s.now().UTC()
	s.store.Replace(records, refreshedAt)

	telemetry.RecordRefresh(s.src.Name(), "ok")
	telemetry.RecordSnapshot(len(records))
	s.log.WithFields(logrus.Fields{
		"source":  s.src.Name(),
		"records": len(records),
	}).Info("snapshot refreshed")

	return model.RefreshResult{
		Source:      s.src.Name(),
		RecordCount: len(records),
		RefreshedAt: refreshedAt.Format(time.RFC3339),
	}, nil
}

// BuildFilter validates and constructs a FilterSpec from raw input.
// Empty bounds stay open; the dashboard's pickers span the full dataset.
func (s *dashboardService) BuildFilter(req model.FilterRequest) (model.FilterSpec, error) {
	var spec model.FilterSpec

	if req.From != "" {
		from, err := time.Parse(dateLayout, req.From)
		if err != nil {
			return model.FilterSpec{}, &ValidationError{Message: "invalid from date, want YYYY-MM-DD"}
		}
		spec.From = from.UTC()
	}

	if req.To != "" {
		to, err := time.Parse(dateLayout, req.To)
		if err != nil {
			return model.FilterSpec{}, &ValidationError{Message: "invalid to date, want YYYY-MM-DD"}
		}
		spec.To = to.UTC()
	}

	if !spec.From.IsZero() && !spec.To.IsZero() && spec.From.After(spec.To) {
		return model.FilterSpec{}, &ValidationError{Message: "from must not be after to"}
	}

	spec.Clinics = cleanNames(req.Clinics)
	spec.Doctors = cleanNames(req.Doctors)

	return spec, nil
}

// GetDashboard computes every aggregate view over the filtered snapshot.
func (s *dashboardService) GetDashboard(ctx context.Context, spec model.FilterSpec) (model.DashboardResponse, error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		return model.DashboardResponse{}, err
	}

	filtered := aggregator.ApplyFilter(s.store.Records(), spec)

	return model.DashboardResponse{
		Meta: s.buildMeta(spec),
		Data: model.DashboardData{
			Kpis:     aggregator.ComputeKpis(filtered, s.avgVisitValue, s.monthlyFee),
			Outcomes: aggregator.ComputeOutcomeBreakdown(filtered),
			Trend:    aggregator.ComputeTrend(filtered),
			Heatmap:  aggregator.ComputeHeatmap(filtered),
			Volume:   aggregator.ComputeVolumeComparison(filtered, s.now()),
		},
	}, nil
}

// GetRecords returns the filtered record collection for tabular display
// and export.
func (s *dashboardService) GetRecords(ctx context.Context, spec model.FilterSpec) (model.RecordsResponse, error) {
	if err := s.ensureSnapshot(ctx); err != nil {
		return model.RecordsResponse{}, err
	}

	filtered := aggregator.ApplyFilter(s.store.Records(), spec)

	return model.RecordsResponse{
		Meta:  s.buildMeta(spec),
		Total: len(filtered),
		Data:  filtered,
	}, nil
}

// ensureSnapshot lazily performs the first fetch so the service answers
// immediately after boot without waiting for the background worker.
func (s *dashboardService) ensureSnapshot(ctx context.Context) error {
	if s.store.HasData() {
		return nil
	}
	_, err := s.Refresh(ctx)
	return err
}

func (s *dashboardService) buildMeta(spec model.FilterSpec) model.DashboardMeta {
	meta := model.DashboardMeta{Source: s.src.Name()}

	if !spec.From.IsZero() {
		meta.Period.Start = spec.From.Format(dateLayout)
	}
	if !spec.To.IsZero() {
		meta.Period.End = spec.To.Format(dateLayout)
	}
	if last := s.store.LastRefresh(); !last.IsZero() {
		meta.LastRefresh = last.Format(time.RFC3339)
	}

	filters := map[string]any{}
	if len(spec.Clinics) > 0 {
		filters["clinics"] = spec.Clinics
	}
	if len(spec.Doctors) > 0 {
		filters["doctors"] = spec.Doctors
	}
	if len(filters) > 0 {
		meta.Filters = filters
	}

	return meta
}

func cleanNames(names []string) []string {
	out := make([]string, 0, len(names))
	for _, name := range names {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
