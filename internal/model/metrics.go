package model

import "time"

// FilterRequest represents raw filter input from the HTTP layer.
type FilterRequest struct {
	From    string   `json:"from"` // YYYY-MM-DD, empty = unbounded
	To      string   `json:"to"`
	Clinics []string `json:"clinics"`
	Doctors []string `json:"doctors"`
}

// FilterSpec is the validated filter applied to a record snapshot.
// Zero From/To mean no bound on that side; empty name slices mean no
// restriction on that dimension.
type FilterSpec struct {
	From    time.Time
	To      time.Time
	Clinics []string
	Doctors []string
}

// KpiSnapshot holds the scalar dashboard metrics for a filtered set.
type KpiSnapshot struct {
	RecordCount    int     `json:"record_count"`
	BookedCount    int     `json:"booked_count"`
	MissedCount    int     `json:"missed_count"`
	ResolvedCount  int     `json:"resolved_count"`
	SuccessRatePct float64 `json:"success_rate_pct"`
	AvgLatencyMs   float64 `json:"avg_latency_ms"`
	LatencyDefined int     `json:"latency_defined"`
	Revenue        float64 `json:"revenue"`
	NetROI         float64 `json:"net_roi"`
}

// TrendPoint is a per-date aggregate of attempts vs. booked calls.
type TrendPoint struct {
	Date     string `json:"date"` // YYYY-MM-DD
	Attempts int    `json:"attempts"`
	Booked   int    `json:"booked"`
}

// HeatCell is an attempt count for one observed (weekday, hour) pair.
type HeatCell struct {
	Weekday  string `json:"weekday"` // Mon..Sun
	Hour     int    `json:"hour"`    // 0-23
	Attempts int    `json:"attempts"`
}

// OutcomeCount is one bucket of the outcome distribution.
type OutcomeCount struct {
	Outcome Outcome `json:"outcome"`
	Count   int     `json:"count"`
}

// VolumeComparison contrasts attempts on a reference date with the day
// before it.
type VolumeComparison struct {
	Date      string `json:"date"`
	Attempts  int    `json:"attempts"`
	Yesterday int    `json:"yesterday"`
	Delta     int    `json:"delta"`
}

// DashboardResponse is returned to the presentation layer.
type DashboardResponse struct {
	Meta DashboardMeta `json:"meta"`
	Data DashboardData `json:"data"`
}

// DashboardMeta describes the query and the snapshot it ran against.
type DashboardMeta struct {
	Period      MetricsPeriod  `json:"period"`
	Filters     map[string]any `json:"filters,omitempty"`
	Source      string         `json:"source,omitempty"`
	LastRefresh string         `json:"last_refresh,omitempty"`
}

// MetricsPeriod captures the effective time window.
type MetricsPeriod struct {
	Start string `json:"start,omitempty"`
	End   string `json:"end,omitempty"`
}

// DashboardData holds the aggregated views.
type DashboardData struct {
	Kpis     KpiSnapshot      `json:"kpis"`
	Outcomes []OutcomeCount   `json:"outcomes"`
	Trend    []TrendPoint     `json:"trend"`
	Heatmap  []HeatCell       `json:"heatmap"`
	Volume   VolumeComparison `json:"volume_comparison"`
}

// RecordsResponse wraps the filtered record collection.
type RecordsResponse struct {
	Meta  DashboardMeta `json:"meta"`
	Total int           `json:"total"`
	Data  []CallRecord  `json:"data"`
}

// RefreshResult reports the outcome of a snapshot refresh.
type RefreshResult struct {
	Source      string `json:"source"`
	RecordCount int    `json:"record_count"`
	RefreshedAt string `json:"refreshed_at"`
}
