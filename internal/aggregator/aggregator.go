package aggregator

import (
	"math"
	"sort"
	"time"

	"call-metrics-service/internal/model"
)

// weekdayOrder fixes the Mon→Sun display ordering of heatmap cells.
var weekdayOrder = map[string]int{
	"Mon": 0, "Tue": 1, "Wed": 2, "Thu": 3, "Fri": 4, "Sat": 5, "Sun": 6,
}

// ApplyFilter keeps records matching every predicate of the spec. All
// predicates are conjunctive and the filter is idempotent. A record with
// no derived date is exempt from the date bounds rather than dropped.
func ApplyFilter(records []model.CallRecord, spec model.FilterSpec) []model.CallRecord {
	filtered := make([]model.CallRecord, 0, len(records))
	for _, rec := range records {
		if !inDateRange(rec, spec.From, spec.To) {
			continue
		}
		if !matchDimension(rec.Clinic, spec.Clinics) {
			continue
		}
		if !matchDimension(rec.Doctor, spec.Doctors) {
			continue
		}
		filtered = append(filtered, rec)
	}
	return filtered
}

// inDateRange compares calendar dates, so a To bound of 2025-01-05 keeps
// every record from that day regardless of the time component.
func inDateRange(rec model.CallRecord, from, to time.Time) bool {
	if rec.Timestamp == nil {
		return true
	}
	ts := rec.Timestamp
	day := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
	if !from.IsZero() && day.Before(from) {
		return false
	}
	if !to.IsZero() && day.After(to) {
		return false
	}
	return true
}

func matchDimension(value string, allowed []string) bool {
	if len(allowed) == 0 {
		return true
	}
	for _, name := range allowed {
		if value == name {
			return true
		}
	}
	return false
}

// ComputeKpis derives the scalar dashboard metrics from a filtered set.
// Empty input yields zero values, with NetROI = -monthlyFee.
func ComputeKpis(records []model.CallRecord, avgVisitValue, monthlyFee float64) model.KpiSnapshot {
	kpis := model.KpiSnapshot{RecordCount: len(records)}

	successDefined := 0
	successTrue := 0
	latencySum := 0.0
	for _, rec := range records {
		if rec.Outcome == model.OutcomeBooked {
			kpis.BookedCount++
		}
		if rec.Success != nil {
			successDefined++
			if *rec.Success {
				successTrue++
			}
		}
		if rec.Resolved != nil && *rec.Resolved {
			kpis.ResolvedCount++
		}
		if rec.LatencyMs != nil {
			kpis.LatencyDefined++
			latencySum += *rec.LatencyMs
		}
	}

	kpis.MissedCount = kpis.RecordCount - kpis.BookedCount
	kpis.SuccessRatePct = safeDivide(float64(successTrue), float64(successDefined)) * 100
	kpis.AvgLatencyMs = safeDivide(latencySum, float64(kpis.LatencyDefined))
	kpis.Revenue = float64(kpis.BookedCount) * avgVisitValue
	kpis.NetROI = kpis.Revenue - monthlyFee

	return kpis
}

// ComputeTrend groups by calendar date and emits attempts vs. booked per
// day, ascending. Records without a derived date are excluded from this
// view only.
func ComputeTrend(records []model.CallRecord) []model.TrendPoint {
	attempts := map[string]int{}
	booked := map[string]int{}
	for _, rec := range records {
		if rec.Timestamp == nil {
			continue
		}
		attempts[rec.Date]++
		if rec.Outcome == model.OutcomeBooked {
			booked[rec.Date]++
		}
	}

	trend := make([]model.TrendPoint, 0, len(attempts))
	for date, n := range attempts {
		trend = append(trend, model.TrendPoint{Date: date, Attempts: n, Booked: booked[date]})
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].Date < trend[j].Date })
	return trend
}

// ComputeHeatmap counts attempts per observed (weekday, hour) pair,
// ordered Mon→Sun then hour ascending for display.
func ComputeHeatmap(records []model.CallRecord) []model.HeatCell {
	type cellKey struct {
		weekday string
		hour    int
	}
	counts := map[cellKey]int{}
	for _, rec := range records {
		if rec.Timestamp == nil {
			continue
		}
		counts[cellKey{rec.Weekday, rec.Hour}]++
	}

	cells := make([]model.HeatCell, 0, len(counts))
	for key, n := range counts {
		cells = append(cells, model.HeatCell{Weekday: key.weekday, Hour: key.hour, Attempts: n})
	}
	sort.Slice(cells, func(i, j int) bool {
		if weekdayOrder[cells[i].Weekday] != weekdayOrder[cells[j].Weekday] {
			return weekdayOrder[cells[i].Weekday] < weekdayOrder[cells[j].Weekday]
		}
		return cells[i].Hour < cells[j].Hour
	})
	return cells
}

// ComputeOutcomeBreakdown counts records per outcome category, in the
// fixed BOOKED, SLOT_UNAVAILABLE, CLOSED, OTHER order.
func ComputeOutcomeBreakdown(records []model.CallRecord) []model.OutcomeCount {
	counts := map[model.Outcome]int{}
	for _, rec := range records {
		counts[rec.Outcome]++
	}

	order := []model.Outcome{
		model.OutcomeBooked,
		model.OutcomeSlotUnavailable,
		model.OutcomeClosed,
		model.OutcomeOther,
	}
	breakdown := make([]model.OutcomeCount, 0, len(order))
	for _, outcome := range order {
		breakdown = append(breakdown, model.OutcomeCount{Outcome: outcome, Count: counts[outcome]})
	}
	return breakdown
}

// ComputeVolumeComparison contrasts attempts on the reference date with
// the previous calendar day.
func ComputeVolumeComparison(records []model.CallRecord, reference time.Time) model.VolumeComparison {
	day := reference.UTC().Format("2006-01-02")
	prev := reference.UTC().AddDate(0, 0, -1).Format("2006-01-02")

	cmp := model.VolumeComparison{Date: day}
	for _, rec := range records {
		switch rec.Date {
		case day:
			cmp.Attempts++
		case prev:
			cmp.Yesterday++
		}
	}
	cmp.Delta = cmp.Attempts - cmp.Yesterday
	return cmp
}

func safeDivide(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	result := numerator / denominator
	if math.IsNaN(result) || math.IsInf(result, 0) {
		return 0
	}
	return result
}
