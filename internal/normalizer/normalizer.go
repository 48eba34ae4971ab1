package normalizer

import (
	"strconv"
	"strings"
	"time"

	"call-metrics-service/internal/model"
)

// Accepted timestamp layouts, tried in order. All values are treated as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
}

// successTokens are the accepted truthy spellings of the boolean flag
// columns (success, query resolved).
var successTokens = map[string]struct{}{
	"true": {},
	"1":    {},
	"yes":  {},
}

// Column name candidates, matched case-insensitively against row keys.
var (
	timestampColumns = []string{"timestamp", "call_time", "call time", "call_date", "call date", "created_at"}
	successColumns   = []string{"success", "call_success", "call success", "is_success"}
	resolvedColumns  = []string{"query_resolved", "query resolved", "is_resolved", "resolved"}
	bookingColumns   = []string{"booking_id", "bookingid", "booking id", "appointment_id"}
	errorColumns     = []string{"error_code", "error code", "error"}
	clinicColumns    = []string{"clinic", "clinic_name", "clinic name"}
	doctorColumns    = []string{"doctor", "doctor_name", "doctor name"}
	latencyColumns   = []string{"latency_ms", "latency(ms)", "latency", "duration_ms", "call_duration"}
)

// Normalize converts raw rows into canonical call records. Each row is
// handled independently: malformed fields degrade to absent or default
// values and never abort the batch. The input rows are not mutated.
func Normalize(rows []model.RawRow) []model.CallRecord {
	records := make([]model.CallRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, normalizeRow(row))
	}
	return records
}

func normalizeRow(row model.RawRow) model.CallRecord {
	rec := model.CallRecord{Raw: copyRow(row)}

	if raw, ok := lookup(row, timestampColumns); ok {
		if ts := parseTimestamp(raw); ts != nil {
			rec.Timestamp = ts
			rec.Date = ts.Format("2006-01-02")
			rec.Hour = ts.Hour()
			rec.Weekday = ts.Weekday().String()[:3]
		}
	}

	success := false
	if raw, ok := lookup(row, successColumns); ok {
		success = parseSuccess(raw)
		rec.Success = &success
	}

	if raw, ok := lookup(row, resolvedColumns); ok {
		resolved := parseSuccess(raw)
		rec.Resolved = &resolved
	}

	if raw, ok := lookup(row, bookingColumns); ok {
		rec.BookingID = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(row, errorColumns); ok {
		rec.ErrorCode = strings.ToUpper(strings.TrimSpace(raw))
	}
	if raw, ok := lookup(row, clinicColumns); ok {
		rec.Clinic = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(row, doctorColumns); ok {
		rec.Doctor = strings.TrimSpace(raw)
	}
	if raw, ok := lookup(row, latencyColumns); ok {
		if v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64); err == nil {
			rec.LatencyMs = &v
		}
	}

	// Classification runs whether or not the success column existed; an
	// absent flag counts as false and the error-code rules still apply.
	rec.Outcome = classifyOutcome(success, rec.BookingID, rec.ErrorCode)

	return rec
}

// classifyOutcome applies the outcome precedence, first match wins. It is a
// pure function of the three inputs; errorCode must already be upper-cased.
func classifyOutcome(success bool, bookingID, errorCode string) model.Outcome {
	switch {
	case success && bookingID != "":
		return model.OutcomeBooked
	case errorCode == "SLOT_UNAVAILABLE" || errorCode == "SLOT_BUSY":
		return model.OutcomeSlotUnavailable
	case errorCode == "SLOT_CLOSED":
		return model.OutcomeClosed
	default:
		return model.OutcomeOther
	}
}

func parseTimestamp(raw string) *time.Time {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			utc := ts.UTC()
			return &utc
		}
	}
	return nil
}

func parseSuccess(raw string) bool {
	_, ok := successTokens[strings.ToLower(strings.TrimSpace(raw))]
	return ok
}

// lookup finds the first candidate column present in the row, matching
// keys case-insensitively. ok reports column presence, not value presence.
func lookup(row model.RawRow, candidates []string) (string, bool) {
	for _, want := range candidates {
		for key, val := range row {
			if strings.EqualFold(strings.TrimSpace(key), want) {
				return val, true
			}
		}
	}
	return "", false
}

// IsRecognizedColumn reports whether a raw column name maps to one of the
// derived record fields.
func IsRecognizedColumn(key string) bool {
	key = strings.TrimSpace(key)
	groups := [][]string{
		timestampColumns, successColumns, resolvedColumns, bookingColumns,
		errorColumns, clinicColumns, doctorColumns, latencyColumns,
	}
	for _, group := range groups {
		for _, want := range group {
			if strings.EqualFold(key, want) {
				return true
			}
		}
	}
	return false
}

func copyRow(row model.RawRow) model.RawRow {
	out := make(model.RawRow, len(row))
	for k, v := range row {
		out[k] = v
	}
	return out
}
