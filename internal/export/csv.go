package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"time"

	"call-metrics-service/internal/model"
	"call-metrics-service/internal/normalizer"
)

// Canonical derived columns, emitted first and in this order.
var derivedHeader = []string{
	"timestamp", "date", "weekday", "hour",
	"success", "resolved", "booking_id", "error_code",
	"clinic", "doctor", "latency_ms", "outcome",
}

// WriteRecords serializes the filtered record collection as flat CSV:
// derived columns first, then any unrecognized raw columns (union across
// records, sorted), one row per record in the given order.
func WriteRecords(w io.Writer, records []model.CallRecord) error {
	extras := extraColumns(records)
	header := append(append([]string{}, derivedHeader...), extras...)

	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, rec := range records {
		row := derivedValues(rec)
		for _, col := range extras {
			row = append(row, rec.Raw[col])
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

func derivedValues(rec model.CallRecord) []string {
	ts, hour := "", ""
	if rec.Timestamp != nil {
		ts = rec.Timestamp.Format(time.RFC3339)
		hour = strconv.Itoa(rec.Hour)
	}
	success := ""
	if rec.Success != nil {
		success = strconv.FormatBool(*rec.Success)
	}
	resolved := ""
	if rec.Resolved != nil {
		resolved = strconv.FormatBool(*rec.Resolved)
	}
	latency := ""
	if rec.LatencyMs != nil {
		latency = strconv.FormatFloat(*rec.LatencyMs, 'f', -1, 64)
	}
	return []string{
		ts, rec.Date, rec.Weekday, hour,
		success, resolved, rec.BookingID, rec.ErrorCode,
		rec.Clinic, rec.Doctor, latency, string(rec.Outcome),
	}
}

// extraColumns collects raw columns that did not map to a derived field.
func extraColumns(records []model.CallRecord) []string {
	seen := map[string]struct{}{}
	for _, rec := range records {
		for key := range rec.Raw {
			if normalizer.IsRecognizedColumn(key) {
				continue
			}
			seen[key] = struct{}{}
		}
	}

	extras := make([]string, 0, len(seen))
	for key := range seen {
		extras = append(extras, key)
	}
	sort.Strings(extras)
	return extras
}
