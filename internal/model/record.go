package model

import (
	"time"
)

// Outcome is the canonical classification of a call attempt.
type Outcome string

const (
	OutcomeBooked          Outcome = "BOOKED"
	OutcomeSlotUnavailable Outcome = "SLOT_UNAVAILABLE"
	OutcomeClosed          Outcome = "CLOSED"
	OutcomeOther           Outcome = "OTHER"
)

// RawRow is one row as supplied by the fetch source. No schema is
// guaranteed; any column may be absent.
type RawRow map[string]string

// CallRecord is the normalized, immutable form of a raw row. Derived
// fields are populated only when the backing column existed and parsed;
// Raw keeps the original columns for tabular display and export.
type CallRecord struct {
	Timestamp *time.Time `json:"timestamp,omitempty"`
	Date      string     `json:"date,omitempty"`    // YYYY-MM-DD, UTC
	Hour      int        `json:"hour"`              // meaningful only when Timestamp is set
	Weekday   string     `json:"weekday,omitempty"` // Mon..Sun

	Success   *bool    `json:"success,omitempty"`
	Resolved  *bool    `json:"resolved,omitempty"`
	BookingID string   `json:"booking_id,omitempty"`
	ErrorCode string   `json:"error_code,omitempty"` // upper-cased
	Clinic    string   `json:"clinic,omitempty"`
	Doctor    string   `json:"doctor,omitempty"`
	LatencyMs *float64 `json:"latency_ms,omitempty"`

	Outcome Outcome `json:"outcome"`
	Raw     RawRow  `json:"raw,omitempty"`
}
