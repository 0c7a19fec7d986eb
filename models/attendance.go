package models

// AttendanceStatus enumerates the values a day can be marked with.
type AttendanceStatus string

const (
	StatusPresent         AttendanceStatus = "Present"
	StatusAbsent          AttendanceStatus = "Absent"
	StatusPartialLate     AttendanceStatus = "Partial-Late"
	StatusFirstHalfLeave  AttendanceStatus = "First-Half-Leave"
	StatusSecondHalfLeave AttendanceStatus = "Second-Half-Leave"
	StatusPartialEarly    AttendanceStatus = "Partial-Early"
)

// AttendanceRow is one persisted attendance record from the upstream
// attendance script.
type AttendanceRow struct {
	Date       string `json:"date"`
	Employee   string `json:"employee"`
	Attendance string `json:"attendance"`
	Key        string `json:"key,omitempty"`
}

// ShootSpan is a booked shoot reduced to its minute range for the
// attendance rules.
type ShootSpan struct {
	FromMinutes int `json:"fromMinutes"`
	ToMinutes   int `json:"toMinutes"`
}

// AttendanceDay is one card of the rolling window: the date, what may
// still be selected, and what was already submitted (if anything).
type AttendanceDay struct {
	DateKey   string             `json:"dateKey"`
	Allowed   []AttendanceStatus `json:"allowed"`
	Submitted string             `json:"submitted,omitempty"`
	HasShoots bool               `json:"hasShoots"`
}
