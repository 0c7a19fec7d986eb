package models

// TimeRange is a half-open clock range in minutes since midnight.
type TimeRange struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SlotWindowResult is the availability answer for a date + time window,
// partitioned and alphabetically sorted.
type SlotWindowResult struct {
	DateKey  string   `json:"dateKey"`
	FromTime string   `json:"fromTime"`
	ToTime   string   `json:"toTime"`
	DOPs     []string `json:"dops"`
	Cast     []string `json:"cast"`
}

// CreatorAvailability is one creator's day as reported upstream.
type CreatorAvailability struct {
	Name      string      `json:"name"`
	Available []TimeRange `json:"available"`
	Booked    []TimeRange `json:"booked"`
}

// CreatorCheckResult is the per-creator breakdown plus the computed
// common-availability window across all chosen creators.
type CreatorCheckResult struct {
	DateKey  string                `json:"dateKey"`
	Creators []CreatorAvailability `json:"creators"`
	Common   []TimeRange           `json:"common"`
}
