package models

import (
	"strings"
	"time"
)

// ShootDetails are the fields a user fills in after a slot is locked.
// Brand and IP are mutually exclusive.
type ShootDetails struct {
	ShootName string `json:"shootName"`
	Brand     string `json:"brand,omitempty"`
	IP        string `json:"ip,omitempty"`
	NoOfShoot int    `json:"noOfShoot"`
	Location  string `json:"location"`
}

// LockSession holds context between a successful slot lock and the
// final submission. It lives in Redis under the advisory 90-second
// window; expiry simply discards it. A date or time change never
// mutates a session in place — the client locks again and the old
// session is dropped.
type LockSession struct {
	ID        string    `json:"id"`
	User      Session   `json:"user"`
	DateKey   string    `json:"dateKey"`
	FromTime  string    `json:"fromTime"`
	ToTime    string    `json:"toTime"`
	DOPs      []Person  `json:"dops"`
	Cast      []Person  `json:"cast"`
	CreatedAt time.Time `json:"createdAt"`
}

// RosterEntry returns the wire string for a person on this lock's
// roster, or "" when the name is not on it. Names compare
// case-insensitively, like every other name match in the system.
func (s *LockSession) RosterEntry(name string) string {
	for _, p := range s.DOPs {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.Display, name) {
			return p.Display
		}
	}
	for _, p := range s.Cast {
		if strings.EqualFold(p.Name, name) || strings.EqualFold(p.Display, name) {
			return p.Display
		}
	}
	return ""
}

// BookingRecord is an upstream-owned booking row as served by the
// my-day script. Field names mirror the sheet columns verbatim; the
// date and time fields arrive in several string encodings and are only
// interpreted at sort/display time.
type BookingRecord struct {
	ShootName string `json:"Shoot Name"`
	Type      string `json:"Type"`
	Date      string `json:"Date"`
	FromTime  string `json:"From Time"`
	ToTime    string `json:"To Time"`
	Creator   string `json:"Creator"`
	Location  string `json:"Location"`
	DOP       string `json:"DOP"`
	Cast      string `json:"Cast"`
	BookingID string `json:"Booking ID"`
	NoOfShoot string `json:"No Of Shoot"`
	Role      string `json:"Role"`
}

// MyDayItem decorates a booking row with the actions the requesting
// user may take on it.
type MyDayItem struct {
	BookingRecord
	CanDelete bool `json:"canDelete"`
	CanFree   bool `json:"canFree"`
	CanEdit   bool `json:"canEdit"`
}
