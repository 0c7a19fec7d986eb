package slotcheck

import (
	"encoding/json"

	"shootday/models"
	"shootday/services/gateway"
)

// jsonUnmarshalLoose accepts the usual upstream inconsistency: either
// a bare array or the same array under a "rows" key.
func jsonUnmarshalLoose(body []byte, out *[]wireCreator) error {
	if err := json.Unmarshal(body, out); err == nil {
		return nil
	}
	var wrapper struct {
		Rows []wireCreator `json:"rows"`
	}
	if err := json.Unmarshal(body, &wrapper); err == nil && wrapper.Rows != nil {
		*out = wrapper.Rows
		return nil
	}
	return &gateway.MalformedResponseError{Hint: "creator availability is neither array nor rows object"}
}

// CommonAvailability intersects every creator's available ranges into
// the windows where all of them are free. No creators means no common
// window.
func CommonAvailability(creators []models.CreatorAvailability) []models.TimeRange {
	if len(creators) == 0 {
		return []models.TimeRange{}
	}
	common := creators[0].Available
	for _, c := range creators[1:] {
		common = intersectRanges(common, c.Available)
		if len(common) == 0 {
			break
		}
	}
	if common == nil {
		common = []models.TimeRange{}
	}
	return common
}

// intersectRanges assumes both inputs sorted by From and returns their
// pairwise overlap.
func intersectRanges(a, b []models.TimeRange) []models.TimeRange {
	out := []models.TimeRange{}
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		from := max(a[i].From, b[j].From)
		to := min(a[i].To, b[j].To)
		if from < to {
			out = append(out, models.TimeRange{From: from, To: to})
		}
		if a[i].To < b[j].To {
			i++
		} else {
			j++
		}
	}
	return out
}
