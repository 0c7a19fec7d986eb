package slotcheck

import (
	"context"
	"sort"
	"strings"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/workflow"
	"shootday/utils"

	"go.uber.org/zap"
)

// Relay is the slice of the gateway client this service needs.
type Relay interface {
	Post(ctx context.Context, payload map[string]interface{}) (*gateway.Response, error)
}

// SlotCheckService answers the two read-only availability questions:
// who is free in a time window, and when a chosen set of creators is
// free. No mutation, no locking, no idempotency concerns.
type SlotCheckService interface {
	CheckWindow(ctx context.Context, dateKey, fromTime, toTime string) (*models.SlotWindowResult, error)
	CheckCreators(ctx context.Context, dateKey string, creators []string) (*models.CreatorCheckResult, error)
}

// DefaultSlotCheckService implements SlotCheckService.
type DefaultSlotCheckService struct {
	Gateway Relay
}

// CheckWindow returns the available people for a date + time range,
// partitioned DOP vs cast and sorted alphabetically within each side.
func (s *DefaultSlotCheckService) CheckWindow(ctx context.Context, dateKey, fromTime, toTime string) (*models.SlotWindowResult, error) {
	if verr := workflow.ValidateTimeRange(fromTime, toTime); verr != nil {
		return nil, verr
	}
	resp, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":   "slot_check",
		"mode":     "window",
		"dateKey":  dateKey,
		"fromTime": fromTime,
		"toTime":   toTime,
	})
	if err != nil {
		return nil, err
	}

	roster := gateway.NormalizeRoster(resp.Body)
	dops, cast := gateway.PartitionRoster(roster)
	return &models.SlotWindowResult{
		DateKey:  dateKey,
		FromTime: fromTime,
		ToTime:   toTime,
		DOPs:     sortedDisplays(dops),
		Cast:     sortedDisplays(cast),
	}, nil
}

// CheckCreators returns each chosen creator's available/booked ranges
// for a date plus the computed common-availability window.
func (s *DefaultSlotCheckService) CheckCreators(ctx context.Context, dateKey string, creators []string) (*models.CreatorCheckResult, error) {
	resp, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":   "slot_check",
		"mode":     "creators",
		"dateKey":  dateKey,
		"creators": creators,
	})
	if err != nil {
		return nil, err
	}

	rows := decodeCreatorRows(resp.Body)
	return &models.CreatorCheckResult{
		DateKey:  dateKey,
		Creators: rows,
		Common:   CommonAvailability(rows),
	}, nil
}

type wireRange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type wireCreator struct {
	Name      string      `json:"name"`
	Available []wireRange `json:"available"`
	Booked    []wireRange `json:"booked"`
}

// decodeCreatorRows converts the upstream per-creator breakdown into
// minute ranges, degrading unparseable entries to absence.
func decodeCreatorRows(body []byte) []models.CreatorAvailability {
	var wire []wireCreator
	if err := jsonUnmarshalLoose(body, &wire); err != nil {
		utils.GetLogger().Warn("creator availability had unexpected shape, treating as empty", zap.Error(err))
		return []models.CreatorAvailability{}
	}
	out := make([]models.CreatorAvailability, 0, len(wire))
	for _, w := range wire {
		out = append(out, models.CreatorAvailability{
			Name:      w.Name,
			Available: toRanges(w.Available),
			Booked:    toRanges(w.Booked),
		})
	}
	return out
}

func toRanges(wire []wireRange) []models.TimeRange {
	out := make([]models.TimeRange, 0, len(wire))
	for _, w := range wire {
		from, okFrom := utils.ParseTimeToMinutes(w.From)
		to, okTo := utils.ParseTimeToMinutes(w.To)
		if !okFrom || !okTo || to <= from {
			continue
		}
		out = append(out, models.TimeRange{From: from, To: to})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

func sortedDisplays(people []models.Person) []string {
	out := make([]string, 0, len(people))
	for _, p := range people {
		out = append(out, p.Display)
	}
	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i]) < strings.ToLower(out[j])
	})
	return out
}
