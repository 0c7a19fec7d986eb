package myday

import (
	"context"
	"strings"

	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/workflow"
	"shootday/utils"

	"go.uber.org/zap"
)

// Delete removes a booking on behalf of its creator. The free-text
// reason is mandatory and travels upstream with the record.
func (s *DefaultMyDayService) Delete(ctx context.Context, user models.Session, booking models.BookingRecord, reason string) error {
	if !strings.EqualFold(strings.TrimSpace(booking.Creator), strings.TrimSpace(user.Name)) {
		return ErrNotCreator
	}
	if strings.TrimSpace(reason) == "" {
		return ErrReasonRequired
	}
	_, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":  "delete_booking",
		"booking": booking,
		"reason":  reason,
		"user":    user.Name,
	})
	return err
}

// Free is a non-creator's self-release ("I can't make it"). Success is
// recorded in the local freed ledger so this node stops offering the
// action; the ledger is not the source of truth for who actually freed.
func (s *DefaultMyDayService) Free(ctx context.Context, user models.Session, booking models.BookingRecord) error {
	if strings.EqualFold(strings.TrimSpace(booking.Creator), strings.TrimSpace(user.Name)) {
		return ErrCreatorCannotFree
	}
	freed, err := s.alreadyFreed(ctx, booking.BookingID, user.Name)
	if err != nil {
		utils.GetLogger().Warn("freed ledger read failed before free", zap.Error(err))
	}
	if freed {
		return ErrAlreadyFreed
	}
	if _, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":  "free_booking",
		"booking": booking,
		"user":    user.Name,
	}); err != nil {
		return err
	}
	if err := s.Freed.Append(ctx, booking.BookingID, user.Name); err != nil {
		// Best-effort marker only: the upstream write succeeded.
		utils.GetLogger().Warn("failed to record freed marker", zap.Error(err))
	}
	return nil
}

// EditLock starts the edit-team flow: the same lock call as an initial
// booking fetches a fresh roster for the booking's slot, and the
// currently-assigned DOP/cast are merged in even when the fresh roster
// no longer lists them, so existing assignees remain deselectable.
func (s *DefaultMyDayService) EditLock(ctx context.Context, user models.Session, booking models.BookingRecord) (*EditRoster, error) {
	if !strings.EqualFold(strings.TrimSpace(booking.Creator), strings.TrimSpace(user.Name)) {
		return nil, ErrNotCreator
	}
	now := s.now()
	if start, ok := startTime(booking); ok && !start.After(now) {
		return nil, ErrBookingStarted
	}

	dateKey := booking.Date
	if day, ok := utils.ParseUpstreamDate(booking.Date); ok {
		dateKey = utils.DateKey(day)
	}
	resp, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action":   "booking_lock",
		"user":     user.Name,
		"dateKey":  dateKey,
		"fromTime": clockOrRaw(booking.FromTime),
		"toTime":   clockOrRaw(booking.ToTime),
	})
	if err != nil {
		return nil, err
	}
	if doc, derr := resp.Document(); derr == nil {
		if key, _ := doc["key"].(string); key == "Ongoing Booking" {
			return nil, workflow.ErrOngoingBooking
		}
	}

	roster := gateway.NormalizeRoster(resp.Body)
	roster = mergeAssignees(roster, splitAssignees(booking.DOP))
	roster = mergeAssignees(roster, splitAssignees(booking.Cast))

	dops, cast := gateway.PartitionRoster(roster)
	return &EditRoster{
		DateKey:  dateKey,
		FromTime: clockOrRaw(booking.FromTime),
		ToTime:   clockOrRaw(booking.ToTime),
		DOPs:     dops,
		Cast:     cast,
	}, nil
}

// EditSubmit diffs the new assignment against the booking's original
// one and relays only the diff plus the full new DOP/cast strings.
func (s *DefaultMyDayService) EditSubmit(ctx context.Context, user models.Session, req EditSubmitRequest) error {
	if !strings.EqualFold(strings.TrimSpace(req.Booking.Creator), strings.TrimSpace(user.Name)) {
		return ErrNotCreator
	}
	now := s.now()
	if start, ok := startTime(req.Booking); ok && !start.After(now) {
		return ErrBookingStarted
	}

	oldAssigned := append(splitAssignees(req.Booking.DOP), splitAssignees(req.Booking.Cast)...)
	newAssigned := append(append([]string{}, req.NewDOPs...), req.NewCast...)
	removed := diffNames(oldAssigned, newAssigned)
	added := diffNames(newAssigned, oldAssigned)

	_, err := s.Gateway.Post(ctx, map[string]interface{}{
		"action": "update_booking",
		"booking": map[string]interface{}{
			"Booking ID": req.Booking.BookingID,
			"Shoot Name": req.Booking.ShootName,
			"Date":       req.Booking.Date,
			"From Time":  req.Booking.FromTime,
			"To Time":    req.Booking.ToTime,
			"oldDop":     req.Booking.DOP,
			"newDop":     strings.Join(req.NewDOPs, ", "),
			"oldCast":    req.Booking.Cast,
			"newCast":    strings.Join(req.NewCast, ", "),
		},
		"removeUsers": removed,
		"addUsers":    added,
		"user":        user.Name,
	})
	return err
}

// splitAssignees breaks a comma-separated assignment string into its
// "Name - Role" entries.
func splitAssignees(joined string) []string {
	if strings.TrimSpace(joined) == "" {
		return nil
	}
	parts := strings.Split(joined, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// mergeAssignees appends entries missing from the roster, comparing by
// parsed name so "Asha - Creator" and "Asha" collapse.
func mergeAssignees(roster, assignees []string) []string {
	for _, a := range assignees {
		aName := gateway.ParsePerson(a).Name
		found := false
		for _, r := range roster {
			if strings.EqualFold(gateway.ParsePerson(r).Name, aName) {
				found = true
				break
			}
		}
		if !found {
			roster = append(roster, a)
		}
	}
	return roster
}

// diffNames returns entries of a that are absent from b, compared by
// parsed name case-insensitively.
func diffNames(a, b []string) []string {
	var out []string
	for _, x := range a {
		xName := gateway.ParsePerson(x).Name
		found := false
		for _, y := range b {
			if strings.EqualFold(gateway.ParsePerson(y).Name, xName) {
				found = true
				break
			}
		}
		if !found {
			out = append(out, x)
		}
	}
	if out == nil {
		out = []string{}
	}
	return out
}

// clockOrRaw renders a record time as 24-hour HH:MM when parseable and
// passes the raw string through otherwise.
func clockOrRaw(t string) string {
	if mins, ok := utils.ParseTimeToMinutes(t); ok {
		return utils.MinutesToClock(mins)
	}
	return t
}
