package attendance

import "shootday/models"

// Minute marks the partial-day rules pivot on.
const (
	lateArrivalCutoff = 11*60 + 30 // 11:30
	halfDayCutoff     = 15 * 60    // 15:00
	leaveEarlyCutoff  = 18*60 + 30 // 18:30
)

// AllowedStatuses derives which attendance values a day still admits
// from the shoots already booked on it. A shoot's presence contradicts
// several statuses outright; "Present" survives everything.
func AllowedStatuses(shoots []models.ShootSpan) []models.AttendanceStatus {
	disallowed := map[models.AttendanceStatus]bool{}
	if len(shoots) > 0 {
		disallowed[models.StatusAbsent] = true
	}
	for _, shoot := range shoots {
		if shoot.FromMinutes < lateArrivalCutoff {
			disallowed[models.StatusPartialLate] = true
		}
		if shoot.FromMinutes < halfDayCutoff {
			disallowed[models.StatusFirstHalfLeave] = true
		}
		if shoot.FromMinutes >= halfDayCutoff || shoot.ToMinutes >= halfDayCutoff {
			disallowed[models.StatusSecondHalfLeave] = true
		}
		if shoot.ToMinutes > leaveEarlyCutoff {
			disallowed[models.StatusPartialEarly] = true
		}
	}

	all := []models.AttendanceStatus{
		models.StatusPresent,
		models.StatusAbsent,
		models.StatusPartialLate,
		models.StatusFirstHalfLeave,
		models.StatusSecondHalfLeave,
		models.StatusPartialEarly,
	}
	allowed := make([]models.AttendanceStatus, 0, len(all))
	for _, status := range all {
		if !disallowed[status] {
			allowed = append(allowed, status)
		}
	}
	return allowed
}
