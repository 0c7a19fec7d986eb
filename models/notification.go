package models

// AttendanceChangePayload is the body of the best-effort webhook fired
// when an already-submitted attendance status is edited. Delivery
// failure never affects the persisted write.
type AttendanceChangePayload struct {
	Employee  string `json:"employee"`
	Date      string `json:"date"`
	OldStatus string `json:"oldStatus"`
	NewStatus string `json:"newStatus"`
}
