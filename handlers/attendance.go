package handlers

import (
	"net/http"

	"shootday/services/attendance"

	"github.com/gin-gonic/gin"
)

// AttendanceWindowHandler renders the 7-day rolling card list with the
// allowed statuses per day.
func (hb *HandlerBundle) AttendanceWindowHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	days, err := hb.Attendance.Window(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "days": days})
}

// AttendanceGetHandler serves the raw persisted rows for an employee.
// The employee query parameter is required.
func (hb *HandlerBundle) AttendanceGetHandler(c *gin.Context) {
	employee := c.Query("employee")
	if employee == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "employee is required"})
		return
	}
	rows, err := hb.Attendance.Rows(c.Request.Context(), employee)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": rows})
}

// AttendanceSubmitHandler writes or updates one day's status. Updates
// also fire the best-effort change notification.
func (hb *HandlerBundle) AttendanceSubmitHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var req attendance.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if req.Date == "" || req.Attendance == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "date and attendance are required"})
		return
	}
	if err := hb.Attendance.Submit(c.Request.Context(), session, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
