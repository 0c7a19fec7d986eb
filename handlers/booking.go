package handlers

import (
	"net/http"

	"shootday/services/workflow"

	"github.com/gin-gonic/gin"
)

// LockSlotHandler runs phase one of the booking flow: hold a date/time
// window and return the partitioned candidate roster.
func (hb *HandlerBundle) LockSlotHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var req workflow.LockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}

	result, err := hb.Workflow.Lock(c.Request.Context(), session, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "lock": result})
}

// SubmitBookingHandler runs phase two: full details against the held
// lock, relayed upstream exactly once per attempt.
func (hb *HandlerBundle) SubmitBookingHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var req workflow.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if req.LockID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "lockId is required"})
		return
	}

	result, err := hb.Workflow.Submit(c.Request.Context(), session, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "requestId": result.RequestID, "booking": result.Booking})
}

// CancelLockHandler drops a held lock on page reset.
func (hb *HandlerBundle) CancelLockHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	lockID := c.Param("lockID")
	if err := hb.Workflow.Cancel(c.Request.Context(), session, lockID); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
