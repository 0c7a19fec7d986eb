package handlers

import (
	"net/http"

	"shootday/models"
	"shootday/services/myday"

	"github.com/gin-gonic/gin"
)

// MyDayHandler lists the user's bookings, sorted and decorated with
// the actions each row admits.
func (hb *HandlerBundle) MyDayHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	items, err := hb.MyDay.List(c.Request.Context(), session)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "rows": items})
}

// DeleteBookingHandler removes a booking on the creator's behalf. The
// client confirms before calling; the reason is mandatory.
func (hb *HandlerBundle) DeleteBookingHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var input struct {
		Booking models.BookingRecord `json:"booking"`
		Reason  string               `json:"reason"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if err := hb.MyDay.Delete(c.Request.Context(), session, input.Booking, input.Reason); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// FreeBookingHandler is the non-creator's "I can't make it" release.
func (hb *HandlerBundle) FreeBookingHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var input struct {
		Booking models.BookingRecord `json:"booking"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if err := hb.MyDay.Free(c.Request.Context(), session, input.Booking); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// EditTeamLockHandler fetches the fresh roster for an edit-team flow,
// with the booking's current assignees merged in.
func (hb *HandlerBundle) EditTeamLockHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var input struct {
		Booking models.BookingRecord `json:"booking"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	roster, err := hb.MyDay.EditLock(c.Request.Context(), session, input.Booking)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "roster": roster})
}

// EditTeamSubmitHandler applies the new assignment as a diff.
func (hb *HandlerBundle) EditTeamSubmitHandler(c *gin.Context) {
	session, ok := sessionFrom(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"ok": false, "message": "login required"})
		return
	}
	var req myday.EditSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if err := hb.MyDay.EditSubmit(c.Request.Context(), session, req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
