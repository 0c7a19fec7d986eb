package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SlotWindowHandler answers "who is free in this window".
func (hb *HandlerBundle) SlotWindowHandler(c *gin.Context) {
	var input struct {
		DateKey  string `json:"dateKey"`
		FromTime string `json:"fromTime"`
		ToTime   string `json:"toTime"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if input.DateKey == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "dateKey is required"})
		return
	}
	result, err := hb.SlotCheck.CheckWindow(c.Request.Context(), input.DateKey, input.FromTime, input.ToTime)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}

// SlotCreatorsHandler answers "when is this set of creators free",
// including the common window across all of them.
func (hb *HandlerBundle) SlotCreatorsHandler(c *gin.Context) {
	var input struct {
		DateKey  string   `json:"dateKey"`
		Creators []string `json:"creators"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "invalid input"})
		return
	}
	if input.DateKey == "" || len(input.Creators) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "dateKey and creators are required"})
		return
	}
	result, err := hb.SlotCheck.CheckCreators(c.Request.Context(), input.DateKey, input.Creators)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "result": result})
}
