package handlers

import (
	"errors"
	"net/http"

	"shootday/middleware"
	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/myday"
	"shootday/services/workflow"
	"shootday/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// sessionFrom pulls the authenticated session injected by the auth
// middleware.
func sessionFrom(c *gin.Context) (models.Session, bool) {
	val, exists := c.Get(middleware.SessionKey)
	if !exists {
		return models.Session{}, false
	}
	session, ok := val.(models.Session)
	return session, ok
}

// respondServiceError maps a service error onto an HTTP reply. Local
// validation failures stay 4xx with an inline message; upstream and
// transport failures keep the page alive with a uniform
// {ok:false, message} shape.
func respondServiceError(c *gin.Context, err error) {
	var verr *workflow.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "field": verr.Field, "message": verr.Message})
		return
	}

	switch {
	case errors.Is(err, workflow.ErrOngoingBooking):
		// Advisory collision: the client shows the retry message and
		// reloads after the exclusivity window.
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": err.Error(), "retryAfterSeconds": 90})
		return
	case errors.Is(err, workflow.ErrNotOnRoster),
		errors.Is(err, workflow.ErrSubmitInFlight),
		errors.Is(err, myday.ErrAlreadyFreed),
		errors.Is(err, myday.ErrBookingStarted):
		c.JSON(http.StatusConflict, gin.H{"ok": false, "message": err.Error()})
		return
	case errors.Is(err, workflow.ErrLockExpired):
		c.JSON(http.StatusGone, gin.H{"ok": false, "message": err.Error(), "reload": true})
		return
	case errors.Is(err, workflow.ErrRoleConflict),
		errors.Is(err, myday.ErrReasonRequired):
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": err.Error()})
		return
	case errors.Is(err, myday.ErrNotCreator),
		errors.Is(err, myday.ErrCreatorCannotFree):
		c.JSON(http.StatusForbidden, gin.H{"ok": false, "message": err.Error()})
		return
	case errors.Is(err, gateway.ErrRequestIDMismatch):
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "request id mismatch"})
		return
	}

	var netErr *gateway.NetworkError
	if errors.As(err, &netErr) {
		c.JSON(http.StatusGatewayTimeout, gin.H{"ok": false, "message": "upstream unreachable, try again"})
		return
	}
	var httpErr *gateway.UpstreamHTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Status, gin.H{"ok": false, "message": "upstream error"})
		return
	}
	var malformed *gateway.MalformedResponseError
	if errors.As(err, &malformed) {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": "upstream sent an unexpected response"})
		return
	}
	var rejection *myday.UpstreamRejection
	if errors.As(err, &rejection) {
		c.JSON(http.StatusBadGateway, gin.H{"ok": false, "message": rejection.Error()})
		return
	}

	utils.GetLogger().Error("unhandled service error", zap.Error(err))
	c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "internal error"})
}
