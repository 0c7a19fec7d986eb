package handlers

import (
	"errors"
	"net/http"

	"shootday/services/gateway"

	"github.com/gin-gonic/gin"
)

// ProxyHandler relays an arbitrary action payload to the gateway
// webhook and returns the upstream status and body verbatim. The only
// thing it asserts itself is the request_id echo: a mismatch comes
// back as HTTP 500 so the client never trusts a crossed reply.
func (hb *HandlerBundle) ProxyHandler(c *gin.Context) {
	var payload map[string]interface{}
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "body must be a JSON object"})
		return
	}
	if action, _ := payload["action"].(string); action == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "message": "action is required"})
		return
	}

	resp, err := hb.Gateway.Post(c.Request.Context(), payload)
	if err != nil {
		if errors.Is(err, gateway.ErrRequestIDMismatch) {
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "message": "request id mismatch"})
			return
		}
		var httpErr *gateway.UpstreamHTTPError
		if errors.As(err, &httpErr) && resp != nil {
			relay(c, resp)
			return
		}
		respondServiceError(c, err)
		return
	}
	relay(c, resp)
}

func relay(c *gin.Context, resp *gateway.Response) {
	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(resp.Status, contentType, resp.Body)
}
