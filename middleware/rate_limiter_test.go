package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func requestContext(t *testing.T, remoteAddr string, headers map[string]string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	c.Request = req
	return c
}

func TestClientIPPrefersForwardedChain(t *testing.T) {
	cases := []struct {
		name    string
		remote  string
		headers map[string]string
		want    string
	}{
		{
			"first hop of X-Forwarded-For wins",
			"10.0.0.1:4321",
			map[string]string{"X-Forwarded-For": "203.0.113.9, 10.0.0.2"},
			"203.0.113.9",
		},
		{
			"X-Real-IP when no forwarded chain",
			"10.0.0.1:4321",
			map[string]string{"X-Real-IP": "203.0.113.7"},
			"203.0.113.7",
		},
		{
			"remote address stripped of port",
			"198.51.100.4:9999",
			nil,
			"198.51.100.4",
		},
		{
			"remote address without port",
			"198.51.100.4",
			nil,
			"198.51.100.4",
		},
	}
	for _, tc := range cases {
		c := requestContext(t, tc.remote, tc.headers)
		if got := clientIP(c); got != tc.want {
			t.Errorf("%s: clientIP = %q, want %q", tc.name, got, tc.want)
		}
	}
}
