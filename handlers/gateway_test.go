package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"shootday/config"
	"shootday/middleware"
	"shootday/models"
	"shootday/services/gateway"
	"shootday/services/workflow"

	"github.com/gin-gonic/gin"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func proxyRouter(t *testing.T, upstream http.HandlerFunc) *gin.Engine {
	t.Helper()
	srv := httptest.NewServer(upstream)
	t.Cleanup(srv.Close)

	config.AppConfig.GatewayWebhookURL = srv.URL
	config.AppConfig.GatewayTimeoutSec = 5
	config.AppConfig.ReadTimeoutSec = 5

	hb := &HandlerBundle{Gateway: gateway.NewClient()}
	router := gin.New()
	router.POST("/api/gw", hb.ProxyHandler)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(rec, req)
	return rec
}

func TestProxyRelaysUpstreamVerbatim(t *testing.T) {
	router := proxyRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key":"Booked","row":7}`))
	})

	rec := postJSON(router, "/api/gw", `{"action":"booking_submit","request_id":"req-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want upstream's 201", rec.Code)
	}
	if rec.Body.String() != `{"key":"Booked","row":7}` {
		t.Fatalf("body = %q, want upstream body verbatim", rec.Body.String())
	}
}

func TestProxyRejectsRequestIDMismatch(t *testing.T) {
	router := proxyRouter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("x-request-id", "not-the-same")
		w.Write([]byte(`{}`))
	})

	rec := postJSON(router, "/api/gw", `{"action":"booking_submit","request_id":"req-1"}`)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500 on a crossed reply", rec.Code)
	}
}

func TestProxyRelaysUpstreamFailureStatus(t *testing.T) {
	router := proxyRouter(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "script exploded", http.StatusBadGateway)
	})

	rec := postJSON(router, "/api/gw", `{"action":"anything"}`)
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want the upstream 502 relayed", rec.Code)
	}
}

func TestProxyRequiresAction(t *testing.T) {
	router := proxyRouter(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("a request without action must not reach upstream")
	})
	rec := postJSON(router, "/api/gw", `{"foo":"bar"}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

// stubWorkflow answers every call with a scripted error.
type stubWorkflow struct{ err error }

func (s *stubWorkflow) Lock(context.Context, models.Session, workflow.LockRequest) (*workflow.LockResult, error) {
	return nil, s.err
}

func (s *stubWorkflow) Submit(context.Context, models.Session, workflow.SubmitRequest) (*workflow.SubmitResult, error) {
	return nil, s.err
}

func (s *stubWorkflow) Cancel(context.Context, models.Session, string) error {
	return s.err
}

func bookingRouter(err error) *gin.Engine {
	hb := &HandlerBundle{Workflow: &stubWorkflow{err: err}}
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(middleware.SessionKey, models.Session{Email: "asha@example.com", Name: "Asha Verma"})
	})
	router.POST("/api/booking/lock", hb.LockSlotHandler)
	router.POST("/api/booking/submit", hb.SubmitBookingHandler)
	return router
}

func TestServiceErrorMapping(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"ongoing booking", workflow.ErrOngoingBooking, http.StatusConflict},
		{"not on roster", workflow.ErrNotOnRoster, http.StatusConflict},
		{"submit in flight", workflow.ErrSubmitInFlight, http.StatusConflict},
		{"lock expired", workflow.ErrLockExpired, http.StatusGone},
		{"role conflict", workflow.ErrRoleConflict, http.StatusBadRequest},
		{"validation", &workflow.ValidationError{Field: "toTime", Message: "bad"}, http.StatusBadRequest},
		{"network", &gateway.NetworkError{Op: "post"}, http.StatusGatewayTimeout},
		{"upstream 503", &gateway.UpstreamHTTPError{Status: 503}, http.StatusServiceUnavailable},
		{"malformed", &gateway.MalformedResponseError{Hint: "x"}, http.StatusBadGateway},
	}
	for _, tc := range cases {
		router := bookingRouter(tc.err)
		rec := postJSON(router, "/api/booking/lock", `{"dateOffset":1,"fromTime":"14:00","toTime":"16:00"}`)
		if rec.Code != tc.wantStatus {
			t.Errorf("%s: status = %d, want %d", tc.name, rec.Code, tc.wantStatus)
		}
	}
}

func TestOngoingBookingCarriesRetryWindow(t *testing.T) {
	router := bookingRouter(workflow.ErrOngoingBooking)
	rec := postJSON(router, "/api/booking/lock", `{"dateOffset":1,"fromTime":"14:00","toTime":"16:00"}`)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["retryAfterSeconds"] != float64(90) {
		t.Fatalf("retryAfterSeconds = %v, want 90", body["retryAfterSeconds"])
	}
}

func TestLockExpiredTellsClientToReload(t *testing.T) {
	router := bookingRouter(workflow.ErrLockExpired)
	rec := postJSON(router, "/api/booking/submit", `{"lockId":"gone"}`)

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("bad body: %v", err)
	}
	if body["reload"] != true {
		t.Fatalf("reload = %v, want true", body["reload"])
	}
}

func TestBookingHandlersRequireSession(t *testing.T) {
	hb := &HandlerBundle{Workflow: &stubWorkflow{}}
	router := gin.New()
	router.POST("/api/booking/lock", hb.LockSlotHandler)

	rec := postJSON(router, "/api/booking/lock", `{"dateOffset":1,"fromTime":"14:00","toTime":"16:00"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without a session", rec.Code)
	}
}
