package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"shootday/config"
	"shootday/utils"

	"go.uber.org/zap"
)

// Client relays JSON payloads to the n8n gateway webhook and the Apps
// Script endpoints. It is a stateless relay: every call is independent
// and no response is ever cached here.
type Client struct {
	httpClient  *http.Client
	webhookURL  string
	appKey      string
	readTimeout time.Duration
	postTimeout time.Duration
}

// Response is the upstream reply with enough preserved to relay it
// verbatim through the proxy surface.
type Response struct {
	Status int
	Header http.Header
	Body   []byte
	IsJSON bool
}

// Document parses the body as JSON when the upstream said it was JSON,
// and otherwise wraps the raw text as {"message": text}.
func (r *Response) Document() (map[string]interface{}, error) {
	if r.IsJSON {
		var doc map[string]interface{}
		if err := json.Unmarshal(r.Body, &doc); err != nil {
			return nil, &MalformedResponseError{Hint: "body is not a JSON object"}
		}
		return doc, nil
	}
	return map[string]interface{}{"message": string(r.Body)}, nil
}

// Decode unmarshals a JSON body into v.
func (r *Response) Decode(v interface{}) error {
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return &MalformedResponseError{Hint: err.Error()}
	}
	return nil
}

// NewClient builds a gateway client from AppConfig.
func NewClient() *Client {
	return &Client{
		httpClient:  &http.Client{},
		webhookURL:  config.AppConfig.GatewayWebhookURL,
		appKey:      config.AppConfig.AppKey,
		readTimeout: time.Duration(config.AppConfig.ReadTimeoutSec) * time.Second,
		postTimeout: time.Duration(config.AppConfig.GatewayTimeoutSec) * time.Second,
	}
}

// Post sends a payload to the gateway webhook. The payload must carry
// an "action" discriminator; "command" is mirrored from it for the
// upstream router when absent. When the payload carries a request_id it
// is also sent as the x-request-id header, and a differing echo in the
// reply is reported as ErrRequestIDMismatch.
func (c *Client) Post(ctx context.Context, payload map[string]interface{}) (*Response, error) {
	return c.PostTo(ctx, c.webhookURL, payload)
}

// PostTo is Post against an explicit script URL (auth, attendance).
func (c *Client) PostTo(ctx context.Context, rawURL string, payload map[string]interface{}) (*Response, error) {
	if _, ok := payload["command"]; !ok {
		if action, ok := payload["action"].(string); ok {
			payload["command"] = action
		}
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.postTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewReader(body))
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	requestID, _ := payload["request_id"].(string)
	if requestID != "" {
		req.Header.Set("x-request-id", requestID)
	}
	if c.appKey != "" {
		req.Header.Set("x-app-key", c.appKey)
	}

	resp, err := c.do(req, "post")
	if err != nil {
		return resp, err
	}
	if requestID != "" {
		if echo := resp.Header.Get("x-request-id"); echo != "" && echo != requestID {
			utils.GetLogger().Warn("gateway request_id echo mismatch",
				zap.String("sent", requestID), zap.String("echoed", echo))
			return resp, ErrRequestIDMismatch
		}
	}
	return resp, nil
}

// Get fetches a read path from a script URL with the shorter read
// timeout budget.
func (c *Client) Get(ctx context.Context, rawURL string, query url.Values) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.readTimeout)
	defer cancel()

	full := rawURL
	if len(query) > 0 {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		full = rawURL + sep + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, full, nil)
	if err != nil {
		return nil, &NetworkError{Op: "build request", Err: err}
	}
	if c.appKey != "" {
		req.Header.Set("x-app-key", c.appKey)
	}
	return c.do(req, "get")
}

func (c *Client) do(req *http.Request, op string) (*Response, error) {
	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Op: op, Err: err}
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, &NetworkError{Op: op + " read body", Err: err}
	}

	resp := &Response{
		Status: httpResp.StatusCode,
		Header: httpResp.Header,
		Body:   raw,
		IsJSON: strings.Contains(httpResp.Header.Get("Content-Type"), "json"),
	}
	if httpResp.StatusCode < 200 || httpResp.StatusCode > 299 {
		return resp, &UpstreamHTTPError{Status: httpResp.StatusCode, Body: raw}
	}
	return resp, nil
}
