// Package api is the HTTP transport client for the arkID order backend.
// It normalizes JSON parsing and error surfacing; retry policy, if any,
// belongs to callers.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/arkade-01/arkID/internal/utils"
)

const (
	EndpointOrders        = "/orders"
	EndpointDiscountCheck = "/discounts/validate/"
	EndpointPaymentStatus = "/payments/callback"
)

// TransportError covers network failures, non-2xx responses and bodies
// that are not valid JSON.
type TransportError struct {
	StatusCode int
	Status     string
	Cause      error
	msg        string
}

func (e *TransportError) Error() string { return e.msg }

func (e *TransportError) Unwrap() error { return e.Cause }

// DomainError is a backend-declared failure: a well-formed response with
// success=false.
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	if e.Message == "" {
		return "backend reported failure"
	}
	return e.Message
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
	Log        *utils.Logger
}

func New(baseURL string, logger *utils.Logger) *Client {
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Log:        logger,
	}
}

// Request issues one backend call and returns the raw JSON body. Every
// failure is a *TransportError with a human-readable message.
func (c *Client) Request(ctx context.Context, method, path string, body any) (json.RawMessage, error) {
	url := c.BaseURL + path

	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &TransportError{Cause: err, msg: "failed to encode request body: " + err.Error()}
		}
		reqBody = bytes.NewBuffer(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return nil, &TransportError{Cause: err, msg: "failed to build request: " + err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	c.Log.Info("backend_request", map[string]interface{}{"method": method, "url": url})

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err, msg: "API request failed: " + err.Error()}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Cause: err, msg: "failed to read response body: " + err.Error()}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.Log.Error("backend_request_failed", map[string]interface{}{
			"method": method,
			"url":    url,
			"status": resp.StatusCode,
		})
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			msg:        fmt.Sprintf("API request failed: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
		}
	}

	if !json.Valid(raw) {
		return nil, &TransportError{
			StatusCode: resp.StatusCode,
			Status:     resp.Status,
			msg:        "Invalid JSON response from server",
		}
	}

	return json.RawMessage(raw), nil
}

// Get is Request with method GET and no body.
func (c *Client) Get(ctx context.Context, path string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, path, nil)
}
