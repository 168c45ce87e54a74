// Package upstream is the HTTP client for the booking backend. Every call
// resolves to either data or one uniform error shape: handlers never see a
// raw transport error or a panic, only *APIError values they can surface.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"tourdesk/wire"

	"github.com/avast/retry-go/v4"
)

// APIError is the single failure shape callers deal with. Message is safe
// to show to the admin; Status is the HTTP status when one was received,
// zero on transport failures.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

const genericFailure = "The booking service is unavailable. Please try again."

type Client struct {
	base  string
	token string
	http  *http.Client
}

// New builds a client for the backend at base. The bearer credential is
// injected here, never embedded at a call site.
func New(base, token string) *Client {
	return &Client{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: 15 * time.Second},
	}
}

// List fetches /{collection}/ and accepts both response shapes the backend
// uses: a bare array, or {data: [...]}.
func (c *Client) List(ctx context.Context, collection string) ([]map[string]any, error) {
	body, err := c.getWithRetry(ctx, fmt.Sprintf("%s/%s/", c.base, collection))
	if err != nil {
		return nil, err
	}

	var arr []map[string]any
	if jsonErr := json.Unmarshal(body, &arr); jsonErr == nil {
		return arr, nil
	}
	var wrapped struct {
		Data []map[string]any `json:"data"`
	}
	if jsonErr := json.Unmarshal(body, &wrapped); jsonErr == nil && wrapped.Data != nil {
		return wrapped.Data, nil
	}
	return nil, &APIError{Message: genericFailure}
}

// Get fetches a single entity object.
func (c *Client) Get(ctx context.Context, collection, id string) (map[string]any, error) {
	body, err := c.getWithRetry(ctx, fmt.Sprintf("%s/%s/%s/", c.base, collection, id))
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if jsonErr := json.Unmarshal(body, &obj); jsonErr != nil {
		return nil, &APIError{Message: genericFailure}
	}
	return obj, nil
}

// Create posts a multipart payload to /{collection}/.
func (c *Client) Create(ctx context.Context, collection string, fs *wire.FieldSet) (map[string]any, error) {
	return c.send(ctx, http.MethodPost, fmt.Sprintf("%s/%s/", c.base, collection), fs)
}

// Patch partially updates /{collection}/{id}/ with the same multipart
// contract as Create.
func (c *Client) Patch(ctx context.Context, collection, id string, fs *wire.FieldSet) (map[string]any, error) {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("%s/%s/%s/", c.base, collection, id), fs)
}

// Delete removes an entity. The backend answers {success:true} or the
// usual error shape.
func (c *Client) Delete(ctx context.Context, collection, id string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete,
		fmt.Sprintf("%s/%s/%s/", c.base, collection, id), nil)
	if err != nil {
		return &APIError{Message: genericFailure}
	}
	_, err = c.do(req)
	return err
}

func (c *Client) send(ctx context.Context, method, url string, fs *wire.FieldSet) (map[string]any, error) {
	body, contentType, err := fs.Encode()
	if err != nil {
		return nil, &APIError{Message: fmt.Sprintf("could not build the upload: %v", err)}
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, &APIError{Message: genericFailure}
	}
	req.Header.Set("Content-Type", contentType)

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var obj map[string]any
	if len(raw) > 0 {
		// Tolerate empty or non-object success bodies.
		_ = json.Unmarshal(raw, &obj)
	}
	return obj, nil
}

// getWithRetry retries idempotent reads a couple of times before giving up.
func (c *Client) getWithRetry(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
			if err != nil {
				return err
			}
			body, err = c.do(req)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(200*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			// Backend-reported errors are authoritative; only transport
			// failures and 5xx are worth another attempt.
			var apiErr *APIError
			if errors.As(err, &apiErr) {
				return apiErr.Status == 0 || apiErr.Status >= 500
			}
			return true
		}),
	)
	if err != nil {
		return nil, toAPIError(err)
	}
	return body, nil
}

// do executes one request and folds every failure mode (transport errors,
// HTTP error statuses, {error:true} bodies) into *APIError.
func (c *Client) do(req *http.Request) ([]byte, error) {
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: genericFailure}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, &APIError{Status: resp.StatusCode, Message: genericFailure}
	}

	// Any body may carry {error:true, message} regardless of status.
	var probe struct {
		Error   bool   `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(body, &probe) == nil && probe.Error {
		msg := probe.Message
		if msg == "" {
			msg = genericFailure
		}
		return nil, &APIError{Status: resp.StatusCode, Message: msg}
	}
	if resp.StatusCode >= 400 {
		return nil, &APIError{Status: resp.StatusCode, Message: genericFailure}
	}
	return body, nil
}

func toAPIError(err error) error {
	var e *APIError
	if errors.As(err, &e) {
		return e
	}
	return &APIError{Message: genericFailure}
}
