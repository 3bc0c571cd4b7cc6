package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"homework-notifier/model"
)

const maxResponseBodySize = 1 << 20 // 1MB

// Client talks to the homework statuses endpoint.
type Client struct {
	endpoint   string
	token      string
	timeout    time.Duration
	httpClient *http.Client
}

// NewClient creates a Client. A zero timeout leaves requests unbounded.
func NewClient(endpoint, token string, timeout time.Duration) *Client {
	return &Client{
		endpoint:   endpoint,
		token:      token,
		timeout:    timeout,
		httpClient: &http.Client{},
	}
}

// Fetch requests homeworks updated since fromDate and returns the decoded body.
// The result still has to go through Validate.
func (c *Client) Fetch(ctx context.Context, fromDate int64) (any, error) {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	u, err := url.Parse(c.endpoint)
	if err != nil {
		return nil, model.NewError(model.KindTransportFailure, "invalid endpoint", err)
	}
	q := u.Query()
	q.Set("from_date", strconv.FormatInt(fromDate, 10))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, model.NewError(model.KindTransportFailure, "can't create request", err)
	}
	req.Header.Set("Authorization", "OAuth "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("request to endpoint failed", slog.String("endpoint", c.endpoint),
			slog.String("error", err.Error()))
		return nil, model.NewError(model.KindTransportFailure, "request to endpoint failed", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		slog.Error("no answer from endpoint", slog.String("endpoint", c.endpoint),
			slog.Int("status", resp.StatusCode))
		return nil, model.NewError(model.KindNoAnswer,
			fmt.Sprintf("no answer from endpoint: status %d", resp.StatusCode), nil)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if err != nil {
		slog.Error("can't read response body", slog.String("error", err.Error()))
		return nil, model.NewError(model.KindTransportFailure, "can't read response body", err)
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		slog.Error("response is not valid JSON", slog.String("error", err.Error()))
		return nil, model.NewError(model.KindMalformedResponse, "response is not valid JSON", err)
	}

	return payload, nil
}
