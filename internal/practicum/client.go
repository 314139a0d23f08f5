package practicum

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"homework-notifier/internal/logging"
)

// UpstreamError reports a failed call to the status API.
type UpstreamError struct {
	Message string
	Err     error
}

func (e *UpstreamError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// Client polls the homework status API.
type Client struct {
	endpoint string
	token    string
	http     *http.Client
	logger   *logging.Logger
}

// NewClient builds a Client for endpoint authorized with the OAuth token.
func NewClient(endpoint, token string, timeout time.Duration, logger *logging.Logger) *Client {
	return &Client{
		endpoint: endpoint,
		token:    token,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// Fetch requests statuses changed since watermark and returns the decoded
// JSON body without validating its shape.
func (c *Client) Fetch(ctx context.Context, watermark int64) (any, error) {
	c.logger.Debugf("Requesting status API from %d", watermark)

	ts := strconv.FormatInt(watermark, 10)
	params := url.Values{}
	params.Set("timestamp", ts)
	params.Set("from_date", ts)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, &UpstreamError{Message: "Ошибка при запросе к основному API", Err: err}
	}
	req.Header.Set("Authorization", "OAuth "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Errorf("Status API request failed: %v", err)
		return nil, &UpstreamError{Message: "Ошибка при запросе к основному API", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		msg := fmt.Sprintf("Неправильный статус: %d %s", resp.StatusCode, reason(resp))
		c.logger.Error(msg)
		return nil, &UpstreamError{Message: msg}
	}

	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		c.logger.Errorf("Status API body decode failed: %v", err)
		return nil, &UpstreamError{Message: "Ошибка декодирования ответа API", Err: err}
	}
	c.logger.Debug("Status API answered")
	return payload, nil
}

// reason returns the reason phrase of resp, e.g. "Service Unavailable".
func reason(resp *http.Response) string {
	code := strconv.Itoa(resp.StatusCode)
	if r := strings.TrimSpace(strings.TrimPrefix(resp.Status, code)); r != "" {
		return r
	}
	return http.StatusText(resp.StatusCode)
}
