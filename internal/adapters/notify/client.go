package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/robertarktes/visa-appointments/internal/confirmation"
	"github.com/robertarktes/visa-appointments/internal/observability"
)

// Client submits confirmation notices to the notification service over HTTP.
type Client struct {
	url        string
	apiKey     string
	httpClient *http.Client
	log        observability.Logger
}

func NewClient(url, apiKey string, timeout time.Duration, log observability.Logger) *Client {
	return &Client{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

type submitResponse struct {
	Accepted bool `json:"accepted"`
}

// Submit posts s and reports the service's verdict. An empty API key means
// the service is switched off and yields confirmation.ErrUnavailable.
func (c *Client) Submit(ctx context.Context, s confirmation.Submission) (bool, error) {
	if c.apiKey == "" {
		return false, confirmation.ErrUnavailable
	}

	payload, err := json.Marshal(s)
	if err != nil {
		return false, errors.Mark(errors.Wrap(err, "notify: encode submission"), ErrInternal)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return false, errors.Mark(errors.Wrap(err, "notify: create request"), ErrInternal)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, errors.Mark(errors.Wrap(err, "notify: execute request"), confirmation.ErrTransport)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		c.log.WithField("reference_code", s.ReferenceCode).Warn("notification refused: ", resp.StatusCode)
		return false, errors.Wrapf(confirmation.ErrRejected, "notify: status %d: %s", resp.StatusCode, string(body))
	default:
		return false, errors.Mark(
			errors.Newf("notify: unexpected status code %d", resp.StatusCode),
			confirmation.ErrTransport,
		)
	}

	var out submitResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		err = errors.Mark(errors.Wrap(err, "notify: decode response"), ErrInvalidResponse)
		return false, errors.Mark(err, confirmation.ErrTransport)
	}
	return out.Accepted, nil
}
