package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Client calls the externally hosted property-analysis webhook. The
// service is a black box: one POST per analysis, one hard timeout, no
// automatic retries.
type Client struct {
	logger     *logrus.Logger
	client     *http.Client
	webhookURL string
	timeout    time.Duration
}

func NewClient(webhookURL string, timeoutSeconds int, logger *logrus.Logger) *Client {
	if timeoutSeconds <= 0 {
		timeoutSeconds = 120
	}
	return &Client{
		logger:     logger,
		client:     &http.Client{},
		webhookURL: webhookURL,
		timeout:    time.Duration(timeoutSeconds) * time.Second,
	}
}

// Analyze posts the address to the webhook and returns the decoded
// response body. All failure paths come back as *Error with a stable
// code; the in-flight request is aborted when the timeout elapses.
func (c *Client) Analyze(ctx context.Context, address string) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	payload, err := json.Marshal(map[string]string{"address": address})
	if err != nil {
		return nil, newError(CodeWebhookError, "failed to encode request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.webhookURL, bytes.NewReader(payload))
	if err != nil {
		return nil, newError(CodeWebhookError, "failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			c.logger.WithField("address", address).Error("Analysis webhook timed out")
			return nil, newError(CodeTimeout, "analysis timed out after %s", c.timeout)
		}
		c.logger.WithError(err).Error("Analysis webhook unreachable")
		return nil, newError(CodeNetworkError, "analysis service unreachable")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		c.logger.WithFields(logrus.Fields{
			"status":  resp.StatusCode,
			"address": address,
		}).Error("Analysis webhook returned an error status")

		switch resp.StatusCode {
		case http.StatusNotFound:
			return nil, newError(CodePropertyNotFound, "no property found for %q", address)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return nil, newError(CodeInvalidAddress, "address %q was rejected", address)
		case http.StatusTooManyRequests:
			return nil, newError(CodeRateLimit, "analysis service is rate limiting requests")
		default:
			return nil, newError(CodeWebhookError, "analysis service error (status %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
	}

	if ct := resp.Header.Get("Content-Type"); !strings.Contains(ct, "application/json") {
		return nil, newError(CodeWebhookError, "unexpected content type %q from analysis service", ct)
	}

	var decoded map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, newError(CodeWebhookError, "failed to decode analysis response: %v", err)
	}
	return decoded, nil
}
