// Package upstream holds the clients for the two AI services the relay
// depends on: the Signal AI service that renders raw signal data into a
// message, and the News AI service that produces sentiment analysis.
package upstream

import (
	"context"
	"fmt"
	"time"

	"resty.dev/v3"
)

// StatusError reports a non-success response from an upstream service. The
// relay propagates the upstream status code to its own caller.
type StatusError struct {
	Code    int
	Service string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s returned status %d", e.Service, e.Code)
}

const defaultTimeout = 30 * time.Second

func newHTTPClient(baseURL string) *resty.Client {
	return resty.New().
		SetBaseURL(baseURL).
		SetTimeout(defaultTimeout)
}

// SignalClient formats raw signal data through the Signal AI service.
type SignalClient struct {
	http *resty.Client
}

// NewSignalClient creates a client for the Signal AI service at baseURL.
func NewSignalClient(baseURL string) *SignalClient {
	return &SignalClient{http: newHTTPClient(baseURL)}
}

// FormatSignal posts the raw signal payload and returns the formatted
// message text.
func (c *SignalClient) FormatSignal(ctx context.Context, signal map[string]any) (string, error) {
	var result struct {
		FormattedMessage string `json:"formatted_message"`
	}

	res, err := c.http.R().
		SetContext(ctx).
		SetBody(signal).
		SetResult(&result).
		Post("/format-signal")
	if err != nil {
		return "", fmt.Errorf("signal service: %w", err)
	}
	if !res.IsSuccess() {
		return "", &StatusError{Code: res.StatusCode(), Service: "signal service"}
	}
	return result.FormattedMessage, nil
}

// NewsClient fetches news analysis from the News AI service.
type NewsClient struct {
	http *resty.Client
}

// NewNewsClient creates a client for the News AI service at baseURL.
func NewNewsClient(baseURL string) *NewsClient {
	return &NewsClient{http: newHTTPClient(baseURL)}
}

// AnalyzeNews posts the instrument and its articles and returns the raw
// analysis document.
func (c *NewsClient) AnalyzeNews(ctx context.Context, instrument string, articles []any) (map[string]any, error) {
	body := map[string]any{
		"instrument": instrument,
		"articles":   articles,
	}

	var result map[string]any
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&result).
		Post("/analyze-news")
	if err != nil {
		return nil, fmt.Errorf("news service: %w", err)
	}
	if !res.IsSuccess() {
		return nil, &StatusError{Code: res.StatusCode(), Service: "news service"}
	}
	return result, nil
}
