// Package telegram is a minimal Telegram Bot API client covering the two
// methods the relay needs: sendMessage and editMessageText.
package telegram

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
	"resty.dev/v3"
)

// defaultAPIBase is the production Bot API endpoint; the bot token is
// appended per Bot API convention.
const defaultAPIBase = "https://api.telegram.org"

// sendLimit stays under the Bot API's global ~30 messages/second cap.
const sendLimit = rate.Limit(30)

// Config configures a Client.
type Config struct {
	Token string
	// BaseURL overrides the production API endpoint, used by tests.
	BaseURL string
	// Timeout bounds each API call. Zero means 30 seconds.
	Timeout time.Duration
}

// Client calls the Telegram Bot API. All methods are rate limited with a
// shared limiter so bursts of signals cannot trip the API's flood control.
type Client struct {
	http    *resty.Client
	limiter *rate.Limiter
}

// NewClient creates a Bot API client for the given configuration.
func NewClient(cfg Config) *Client {
	base := cfg.BaseURL
	if base == "" {
		base = defaultAPIBase
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}

	httpClient := resty.New().
		SetBaseURL(fmt.Sprintf("%s/bot%s", base, cfg.Token)).
		SetTimeout(timeout)

	return &Client{
		http:    httpClient,
		limiter: rate.NewLimiter(sendLimit, int(sendLimit)),
	}
}

// SendMessage delivers a new message to a chat.
func (c *Client) SendMessage(ctx context.Context, msg SendMessage) error {
	return c.call(ctx, "/sendMessage", msg)
}

// EditMessageText replaces the text and markup of an existing message.
func (c *Client) EditMessageText(ctx context.Context, edit EditMessageText) error {
	return c.call(ctx, "/editMessageText", edit)
}

// call posts one Bot API method and decodes the shared response envelope.
func (c *Client) call(ctx context.Context, method string, body any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}

	var envelope apiResponse
	res, err := c.http.R().
		SetContext(ctx).
		SetBody(body).
		SetResult(&envelope).
		SetError(&envelope).
		Post(method)
	if err != nil {
		return fmt.Errorf("telegram %s: %w", method, err)
	}
	if !res.IsSuccess() || !envelope.OK {
		detail := envelope.Description
		if detail == "" {
			detail = res.Status()
		}
		return fmt.Errorf("telegram %s: %s", method, detail)
	}
	return nil
}
