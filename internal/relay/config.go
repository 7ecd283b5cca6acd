package relay

import (
	"errors"
	"os"
	"time"

	"github.com/vk/bootgridgo/internal/relay/session"
)

// Default upstream endpoints, overridable through the environment.
const (
	defaultSignalServiceURL = "https://tradingview-signal-ai-service-production.up.railway.app"
	defaultNewsServiceURL   = "https://tradingview-news-ai-service-production.up.railway.app"
)

// Config holds everything the relay needs to serve. It is read from the
// process environment once, at launch.
type Config struct {
	// BotToken authenticates against the Telegram Bot API. Required.
	BotToken string
	// SignalServiceURL and NewsServiceURL locate the upstream AI services.
	SignalServiceURL string
	NewsServiceURL   string

	// ScratchDir is the guaranteed-writable path provisioned during the
	// build, injected explicitly instead of being discovered ambiently.
	ScratchDir string

	SessionCapacity int
	SessionTTL      time.Duration

	// TelegramBaseURL overrides the Bot API endpoint, used by tests.
	TelegramBaseURL string
}

// ConfigFromEnv reads the relay configuration from the environment. A
// missing bot token is a boot-fatal error; everything else has defaults.
func ConfigFromEnv() (*Config, error) {
	token := os.Getenv("TELEGRAM_BOT_TOKEN")
	if token == "" {
		return nil, errors.New("TELEGRAM_BOT_TOKEN environment variable is not set")
	}

	cfg := &Config{
		BotToken:         token,
		SignalServiceURL: os.Getenv("SIGNAL_AI_SERVICE"),
		NewsServiceURL:   os.Getenv("NEWS_AI_SERVICE"),
		ScratchDir:       os.Getenv("SCRATCH_DIR"),
		SessionCapacity:  session.DefaultCapacity,
		SessionTTL:       session.DefaultTTL,
	}
	if cfg.SignalServiceURL == "" {
		cfg.SignalServiceURL = defaultSignalServiceURL
	}
	if cfg.NewsServiceURL == "" {
		cfg.NewsServiceURL = defaultNewsServiceURL
	}
	return cfg, nil
}
