package relay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnvRequiresBotToken(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "")

	_, err := ConfigFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestConfigFromEnvAppliesDefaults(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("SIGNAL_AI_SERVICE", "")
	t.Setenv("NEWS_AI_SERVICE", "")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "token", cfg.BotToken)
	assert.Equal(t, defaultSignalServiceURL, cfg.SignalServiceURL)
	assert.Equal(t, defaultNewsServiceURL, cfg.NewsServiceURL)
	assert.Positive(t, cfg.SessionCapacity)
	assert.Positive(t, cfg.SessionTTL)
}

func TestConfigFromEnvReadsOverrides(t *testing.T) {
	t.Setenv("TELEGRAM_BOT_TOKEN", "token")
	t.Setenv("SIGNAL_AI_SERVICE", "http://signal.internal")
	t.Setenv("NEWS_AI_SERVICE", "http://news.internal")
	t.Setenv("SCRATCH_DIR", "/scratch")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "http://signal.internal", cfg.SignalServiceURL)
	assert.Equal(t, "http://news.internal", cfg.NewsServiceURL)
	assert.Equal(t, "/scratch", cfg.ScratchDir)
}
