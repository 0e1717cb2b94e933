// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_TEMPERATURE", "")
	t.Setenv("CORS_ALLOWED_ORIGINS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Empty(t, cfg.Server.Host)
	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 2000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 0.7, cfg.OpenAI.Temperature)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.CORS.AllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("OPENAI_MAX_TOKENS", "4000")
	t.Setenv("OPENAI_TEMPERATURE", "0.2")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://app.nexsy.io")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("AWS_CLOUDFRONT_URL", "https://cdn.nexsy.io")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 4000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 0.2, cfg.OpenAI.Temperature)
	assert.Equal(t, []string{"https://app.nexsy.io"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "mongodb://localhost:27017", cfg.Mongo.URI)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "https://cdn.nexsy.io", cfg.AWS.CloudFrontURL)
}

func TestLoadRejectsBadTemperature(t *testing.T) {
	t.Setenv("OPENAI_TEMPERATURE", "3.5")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadMalformedNumbersFallBack(t *testing.T) {
	t.Setenv("OPENAI_MAX_TOKENS", "lots")
	t.Setenv("OPENAI_TEMPERATURE", "warm")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 2000, cfg.OpenAI.MaxTokens)
	assert.Equal(t, 0.7, cfg.OpenAI.Temperature)
}
