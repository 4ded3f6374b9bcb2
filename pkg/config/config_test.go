package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_OpenAIConfig(t *testing.T) {
	os.Setenv("OPENAI_API_KEY", "test-key")
	os.Setenv("OPENAI_MODEL", "gpt-4o")
	os.Setenv("OPENAI_TEMPERATURE", "0.3")
	os.Setenv("OPENAI_MAX_TOKENS", "256")
	defer func() {
		os.Unsetenv("OPENAI_API_KEY")
		os.Unsetenv("OPENAI_MODEL")
		os.Unsetenv("OPENAI_TEMPERATURE")
		os.Unsetenv("OPENAI_MAX_TOKENS")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "test-key", cfg.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, 0.3, cfg.OpenAI.Temperature)
	assert.Equal(t, 256, cfg.OpenAI.MaxTokens)
}

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("OPENAI_MODEL")
	os.Unsetenv("OPENAI_TEMPERATURE")
	os.Unsetenv("DB_NAME")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "gpt-4o-mini", cfg.OpenAI.Model)
	assert.Equal(t, 1.0, cfg.OpenAI.Temperature)
	assert.Equal(t, 2, cfg.OpenAI.RetryAttempts)
	assert.Equal(t, "provider_vault", cfg.Database.Database)
}

func TestLoad_TemperatureOutOfRange(t *testing.T) {
	os.Setenv("OPENAI_TEMPERATURE", "2.5")
	defer os.Unsetenv("OPENAI_TEMPERATURE")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_MaxTokensMustBePositive(t *testing.T) {
	os.Setenv("OPENAI_MAX_TOKENS", "-10")
	defer os.Unsetenv("OPENAI_MAX_TOKENS")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "vault",
		Password: "secret",
		Database: "provider_vault",
		SSLMode:  "disable",
	}
	assert.Equal(t,
		"host=db port=5432 user=vault password=secret dbname=provider_vault sslmode=disable",
		cfg.DatabaseDSN(),
	)
}
