package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("SALT_ROUND", "")
	t.Setenv("DIGEST_RECIPIENTS", "")

	cfg := FromEnv()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 10, cfg.SaltRound)
	assert.Equal(t, 30*time.Second, cfg.ChatTimeout)
	assert.Empty(t, cfg.DigestRecipients)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_DRIVER", "SQLite")
	t.Setenv("SALT_ROUND", "12")
	t.Setenv("CHAT_TIMEOUT_SECONDS", "5")
	t.Setenv("DIGEST_RECIPIENTS", "a@x.com, ,b@x.com")

	cfg := FromEnv()

	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 12, cfg.SaltRound)
	assert.Equal(t, 5*time.Second, cfg.ChatTimeout)
	assert.Equal(t, []string{"a@x.com", "b@x.com"}, cfg.DigestRecipients)
}

func TestGetEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("JWT_TTL_HOURS", "soon")
	assert.Equal(t, 24, getEnvInt("JWT_TTL_HOURS", 24))
}
