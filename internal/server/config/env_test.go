package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	t.Setenv("PORT", "3000")
	t.Setenv("DATABASE_DSN", "postgres://env")
	t.Setenv("SECRET_KEY", "env-secret")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("PASSWORD_HASH_COST", "12")

	c := &Config{}
	c.LoadDefaults()
	parseEnv(c)

	assert.Equal(t, ":3000", c.EndpointAddrHTTP)
	assert.Equal(t, "postgres://env", c.DatabaseDSN)
	assert.Equal(t, "env-secret", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.SessionValidityDuration)
	assert.Equal(t, 12, c.PasswordHashCost)
}

func TestParseEnv_EmptyKeepsValues(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SESSION_TTL", "")

	c := &Config{EndpointAddrHTTP: ":1", SessionValidityDuration: time.Minute}
	parseEnv(c)

	assert.Equal(t, ":1", c.EndpointAddrHTTP)
	assert.Equal(t, time.Minute, c.SessionValidityDuration)
}

func TestParseEnv_Malformed(t *testing.T) {
	t.Run("duration", func(t *testing.T) {
		t.Setenv("SESSION_TTL", "forever")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
	t.Run("cost", func(t *testing.T) {
		t.Setenv("PASSWORD_HASH_COST", "ten")
		require.Panics(t, func() { parseEnv(&Config{}) })
	})
}
