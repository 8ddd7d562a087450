package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyDefaults(t *testing.T) {
	var c AppConfig
	applyDefaults(&c)

	assert.Equal(t, "8080", c.AppPort)
	assert.Equal(t, "release", c.GinMode)
	assert.Equal(t, 60, c.RateLimitPerMinute)
	assert.Equal(t, []string{"*"}, c.AllowedOrigins)
	assert.Equal(t, "127.0.0.1", c.DBHost)
	assert.Equal(t, "3306", c.DBPort)
	assert.Equal(t, "geoupload", c.DBName)
	assert.Equal(t, 6379, c.RedisPort)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, 30, c.SessionRetentionDays)
}

func TestApplyDefaultsKeepsExistingValues(t *testing.T) {
	c := AppConfig{AppPort: "9000", SessionRetentionDays: 7}
	applyDefaults(&c)

	assert.Equal(t, "9000", c.AppPort)
	assert.Equal(t, 7, c.SessionRetentionDays)
}

func TestApplyEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("SESSION_RETENTION_DAYS", "14")
	t.Setenv("ADMIN_USERNAMES", "alice, bob ,")

	var c AppConfig
	applyDefaults(&c)
	applyEnvOverrides(&c)

	assert.Equal(t, "9090", c.AppPort)
	assert.Equal(t, 14, c.SessionRetentionDays)
	assert.Equal(t, []string{"alice", "bob"}, c.AdminUsernames)
}

func TestSplitAndTrim(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitAndTrim(" a ,, b "))
	assert.Equal(t, []string{}, splitAndTrim(" , "))
}
