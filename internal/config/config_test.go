package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Web.PostsPerPage)
	assert.Equal(t, "/auth/login/", cfg.Web.LoginURL)
	assert.Equal(t, "access_token", cfg.Web.CookieName)
	assert.Equal(t, 14*24*time.Hour, cfg.SessionTTL())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("POSTS_PER_PAGE", "25")
	t.Setenv("SESSION_COOKIE_SECURE", "true")
	t.Setenv("JWT_ACCESS_EXPIRY", "30")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Web.PostsPerPage)
	assert.True(t, cfg.Web.CookieSecure)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL())
}

func TestValidateRejectsBadValues(t *testing.T) {
	t.Setenv("POSTS_PER_PAGE", "0")
	_, err := Load()
	assert.ErrorContains(t, err, "POSTS_PER_PAGE")

	t.Setenv("POSTS_PER_PAGE", "10")
	t.Setenv("DB_PORT", "five")
	_, err = Load()
	assert.ErrorContains(t, err, "DB_PORT")
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_PASSWORD", "db-pass")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Environment)
	assert.Equal(t, "db-pass", cfg.Database.Password)
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")

	cfg, err := LoadDatabaseConfig()
	require.NoError(t, err)
	assert.Equal(t, "db", cfg.Host)
	assert.Equal(t, 3*time.Second, cfg.ConnectTimeout)
	assert.Equal(t, 5*time.Minute, cfg.MaxConnLifetime)

	t.Setenv("DB_RETRY_DELAY", "soon")
	_, err = LoadDatabaseConfig()
	assert.ErrorContains(t, err, "DB_RETRY_DELAY")
}
