package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("EXPORT_SIGNING_KEY", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "secret", cfg.JWT.Secret)
	assert.Equal(t, 24*time.Hour, cfg.JWT.TTL)
	assert.Equal(t, 10, cfg.Security.BcryptCost)
	assert.Equal(t, "", cfg.Database.URL)
	assert.Equal(t, int64(30<<20), cfg.HTTP.MaxBodyBytes)
	assert.Equal(t, "secret", cfg.Export.SigningKey)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("PORT", "5000")
	t.Setenv("JWT_TTL", "0")
	t.Setenv("BCRYPT_COST", "4")
	t.Setenv("DATABASE_URL", "sqlite:/tmp/expenses.db")
	t.Setenv("EXPORT_SIGNING_KEY", "export-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.Port)
	assert.Equal(t, time.Duration(0), cfg.JWT.TTL)
	assert.Equal(t, 4, cfg.Security.BcryptCost)
	assert.Equal(t, "sqlite:/tmp/expenses.db", cfg.Database.URL)
	assert.Equal(t, "export-key", cfg.Export.SigningKey)
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.ErrorIs(t, cfg.Validate(), ErrMissingJWTSecret)
}

func TestLoad_InvalidValues(t *testing.T) {
	t.Setenv("JWT_SECRET", "secret")

	t.Setenv("JWT_TTL", "soon")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("JWT_TTL", "")
	t.Setenv("BCRYPT_COST", "100")
	_, err = Load()
	assert.Error(t, err)

	t.Setenv("BCRYPT_COST", "ten")
	_, err = Load()
	assert.Error(t, err)
}
