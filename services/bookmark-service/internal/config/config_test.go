package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/thanaritk/markvault/services/bookmark-service/internal/config"
)

func TestLoad(t *testing.T) {
	t.Setenv("TOKEN_ACCESS_SECRET", "access-secret")
	t.Setenv("TOKEN_REFRESH_SECRET", "refresh-secret")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("CACHE_TTL", "30s")

	cfg, err := config.Load()
	require.NoError(t, err)

	require.Equal(t, "bookmark-service", cfg.ServiceName)
	require.Equal(t, 9090, cfg.HTTPPort)
	require.Equal(t, 30*time.Second, cfg.CacheTTL)
	require.Equal(t, "access-secret", cfg.Token.AccessTokenSecret)
	require.Equal(t, 15*time.Minute, cfg.Token.AccessTokenExpiresIn)
}

func TestLoadRequiresTokenSecrets(t *testing.T) {
	t.Setenv("TOKEN_ACCESS_SECRET", "")
	t.Setenv("TOKEN_REFRESH_SECRET", "")

	_, err := config.Load()
	require.Error(t, err)

	t.Setenv("TOKEN_ACCESS_SECRET", "access-secret")
	_, err = config.Load()
	require.Error(t, err)
}
