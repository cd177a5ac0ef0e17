package pkg

import (
	"testing"

	"github.com/SAP-F-2025/interview-service/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewZapLogger(t *testing.T) {
	for _, env := range []string{"development", "production"} {
		logger, err := NewZapLogger(env)
		require.NoError(t, err)
		assert.NotNil(t, logger)
	}

	dev, _ := NewZapLogger("development")
	assert.True(t, dev.Core().Enabled(-1))
	prod, _ := NewZapLogger("production")
	assert.False(t, prod.Core().Enabled(-1))
}

func TestInitDatabase_UnsupportedDriver(t *testing.T) {
	_, err := InitDatabase(&config.Config{DatabaseDriver: "oracle", DatabaseURL: "x"})
	assert.ErrorContains(t, err, "unsupported database driver")
}

func TestNewRedisClient_InvalidURL(t *testing.T) {
	_, err := NewRedisClient(&config.Config{RedisURL: "not a url"})
	assert.ErrorContains(t, err, "invalid redis url")
}
