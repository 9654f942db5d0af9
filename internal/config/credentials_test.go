package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsLifecycle(t *testing.T) {
	isolate(t)
	t.Setenv("CLARO_REDIS_PASSWORD", "")

	c, err := LoadCredentials()
	require.NoError(t, err)
	assert.Nil(t, c)

	require.Error(t, SaveCredentials("  "))
	require.NoError(t, SaveCredentials(" s3cret "))

	p, err := credFilePath()
	require.NoError(t, err)
	fi, err := os.Stat(p)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), fi.Mode().Perm())

	c, err = LoadCredentials()
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, "s3cret", c.RedisPassword)
	assert.Equal(t, "file", c.Source)

	t.Setenv("CLARO_REDIS_PASSWORD", "from-env")
	c, err = LoadCredentials()
	require.NoError(t, err)
	assert.Equal(t, "env", c.Source)
	assert.Equal(t, "from-env", c.RedisPassword)

	require.NoError(t, DeleteCredentials())
	require.NoError(t, DeleteCredentials())
	t.Setenv("CLARO_REDIS_PASSWORD", "")
	c, err = LoadCredentials()
	require.NoError(t, err)
	assert.Nil(t, c)
}
