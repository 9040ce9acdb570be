package global

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileKeepsDefaults(t *testing.T) {
	t.Cleanup(func() { Config = Default() })

	require.NoError(t, Load(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Equal(t, ":8080", Config.Server.Addr)
	assert.Equal(t, "react_food_ai", Config.Mongo.Database)
	assert.Equal(t, 72*time.Hour, Config.Jwt.TokenTTL.D())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Cleanup(func() { Config = Default() })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  addr: ":9090"
jwt:
  secret: s3cret
  tokenTTL: 1h
chat:
  writeDeadline: 2s
`), 0o644))

	require.NoError(t, Load(path))
	assert.Equal(t, ":9090", Config.Server.Addr)
	assert.Equal(t, "s3cret", Config.Jwt.Secret)
	assert.Equal(t, time.Hour, Config.Jwt.TokenTTL.D())
	assert.Equal(t, 2*time.Second, Config.Chat.WriteDeadline.D())
	// untouched sections keep defaults
	assert.Equal(t, "react_food_ai", Config.Mongo.Database)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Cleanup(func() { Config = Default() })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server:\n  addr: \":9090\"\n"), 0o644))

	t.Setenv("SERVER_ADDR", ":7070")
	t.Setenv("JWT_SECRET", "from-env")
	t.Setenv("REDIS_DB", "3")

	require.NoError(t, Load(path))
	assert.Equal(t, ":7070", Config.Server.Addr)
	assert.Equal(t, "from-env", Config.Jwt.Secret)
	assert.Equal(t, 3, Config.Redis.DB)
}

func TestLoad_BadYamlFails(t *testing.T) {
	t.Cleanup(func() { Config = Default() })

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [not a map"), 0o644))
	assert.Error(t, Load(path))
}
