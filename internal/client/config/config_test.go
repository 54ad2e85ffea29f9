package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "127.0.0.1:50051", c.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, c.OperationTimeout)
	assert.Equal(t, 2*time.Second, c.AutoSyncDebounce)
	assert.False(t, c.AutoSync)
	assert.NotEmpty(t, c.DataRoot)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}
	t.Setenv(EnvServerAddr, "")
	t.Setenv(EnvOpTimeout, "")

	cfg := LoadConfig()

	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, "127.0.0.1:50051", cfg.ServerEndpointAddr)
	assert.Equal(t, 30*time.Second, cfg.OperationTimeout)
}

func TestLoadConfig_FlagsOverrideEnv(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	t.Setenv(EnvServerAddr, "env-host:1")
	t.Setenv(EnvDataRoot, "/from/env")
	os.Args = []string{"testbin", "-a", "flag-host:2"}

	cfg := LoadConfig()

	assert.Equal(t, "flag-host:2", cfg.ServerEndpointAddr)
	assert.Equal(t, "/from/env", cfg.DataRoot)
}
