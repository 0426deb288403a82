package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/pkg/config"
)

type serverConfig struct {
	Addr    string `env:"TEST_SERVER_ADDR" envDefault:":8080"`
	Workers int    `env:"TEST_SERVER_WORKERS" envDefault:"4"`
}

type requiredConfig struct {
	Value string `env:"TEST_REQUIRED_VALUE,required"`
}

type fileConfig struct {
	Name string `env:"TEST_FILE_NAME"`
}

func TestLoad(t *testing.T) {
	t.Cleanup(config.ResetCache)
	config.ResetCache()
	t.Setenv("TEST_SERVER_ADDR", ":9000")

	var cfg serverConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 4, cfg.Workers)

	t.Setenv("TEST_SERVER_ADDR", ":9001")
	var again serverConfig
	require.NoError(t, config.Load(&again))
	assert.Equal(t, ":9000", again.Addr, "config types are parsed once")
}

func TestLoad_Errors(t *testing.T) {
	t.Cleanup(config.ResetCache)
	config.ResetCache()
	os.Unsetenv("TEST_REQUIRED_VALUE")

	var cfg requiredConfig
	assert.ErrorIs(t, config.Load(&cfg), config.ErrParsingConfig)
	assert.ErrorIs(t, config.Load[requiredConfig](nil), config.ErrNilPointer)
	assert.Panics(t, func() { config.MustLoad(&cfg) })
}

func TestLoadEnv(t *testing.T) {
	t.Cleanup(config.ResetCache)
	config.ResetCache()
	t.Setenv("TEST_FILE_NAME", "")
	os.Unsetenv("TEST_FILE_NAME")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TEST_FILE_NAME=from-file\n"), 0o600))
	require.NoError(t, config.LoadEnv(path))
	t.Cleanup(func() { os.Unsetenv("TEST_FILE_NAME") })

	var cfg fileConfig
	require.NoError(t, config.Load(&cfg))
	assert.Equal(t, "from-file", cfg.Name)

	assert.ErrorIs(t, config.LoadEnv(filepath.Join(t.TempDir(), "missing.env")), config.ErrLoadingEnvFile)
}
