package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/restkit/pkg/config"
	"github.com/dmitrymomot/restkit/pkg/redis"
)

func TestOpenStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("memory", func(t *testing.T) {
		t.Parallel()
		store, checks, closeStore, err := openStore(ctx, serverConfig{Store: storeMemory})
		require.NoError(t, err)
		defer closeStore()
		assert.NotNil(t, store)
		assert.Empty(t, checks)
	})

	t.Run("redis", func(t *testing.T) {
		t.Parallel()
		mr := miniredis.RunT(t)
		cfg := serverConfig{
			Store:    storeRedis,
			RedisKey: "articles",
			Redis:    redis.Config{ConnectionURL: "redis://" + mr.Addr() + "/0", RetryAttempts: 1},
		}
		store, checks, closeStore, err := openStore(ctx, cfg)
		require.NoError(t, err)
		defer closeStore()

		_, err = store.Add(ctx, map[string]any{"title": "Hello"})
		require.NoError(t, err)
		items, err := mr.List("articles")
		require.NoError(t, err)
		assert.Len(t, items, 1)
		require.Contains(t, checks, "redis")
		assert.NoError(t, checks["redis"](ctx))
	})

	t.Run("unknown", func(t *testing.T) {
		t.Parallel()
		_, _, _, err := openStore(ctx, serverConfig{Store: "sqlite"})
		assert.ErrorContains(t, err, `unknown store "sqlite"`)
	})
}

func TestSettingsCommand(t *testing.T) {
	_, err := config.Override(map[string]any{"page_size": 25})
	require.NoError(t, err)
	t.Cleanup(config.ResetCache)

	out := &bytes.Buffer{}
	settingsCmd.SetOut(out)
	require.NoError(t, settingsCmd.RunE(settingsCmd, nil))

	var printed map[string]any
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &printed))
	assert.Equal(t, 25, printed["page_size"])
	assert.Equal(t, "pagination.PageNumberPagination", printed["default_pagination_class"])
}
