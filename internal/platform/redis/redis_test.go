package redis

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"postboard/internal/config"
)

func TestNew_Disabled(t *testing.T) {
	client, err := New(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNew_Connects(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := New(context.Background(), config.RedisConfig{Addr: mr.Addr()})
	require.NoError(t, err)
	require.NotNil(t, client)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNew_Unreachable(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := New(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}
