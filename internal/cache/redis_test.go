package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"partshop/internal/model"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupRedis(t *testing.T) *PartCache {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping redis container test in short mode")
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForLog("Ready to accept connections").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, "6379/tcp")
	require.NoError(t, err)

	client, err := Connect(ctx, fmt.Sprintf("%s:%s", host, port.Port()), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	return NewPartCache(client, time.Minute, zerolog.Nop())
}

func TestPartCache(t *testing.T) {
	c := setupRedis(t)
	ctx := context.Background()

	t.Run("miss returns nil", func(t *testing.T) {
		part, err := c.Get(ctx, 404)
		require.NoError(t, err)
		assert.Nil(t, part)
	})

	t.Run("set then get", func(t *testing.T) {
		category := "Brakes"
		want := &model.Part{
			ID:         3,
			PartNumber: "BRK-001",
			Name:       "Brake pad",
			Category:   &category,
			Price:      decimal.RequireFromString("19.99"),
			Status:     model.PartStatusAvailable,
		}
		require.NoError(t, c.Set(ctx, want))

		got, err := c.Get(ctx, 3)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, want.PartNumber, got.PartNumber)
		assert.Equal(t, "Brakes", *got.Category)
		assert.True(t, want.Price.Equal(got.Price))
	})

	t.Run("invalidate evicts", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, &model.Part{ID: 5, Name: "Filter"}))
		require.NoError(t, c.Invalidate(ctx, 5))

		got, err := c.Get(ctx, 5)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("corrupt entry is a miss", func(t *testing.T) {
		require.NoError(t, c.client.Set(ctx, partKey(9), "not json", time.Minute).Err())

		got, err := c.Get(ctx, 9)
		require.NoError(t, err)
		assert.Nil(t, got)

		exists, err := c.client.Exists(ctx, partKey(9)).Result()
		require.NoError(t, err)
		assert.Zero(t, exists)
	})

	t.Run("entries expire", func(t *testing.T) {
		require.NoError(t, c.Set(ctx, &model.Part{ID: 11}))
		ttl, err := c.client.TTL(ctx, partKey(11)).Result()
		require.NoError(t, err)
		assert.Greater(t, ttl, time.Duration(0))
		assert.LessOrEqual(t, ttl, time.Minute)
	})
}
