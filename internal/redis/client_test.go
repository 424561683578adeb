package redis

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/shire-forum/shire/internal/models"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	srv := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(srv.Addr())
	require.NoError(t, err)

	c, err := NewClient(context.Background(), &Config{
		Host:        host,
		Port:        port,
		PoolSize:    2,
		DialTimeout: time.Second,
	}, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { c.Close() })
	return c, srv
}

func TestPresence(t *testing.T) {
	ctx := context.Background()
	c, srv := newTestClient(t)

	require.NoError(t, c.MarkActive(ctx, "frodo"))
	require.NoError(t, c.MarkActive(ctx, "sam"))
	require.NoError(t, c.MarkActive(ctx, "frodo"))

	n, err := c.ActiveCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	members, err := srv.Members(activeUsersKey)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"frodo", "sam"}, members)

	require.NoError(t, c.MarkInactive(ctx, "frodo"))
	n, err = c.ActiveCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
}

func TestTopPosters(t *testing.T) {
	ctx := context.Background()
	c, _ := newTestClient(t)

	empty, err := c.TopPosters(ctx, 5)
	require.NoError(t, err)
	assert.Empty(t, empty)

	for _, name := range []string{"sam", "frodo", "sam", "merry", "sam", "frodo"} {
		require.NoError(t, c.RecordPost(ctx, name))
	}

	top, err := c.TopPosters(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []models.PosterRank{
		{Username: "sam", Posts: 3, Rank: 1},
		{Username: "frodo", Posts: 2, Rank: 2},
	}, top)

	none, err := c.TopPosters(ctx, 0)
	require.NoError(t, err)
	assert.Nil(t, none)
}

func TestNewClientUnreachable(t *testing.T) {
	srv := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(srv.Addr())
	require.NoError(t, err)
	srv.Close()

	_, err = NewClient(context.Background(), &Config{Host: host, Port: port, DialTimeout: 200 * time.Millisecond}, nil)
	assert.Error(t, err)
}
