package cache

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/Ayash-Bera/dorkgen/internal/dorking"
	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	k := Key("find pdf", "example.com")

	assert.True(t, strings.HasPrefix(k, "dork:result:"))
	assert.Equal(t, k, Key("find pdf", "example.com"))
	assert.NotEqual(t, k, Key("find pdf", ""))
	assert.NotEqual(t, k, Key("Find pdf", "example.com"))
	assert.NotEqual(t, k, Key("find pdf", " example.com "))
	// query/site boundary is unambiguous
	assert.NotEqual(t, Key("ab", "c"), Key("a", "bc"))
}

func TestConnect_BadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not a url", logrus.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse Redis URL")
}

func TestCache_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	c := New(client, time.Minute, logrus.New())
	defer c.Close()

	ctx := context.Background()

	_, err := c.Get(ctx, "pdf", "")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrMiss)

	res := dorking.NewEngine().Generate("pdf", "")
	assert.Error(t, c.Set(ctx, "pdf", "", &res))
	assert.Error(t, c.Ping(ctx))
}
