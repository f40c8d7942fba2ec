package redisstore

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"testing"
	"time"

	"github.com/pbanos/cropforest"
	"github.com/pbanos/cropforest/codec"
	"github.com/pbanos/cropforest/dataset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/redis.v5"
)

// redisClient returns a client for the redis server at CROPFOREST_TEST_REDIS_ADDR
// or skips the test if the variable is not set.
func redisClient(t *testing.T) *redis.Client {
	addr := os.Getenv("CROPFOREST_TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("CROPFOREST_TEST_REDIS_ADDR not set")
	}
	rc := redis.NewClient(&redis.Options{Addr: addr})
	require.NoError(t, rc.Ping().Err())
	t.Cleanup(func() { rc.Close() })
	return rc
}

func TestRedisStore(t *testing.T) {
	rc := redisClient(t)
	ctx := context.Background()
	prefix := fmt.Sprintf("cropforest-test-%d", time.Now().UnixNano())
	s := New(rc, prefix, codec.NewJSON())

	_, err := s.Load(ctx, "default")
	assert.True(t, errors.Is(err, ErrNotFound))

	ds := dataset.GenerateDefault(rand.New(rand.NewSource(1)))
	f := cropforest.New(cropforest.WithNumTrees(3), cropforest.WithSeed(1))
	require.NoError(t, f.Train(ctx, ds))
	require.NoError(t, s.Save(ctx, "default", f))

	names, err := s.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"default"}, names)

	loaded, err := s.Load(ctx, "default")
	require.NoError(t, err)
	want, err := f.Predict(ds[0].Vector)
	require.NoError(t, err)
	got, err := loaded.Predict(ds[0].Vector)
	require.NoError(t, err)
	assert.Equal(t, want.Votes(), got.Votes())

	require.NoError(t, s.Delete(ctx, "default"))
	_, err = s.Load(ctx, "default")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestSaveUntrainedForest(t *testing.T) {
	s := New(nil, "unused", codec.NewJSON())
	err := s.Save(context.Background(), "default", cropforest.New())
	assert.True(t, errors.Is(err, cropforest.ErrModelNotTrained))
}
