package state

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestRedisStoreWrapsConnectionErrors(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	defer rdb.Close()

	s := NewRedisStore(rdb, "shop:test:")

	_, ok, err := s.Get(context.Background(), KeyCart)
	assert.False(t, ok)
	assert.ErrorContains(t, err, "failed to get state cart")

	err = s.Set(context.Background(), KeyCartView, "true")
	assert.ErrorContains(t, err, "failed to set state myCartPage")
}
