package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	backend "github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T, opts ...RedisOption) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := backend.NewClient(&backend.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisCacheFromClient(client, opts...), mr
}

func TestRedisCache(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if _, hit, err := c.Get(ctx, "k"); hit || err != nil {
		t.Fatalf("empty Get: hit=%v err=%v", hit, err)
	}
	if err := c.Set(ctx, "k", []byte("payload"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if !mr.Exists(DefaultRedisPrefix + "k") {
		t.Error("expected prefixed key in redis")
	}
	data, hit, err := c.Get(ctx, "k")
	if err != nil || !hit || string(data) != "payload" {
		t.Errorf("Get = %q, %v, %v", data, hit, err)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, hit, _ := c.Get(ctx, "k"); hit {
		t.Error("deleted key should miss")
	}
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t)

	if err := c.Set(ctx, "short", []byte("x"), time.Second); err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "forever", []byte("y"), 0); err != nil {
		t.Fatal(err)
	}
	mr.FastForward(2 * time.Second)

	if _, hit, _ := c.Get(ctx, "short"); hit {
		t.Error("expired key should miss")
	}
	if _, hit, _ := c.Get(ctx, "forever"); !hit {
		t.Error("key without ttl should survive")
	}
}

func TestRedisCachePrefixAndClear(t *testing.T) {
	ctx := context.Background()
	c, mr := newTestRedis(t, WithPrefix("team-a:"))

	for _, k := range []string{"a", "b", "c"} {
		if err := c.Set(ctx, k, []byte(k), 0); err != nil {
			t.Fatal(err)
		}
	}
	if err := mr.Set("other:keep", "1"); err != nil {
		t.Fatal(err)
	}

	n, err := c.Clear(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if n != 3 {
		t.Errorf("Clear() = %d, want 3", n)
	}
	if !mr.Exists("other:keep") {
		t.Error("Clear removed a key outside the prefix")
	}
}

func TestNewRedisCache(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(context.Background(), "redis://"+mr.Addr()+"/0")
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}

	if _, err := NewRedisCache(context.Background(), "://bad"); err == nil {
		t.Error("expected error for malformed url")
	}
}

func TestRedisCacheUnreachable(t *testing.T) {
	defer func(d time.Duration) { retryDelay = d }(retryDelay)
	retryDelay = time.Millisecond

	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	_, err := NewRedisCache(context.Background(), "redis://"+addr)
	if err == nil {
		t.Fatal("expected connection error")
	}
}
