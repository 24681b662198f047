package tokenstore_test

import (
	"context"
	"leetcode_tracker/internal/platform/tokenstore"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	return mr, rdb
}

func TestRedisTier_DurableKeyHasNoTTL(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	tier := tokenstore.NewRedisTier(rdb, "tracker:token:durable", 0)

	if _, ok, err := tier.Get(ctx); ok || err != nil {
		t.Fatalf("Get() on missing key = ok %v, err %v", ok, err)
	}

	if err := tier.Set(ctx, "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL("tracker:token:durable"); ttl != 0 {
		t.Errorf("TTL = %v, want none", ttl)
	}

	if got, ok, err := tier.Get(ctx); err != nil || !ok || got != "tok" {
		t.Errorf("Get() = %q, %v, %v", got, ok, err)
	}

	if err := tier.Remove(ctx); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if mr.Exists("tracker:token:durable") {
		t.Error("key still exists after Remove()")
	}
}

func TestRedisTier_SessionKeyExpires(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	mr, rdb := newRedis(t)
	tier := tokenstore.NewRedisTier(rdb, "tracker:token:session", time.Hour)

	if err := tier.Set(ctx, "tok"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if ttl := mr.TTL("tracker:token:session"); ttl != time.Hour {
		t.Errorf("TTL = %v, want 1h", ttl)
	}

	mr.FastForward(2 * time.Hour)

	if _, ok, err := tier.Get(ctx); ok || err != nil {
		t.Errorf("Get() after expiry = ok %v, err %v; want empty", ok, err)
	}
}

func TestRedisTier_PolicyOverRedis(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	_, rdb := newRedis(t)
	policy := tokenstore.NewPolicy(
		tokenstore.NewRedisTier(rdb, "k:durable", 0),
		tokenstore.NewRedisTier(rdb, "k:session", time.Hour),
	)

	if err := policy.Persist(ctx, "tok", false); err != nil {
		t.Fatalf("Persist() error = %v", err)
	}
	if got, ok, _ := policy.Read(ctx); !ok || got != "tok" {
		t.Errorf("Read() = %q, %v", got, ok)
	}
	if err := policy.Clear(ctx); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok, _ := policy.Read(ctx); ok {
		t.Error("token survived Clear()")
	}
}
