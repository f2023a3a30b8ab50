package cache

import (
	"context"
	"testing"
	"time"
)

func TestDisabledCacheIsAMiss(t *testing.T) {
	ctx := context.Background()
	for name, c := range map[string]*Cache{"nil": nil, "no addr": mustNew(t)} {
		t.Run(name, func(t *testing.T) {
			if c.Enabled() {
				t.Fatal("cache should be disabled")
			}
			if err := c.SetJSON(ctx, "k", map[string]int{"a": 1}); err != nil {
				t.Fatalf("set: %v", err)
			}
			var out map[string]int
			found, err := c.GetJSON(ctx, "k", &out)
			if err != nil || found {
				t.Fatalf("found=%v err=%v", found, err)
			}
			c.Invalidate(ctx, "k")
			if err := c.Close(); err != nil {
				t.Fatalf("close: %v", err)
			}
		})
	}
}

func mustNew(t *testing.T) *Cache {
	t.Helper()
	c, err := New(context.Background(), "", "", 0, time.Minute)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	return c
}
