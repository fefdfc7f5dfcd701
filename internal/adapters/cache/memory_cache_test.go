package cache

import (
	"context"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/its-bede/is-it-spam-go/internal/core"
)

func newTestMemoryCache(t *testing.T) *MemoryCache {
	t.Helper()
	c := NewMemoryCache(zap.NewNop(), time.Hour)
	t.Cleanup(c.Stop)
	return c
}

func entry(email string, ttl time.Duration) *core.CacheEntry {
	return &core.CacheEntry{
		Email:      email,
		Spam:       true,
		Confidence: 0.9,
		LastSeen:   time.Now(),
		ExpiresAt:  time.Now().Add(ttl),
	}
}

func TestMemoryCache_SetGet(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entry("a@b.com", time.Hour)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := c.Get(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if !got.Spam || got.Confidence != 0.9 {
		t.Errorf("Get() = %+v", got)
	}
}

func TestMemoryCache_Miss(t *testing.T) {
	c := newTestMemoryCache(t)
	if _, err := c.Get(context.Background(), "nobody@x.com"); err != ErrNotFound {
		t.Errorf("Get() error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_Expired(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, entry("a@b.com", -time.Minute)); err != nil {
		t.Fatalf("Set() error: %v", err)
	}
	if _, err := c.Get(ctx, "a@b.com"); err != ErrExpired {
		t.Errorf("Get() error = %v, want ErrExpired", err)
	}
}

func TestMemoryCache_Delete(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, entry("a@b.com", time.Hour))
	if err := c.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := c.Get(ctx, "a@b.com"); err != ErrNotFound {
		t.Errorf("Get() after delete error = %v, want ErrNotFound", err)
	}
}

func TestMemoryCache_Cleanup(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, entry("stale@x.com", -time.Minute))
	_ = c.Set(ctx, entry("fresh@x.com", time.Hour))

	if err := c.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}

	if _, err := c.Get(ctx, "stale@x.com"); err != ErrNotFound {
		t.Errorf("stale entry error = %v, want ErrNotFound", err)
	}
	if _, err := c.Get(ctx, "fresh@x.com"); err != nil {
		t.Errorf("fresh entry error = %v, want present", err)
	}
}

func TestMemoryCache_GetReturnsCopy(t *testing.T) {
	c := newTestMemoryCache(t)
	ctx := context.Background()

	_ = c.Set(ctx, entry("a@b.com", time.Hour))
	first, _ := c.Get(ctx, "a@b.com")
	first.Confidence = 0.0

	second, _ := c.Get(ctx, "a@b.com")
	if second.Confidence != 0.9 {
		t.Error("Get() exposed shared entry state")
	}
}
