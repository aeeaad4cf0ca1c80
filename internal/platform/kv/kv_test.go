package kv_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"staffdesk/internal/platform/db"
	"staffdesk/internal/platform/kv"
)

func exerciseStore(t *testing.T, store kv.Store) {
	t.Helper()
	ctx := context.Background()

	if _, ok, err := store.Get(ctx, "token"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := store.Set(ctx, "token", "tok-1"); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := store.Set(ctx, "token", "tok-2"); err != nil {
		t.Fatalf("overwrite error: %v", err)
	}
	value, ok, err := store.Get(ctx, "token")
	if err != nil || !ok || value != "tok-2" {
		t.Fatalf("expected tok-2, got %q ok=%v err=%v", value, ok, err)
	}

	if err := store.Remove(ctx, "token"); err != nil {
		t.Fatalf("remove error: %v", err)
	}
	if err := store.Remove(ctx, "token"); err != nil {
		t.Fatalf("second remove should be a no-op, got %v", err)
	}
	if _, ok, _ := store.Get(ctx, "token"); ok {
		t.Fatal("expected key to be gone after remove")
	}

	if err := store.Set(ctx, "", "x"); !errors.Is(err, kv.ErrEmptyKey) {
		t.Fatalf("expected ErrEmptyKey, got %v", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := kv.NewMemory()
	exerciseStore(t, store)
	if store.Len() != 0 {
		t.Fatalf("expected empty store, got %d entries", store.Len())
	}
}

func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client := kv.NewRedisClient(kv.RedisConfig{Addr: addr})
	store := kv.NewRedis(client, fmt.Sprintf("test-%d", time.Now().UnixNano()))
	defer store.Close()

	if err := store.Ping(context.Background()); err != nil {
		t.Fatalf("redis ping failed: %v", err)
	}
	exerciseStore(t, store)
}

func TestPostgresStore(t *testing.T) {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	if err := db.Migrate(dbURL); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	pool, err := db.Connect(context.Background(), dbURL)
	if err != nil {
		t.Fatalf("connect failed: %v", err)
	}
	defer pool.Close()

	exerciseStore(t, kv.NewPostgres(pool, fmt.Sprintf("test-%d", time.Now().UnixNano())))
}
