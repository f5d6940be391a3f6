package memstore

import (
	"context"
	"testing"
	"time"
)

func TestSetGetDel_RoundTrip(t *testing.T) {
	s := New(8, time.Minute)
	ctx := context.Background()

	if err := s.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok, err := s.Get(ctx, "k")
	if err != nil || !ok || string(v) != "v" {
		t.Fatalf("Get after Set: v=%q ok=%v err=%v", v, ok, err)
	}

	if err := s.Del(ctx, "k"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "k"); ok {
		t.Fatalf("key survived Del")
	}
}

func TestGet_MissingKeyIsNotAnError(t *testing.T) {
	s := New(8, time.Minute)
	v, ok, err := s.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok || v != nil {
		t.Fatalf("expected miss, got v=%q ok=%v", v, ok)
	}
}

func TestCapacity_OldestEntryEvicted(t *testing.T) {
	s := New(2, time.Minute)
	ctx := context.Background()

	_ = s.Set(ctx, "a", []byte("1"), 0)
	_ = s.Set(ctx, "b", []byte("2"), 0)
	_ = s.Set(ctx, "c", []byte("3"), 0)

	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Fatalf("expected oldest entry to be evicted at capacity")
	}
	if _, ok, _ := s.Get(ctx, "c"); !ok {
		t.Fatalf("newest entry missing")
	}
}
