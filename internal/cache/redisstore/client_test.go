package redisstore

import (
	"context"
	"testing"
	"time"

	miniredis "github.com/alicebob/miniredis/v2"
)

func newTestClient(t *testing.T) (*Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	t.Cleanup(cancel)

	rc, err := New(ctx, mr.Addr())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = rc.Close() })
	return rc, mr
}

func TestNew_EmptyAddrRejected(t *testing.T) {
	if _, err := New(context.Background(), ""); err == nil {
		t.Fatalf("expected error for empty address")
	}
}

func TestSetGetDel_RoundTrip(t *testing.T) {
	rc, _ := newTestClient(t)
	ctx := context.Background()

	if err := rc.Set(ctx, "eia:meta:r1", []byte(`{"route_id":"r1"}`), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}

	val, ok, err := rc.Get(ctx, "eia:meta:r1")
	if err != nil || !ok {
		t.Fatalf("Get: ok=%v err=%v", ok, err)
	}
	if string(val) != `{"route_id":"r1"}` {
		t.Fatalf("unexpected value: %s", val)
	}

	if err := rc.Del(ctx, "eia:meta:r1"); err != nil {
		t.Fatalf("Del: %v", err)
	}
	if _, ok, _ := rc.Get(ctx, "eia:meta:r1"); ok {
		t.Fatalf("key survived Del")
	}
}

func TestGet_MissingKeyIsNotAnError(t *testing.T) {
	rc, _ := newTestClient(t)
	_, ok, err := rc.Get(context.Background(), "absent")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if ok {
		t.Fatalf("expected miss")
	}
}

func TestTTLExpiry_GetMissesAfterExpiry(t *testing.T) {
	rc, mr := newTestClient(t)
	ctx := context.Background()

	if err := rc.Set(ctx, "ttl-key", []byte("v"), 2*time.Second); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if _, ok, _ := rc.Get(ctx, "ttl-key"); !ok {
		t.Fatalf("expected hit before expiry")
	}

	mr.FastForward(3 * time.Second)

	if _, ok, err := rc.Get(ctx, "ttl-key"); err != nil || ok {
		t.Fatalf("expected miss after expiry: ok=%v err=%v", ok, err)
	}
}
