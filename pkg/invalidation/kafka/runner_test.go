package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/prometheus/client_golang/prometheus"
)

type fakeInvalidator struct {
	mu     sync.Mutex
	routes []string
	err    error
}

func (f *fakeInvalidator) Invalidate(_ context.Context, routeID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.routes = append(f.routes, routeID)
	return f.err
}

func (f *fakeInvalidator) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.routes)
}

func message(t *testing.T, w WireEvent) *sarama.ConsumerMessage {
	t.Helper()
	b, err := json.Marshal(w)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return &sarama.ConsumerMessage{
		Topic:     "t",
		Partition: 0,
		Offset:    1,
		Timestamp: time.Now().UTC(),
		Value:     b,
	}
}

func TestHandleMessage_InvalidatesRoute(t *testing.T) {
	cfg := InvalidationConfig{Enabled: true, Driver: DriverKafka}
	fi := &fakeInvalidator{}
	r := New(cfg, fi, Options{Register: prometheus.NewRegistry()})

	w := WireEvent{RouteID: "electricity-retail-sales", Version: 1, TS: time.Now().UTC(), Op: "update"}
	if err := r.handleMessage(context.Background(), message(t, w)); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if fi.count() != 1 || fi.routes[0] != "electricity-retail-sales" {
		t.Fatalf("invalidations = %v", fi.routes)
	}
}

func TestHandleMessage_DuplicateVersionSkipped(t *testing.T) {
	cfg := InvalidationConfig{Enabled: true, Driver: DriverKafka}
	fi := &fakeInvalidator{}
	r := New(cfg, fi, Options{Register: prometheus.NewRegistry()})

	msg := message(t, WireEvent{RouteID: "coal-consumption", Version: 3, TS: time.Now().UTC()})
	if err := r.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("handleMessage: %v", err)
	}
	if err := r.handleMessage(context.Background(), msg); err != nil {
		t.Fatalf("second handleMessage: %v", err)
	}
	if got := fi.count(); got != 1 {
		t.Fatalf("invalidations after duplicate = %d, want 1", got)
	}

	// higher version applies again
	newer := message(t, WireEvent{RouteID: "coal-consumption", Version: 4, TS: time.Now().UTC()})
	if err := r.handleMessage(context.Background(), newer); err != nil {
		t.Fatalf("third handleMessage: %v", err)
	}
	if got := fi.count(); got != 2 {
		t.Fatalf("invalidations after newer version = %d, want 2", got)
	}
}

func TestHandleMessage_MissingRouteRejected(t *testing.T) {
	cfg := InvalidationConfig{Enabled: true, Driver: DriverKafka}
	fi := &fakeInvalidator{}
	r := New(cfg, fi, Options{Register: prometheus.NewRegistry()})

	if err := r.handleMessage(context.Background(), message(t, WireEvent{Version: 1})); err == nil {
		t.Fatal("expected error for event without route_id")
	}
	if fi.count() != 0 {
		t.Fatalf("invalidator called for bad event: %v", fi.routes)
	}
}

func TestHandleMessage_InvalidatorErrorPropagates(t *testing.T) {
	cfg := InvalidationConfig{Enabled: true, Driver: DriverKafka}
	fi := &fakeInvalidator{err: errors.New("redis down")}
	r := New(cfg, fi, Options{Register: prometheus.NewRegistry()})

	msg := message(t, WireEvent{RouteID: "total-energy", Version: 1})
	if err := r.handleMessage(context.Background(), msg); err == nil {
		t.Fatal("expected invalidator error to propagate")
	}
}

func TestStart_DisabledIsNoop(t *testing.T) {
	cfg := InvalidationConfig{Enabled: false, Driver: DriverNone}
	r := New(cfg, &fakeInvalidator{}, Options{Register: prometheus.NewRegistry()})
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start disabled: %v", err)
	}
	if ready, _ := r.Readiness(); ready {
		t.Fatal("disabled runner must not report ready")
	}
	r.Stop()
}
