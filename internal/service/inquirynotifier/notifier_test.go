package inquirynotifier

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/edunexa/academy-api/internal/observability/notify"
)

func TestServiceNotifyInquiry(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	var received []notify.InquiryPayload
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "capture",
				Sink: notify.SinkFunc(func(_ context.Context, payload notify.InquiryPayload) error {
					mu.Lock()
					defer mu.Unlock()
					received = append(received, payload)
					return nil
				}),
			},
		},
	})

	if !svc.Enabled() {
		t.Fatal("expected notifier to be enabled")
	}

	svc.NotifyInquiry(ctx, notify.InquiryPayload{
		InquiryID: "inq-1",
		Name:      "Priya Shah",
		Subject:   "Course fees",
	})

	if len(received) != 1 {
		t.Fatalf("expected 1 delivery, got %d", len(received))
	}
	if received[0].InquiryID != "inq-1" {
		t.Fatalf("unexpected payload: %+v", received[0])
	}
}

func TestServiceFansOutToAllSinks(t *testing.T) {
	ctx := context.Background()

	var mu sync.Mutex
	deliveries := map[string]int{}
	capture := func(name string) notify.Sink {
		return notify.SinkFunc(func(_ context.Context, _ notify.InquiryPayload) error {
			mu.Lock()
			defer mu.Unlock()
			deliveries[name]++
			return nil
		})
	}

	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{Name: "slack", Sink: capture("slack")},
			{Name: "audit", Sink: capture("audit")},
		},
	})

	svc.NotifyInquiry(ctx, notify.InquiryPayload{InquiryID: "inq-2"})

	if deliveries["slack"] != 1 || deliveries["audit"] != 1 {
		t.Fatalf("expected one delivery per sink, got %v", deliveries)
	}
}

func TestServiceSinkErrorDoesNotPropagate(t *testing.T) {
	ctx := context.Background()

	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{
				Name: "failing",
				Sink: notify.SinkFunc(func(_ context.Context, _ notify.InquiryPayload) error {
					return errors.New("webhook down")
				}),
			},
		},
	})

	// Must not panic or block; errors are logged only.
	svc.NotifyInquiry(ctx, notify.InquiryPayload{InquiryID: "inq-3"})
}

func TestServiceSkipsNilSinks(t *testing.T) {
	svc := NewService(Options{
		Sinks: []SinkRegistration{
			{Name: "missing", Sink: nil},
		},
	})

	if svc.Enabled() {
		t.Fatal("expected notifier with only nil sinks to be disabled")
	}
}
