package messaging

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rabbitmq/amqp091-go"

	"github.com/finance-tracker/ledger/internal/application/adapter"
)

type fakeAcknowledger struct {
	acked    bool
	nacked   bool
	requeued bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked = true; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked = true
	f.requeued = requeue
	return nil
}

type fakePublisher struct {
	exchange string
	key      string
	msg      amqp091.Publishing
	err      error
}

func (f *fakePublisher) PublishWithContext(_ context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	return f.err
}

func sampleEvent() adapter.LedgerEvent {
	return adapter.LedgerEvent{
		Event:      adapter.EventUpdated,
		EntityType: adapter.EntityInvestment,
		EntityID:   uuid.New(),
		UserID:     uuid.New(),
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestEventRoundTrip(t *testing.T) {
	event := sampleEvent()
	body, err := EncodeEvent(event)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	decoded, err := DecodeEvent(body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.EntityID != event.EntityID || decoded.Event != event.Event || !decoded.OccurredAt.Equal(event.OccurredAt) {
		t.Errorf("decoded %+v, want %+v", decoded, event)
	}
}

func TestDecodeEventRejectsInvalidMessages(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "unknown event", body: fmt.Sprintf(`{"event":"renamed","entityType":"investment","entityID":%q}`, uuid.New())},
		{name: "unknown entity", body: fmt.Sprintf(`{"event":"created","entityType":"goal","entityID":%q}`, uuid.New())},
		{name: "missing id", body: `{"event":"created","entityType":"investment"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeEvent([]byte(tt.body)); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPublish(t *testing.T) {
	pub := &fakePublisher{}
	client := &Client{publisher: pub, exchangeName: "ledger", queueName: "ledger.events"}

	event := sampleEvent()
	if err := client.Publish(context.Background(), event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if pub.exchange != "ledger" || pub.key != "ledger.events" {
		t.Errorf("published to %s/%s", pub.exchange, pub.key)
	}
	if pub.msg.DeliveryMode != amqp091.Persistent || pub.msg.ContentType != "application/json" {
		t.Errorf("unexpected publishing %+v", pub.msg)
	}
	if pub.msg.Type != "investment.updated" {
		t.Errorf("Type = %q", pub.msg.Type)
	}

	pub.err = errors.New("channel closed")
	if err := client.Publish(context.Background(), event); err == nil {
		t.Error("expected the broker error to be returned")
	}
}

func TestHandleDelivery(t *testing.T) {
	body, _ := EncodeEvent(sampleEvent())

	t.Run("success acks", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body}, func(context.Context, adapter.LedgerEvent) error {
			return nil
		})
		if !ack.acked || ack.nacked {
			t.Errorf("unexpected acknowledgement %+v", ack)
		}
	})

	t.Run("handler failure requeues after a delay", func(t *testing.T) {
		defer func(d time.Duration) { requeueDelay = d }(requeueDelay)
		requeueDelay = 20 * time.Millisecond

		ack := &fakeAcknowledger{}
		start := time.Now()
		handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body}, func(context.Context, adapter.LedgerEvent) error {
			return errors.New("redis down")
		})
		if !ack.nacked || !ack.requeued {
			t.Errorf("unexpected acknowledgement %+v", ack)
		}
		if elapsed := time.Since(start); elapsed < requeueDelay {
			t.Errorf("requeued after %v, want at least %v", elapsed, requeueDelay)
		}
	})

	t.Run("redelivered failure is dropped", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		start := time.Now()
		handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: body, Redelivered: true}, func(context.Context, adapter.LedgerEvent) error {
			return errors.New("redis down")
		})
		if !ack.nacked || ack.requeued {
			t.Errorf("unexpected acknowledgement %+v", ack)
		}
		if elapsed := time.Since(start); elapsed >= requeueDelay {
			t.Errorf("dropping took %v, want no delay", elapsed)
		}
	})

	t.Run("cancelled context requeues without waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		ack := &fakeAcknowledger{}
		start := time.Now()
		handleDelivery(ctx, amqp091.Delivery{Acknowledger: ack, Body: body}, func(context.Context, adapter.LedgerEvent) error {
			return errors.New("redis down")
		})
		if !ack.requeued {
			t.Errorf("unexpected acknowledgement %+v", ack)
		}
		if elapsed := time.Since(start); elapsed >= requeueDelay {
			t.Errorf("requeue waited %v after cancellation", elapsed)
		}
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		ack := &fakeAcknowledger{}
		called := false
		handleDelivery(context.Background(), amqp091.Delivery{Acknowledger: ack, Body: []byte("nope")}, func(context.Context, adapter.LedgerEvent) error {
			called = true
			return nil
		})
		if called || !ack.nacked || ack.requeued {
			t.Errorf("unexpected acknowledgement %+v, handler called %v", ack, called)
		}
	})
}

func TestExponentialBackoff(t *testing.T) {
	tests := []struct {
		attempt  int
		expected time.Duration
	}{
		{0, 1 * time.Second},
		{1, 2 * time.Second},
		{3, 8 * time.Second},
		{4, 16 * time.Second},
		{5, 30 * time.Second},
		{12, 30 * time.Second},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("attempt_%d", tt.attempt), func(t *testing.T) {
			if got := exponentialBackoff(tt.attempt); got != tt.expected {
				t.Errorf("exponentialBackoff(%d) = %v, want %v", tt.attempt, got, tt.expected)
			}
		})
	}
}

func TestIsConnectionError(t *testing.T) {
	if isConnectionError(nil) {
		t.Error("nil is not a connection error")
	}
	if !isConnectionError(errors.New("dial AMQP: connection refused")) {
		t.Error("connection refused should be a connection error")
	}
	if isConnectionError(errors.New("declare queue: access refused")) {
		t.Error("access refused is not a connection error")
	}
}

func TestNopPublisher(t *testing.T) {
	if err := NewNopPublisher().Publish(context.Background(), sampleEvent()); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}
