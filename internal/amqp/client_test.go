package amqp

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rabbitmq/amqp091-go"

	"ledger/internal/core"
)

type fakeChannel struct {
	exchange string
	key      string
	msgs     []amqp091.Publishing
	deadline bool
	err      error
	closed   bool

	deliveries chan amqp091.Delivery
	queue      string
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp091.Publishing) error {
	_, f.deadline = ctx.Deadline()
	f.exchange, f.key = exchange, key
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msg)
	return nil
}

func (f *fakeChannel) Consume(queue, _ string, autoAck, _, _, _ bool, _ amqp091.Table) (<-chan amqp091.Delivery, error) {
	if f.err != nil {
		return nil, f.err
	}
	if autoAck {
		return nil, errors.New("auto-ack not expected")
	}
	f.queue = queue
	return f.deliveries, nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestPublishRecorded(t *testing.T) {
	ch := &fakeChannel{}
	client := newClient(ch, "ledger", "ledger_events", time.Second)

	tr := core.NewExpense(700, "Rent", "June")
	if err := client.PublishRecorded(context.Background(), tr); err != nil {
		t.Fatalf("publish: %v", err)
	}

	if ch.exchange != "ledger" || ch.key != "ledger_events" {
		t.Fatalf("unexpected routing: exchange=%q key=%q", ch.exchange, ch.key)
	}
	if !ch.deadline {
		t.Fatal("publish should run with a deadline")
	}
	if len(ch.msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(ch.msgs))
	}
	msg := ch.msgs[0]
	if msg.ContentType != "application/json" || msg.DeliveryMode != amqp091.Persistent {
		t.Fatalf("unexpected publishing: %+v", msg)
	}

	event, err := LedgerEventFromJSON(msg.Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Event != EventTransactionRecorded || event.Kind != "Expense" || event.Amount != 700 ||
		event.Category != "Rent" || event.Description != "June" {
		t.Fatalf("unexpected event: %+v", event)
	}
}

func TestPublishReplaced(t *testing.T) {
	ch := &fakeChannel{}
	client := newClient(ch, "ledger", "ledger_events", 0)
	if client.timeout != defaultPublishTimeout {
		t.Fatalf("expected default timeout, got %v", client.timeout)
	}

	if err := client.PublishReplaced(context.Background(), 3); err != nil {
		t.Fatalf("publish: %v", err)
	}
	event, err := LedgerEventFromJSON(ch.msgs[0].Body)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if event.Event != EventLedgerReplaced || event.Count != 3 || event.Kind != "" {
		t.Fatalf("unexpected event: %+v", event)
	}
	if ch.msgs[0].Type != EventLedgerReplaced {
		t.Fatalf("unexpected message type %q", ch.msgs[0].Type)
	}
}

func TestPublishErrorIsWrapped(t *testing.T) {
	boom := errors.New("channel closed")
	client := newClient(&fakeChannel{err: boom}, "ledger", "q", time.Second)

	err := client.PublishReplaced(context.Background(), 1)
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestClose(t *testing.T) {
	ch := &fakeChannel{}
	client := newClient(ch, "ledger", "q", time.Second)
	if err := client.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !ch.closed {
		t.Fatal("channel not closed")
	}
}

type ackResult struct {
	acked   bool
	requeue bool
}

type fakeAcknowledger struct {
	results map[uint64]ackResult
}

func (a *fakeAcknowledger) Ack(tag uint64, _ bool) error {
	a.results[tag] = ackResult{acked: true}
	return nil
}

func (a *fakeAcknowledger) Nack(tag uint64, _ bool, requeue bool) error {
	a.results[tag] = ackResult{requeue: requeue}
	return nil
}

func (a *fakeAcknowledger) Reject(tag uint64, requeue bool) error {
	return a.Nack(tag, false, requeue)
}

func TestConsumeEvents(t *testing.T) {
	ack := &fakeAcknowledger{results: make(map[uint64]ackResult)}
	deliveries := make(chan amqp091.Delivery, 4)

	recorded, _ := NewRecordedEvent(core.NewIncome(10, "Gift", "")).ToJSON()
	replaced, _ := NewReplacedEvent(2).ToJSON()
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: recorded}
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 2, Body: []byte("not json")}
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 3, Body: replaced}
	deliveries <- amqp091.Delivery{Acknowledger: ack, DeliveryTag: 4, Body: replaced, Redelivered: true}
	close(deliveries)

	ch := &fakeChannel{deliveries: deliveries}
	client := newClient(ch, "ledger", "ledger_events", time.Second)

	var seen []string
	handler := func(_ context.Context, e *LedgerEvent) error {
		seen = append(seen, e.Event)
		if e.Event == EventLedgerReplaced {
			return errors.New("sheet unavailable")
		}
		return nil
	}

	err := client.ConsumeEvents(context.Background(), handler)
	if err == nil || err.Error() != "message channel closed" {
		t.Fatalf("expected closed channel error, got %v", err)
	}
	if ch.queue != "ledger_events" {
		t.Fatalf("consumed queue %q", ch.queue)
	}
	if len(seen) != 3 {
		t.Fatalf("handler saw %v", seen)
	}

	want := map[uint64]ackResult{
		1: {acked: true},
		2: {},
		3: {requeue: true},
		4: {},
	}
	for tag, w := range want {
		if got := ack.results[tag]; got != w {
			t.Fatalf("delivery %d: got %+v, want %+v", tag, got, w)
		}
	}
}

func TestConsumeEventsStopsOnCancel(t *testing.T) {
	ch := &fakeChannel{deliveries: make(chan amqp091.Delivery)}
	client := newClient(ch, "ledger", "q", time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := client.ConsumeEvents(ctx, func(context.Context, *LedgerEvent) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
