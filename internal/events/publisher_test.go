package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/tableside-pos/api/internal/calc"
	"go.uber.org/zap"
)

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func header(msg kafka.Message, key string) string {
	for _, h := range msg.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestPublishTransactionCreated(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, zap.NewNop())
	p.now = func() time.Time { return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC) }

	orderUUID := uuid.New()
	outletID := uuid.New()
	err := p.PublishTransactionCreated(context.Background(), TransactionCreated{
		TransactionID:   42,
		TransactionUUID: uuid.New(),
		OutletID:        outletID,
		OrderUUID:       orderUUID,
		Source:          2,
		Total:           "55.00",
		Payments:        []calc.Allocation{{Method: "CASH", Amount: decimal.RequireFromString("55")}},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	msg := w.msgs[0]
	if string(msg.Key) != orderUUID.String() {
		t.Errorf("key = %s, want order uuid", msg.Key)
	}
	if got := header(msg, "event_type"); got != string(EventTypeTransactionCreated) {
		t.Errorf("event_type header = %q", got)
	}

	var event Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.ID == "" || event.ID != header(msg, "event_id") {
		t.Errorf("event id %q does not match header %q", event.ID, header(msg, "event_id"))
	}
	if event.OutletID != outletID.String() {
		t.Errorf("outlet = %s", event.OutletID)
	}

	var data TransactionCreated
	if err := json.Unmarshal(event.Data, &data); err != nil {
		t.Fatalf("decode data: %v", err)
	}
	if data.TransactionID != 42 || data.Total != "55.00" {
		t.Errorf("data = %+v", data)
	}
}

func TestPublishTransactionCreated_OnAccount(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, zap.NewNop())

	docket := uuid.New()
	if err := p.PublishTransactionCreated(context.Background(), TransactionCreated{DocketID: docket}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	msg := w.msgs[0]
	if string(msg.Key) != docket.String() {
		t.Errorf("key = %s, want docket id", msg.Key)
	}
	if got := header(msg, "event_type"); got != string(EventTypeOnAccountCharged) {
		t.Errorf("event_type header = %q", got)
	}
}

func TestPublishBookingFinished(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, zap.NewNop())

	booking := uuid.New()
	if err := p.PublishBookingFinished(context.Background(), BookingFinished{BookingID: booking, OutletID: uuid.New()}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(w.msgs[0].Key) != booking.String() {
		t.Errorf("key = %s, want booking id", w.msgs[0].Key)
	}
	if got := header(w.msgs[0], "event_type"); got != string(EventTypeBookingFinished) {
		t.Errorf("event_type header = %q", got)
	}
}

func TestPublish_WriterError(t *testing.T) {
	writeErr := errors.New("broker down")
	p := newPublisher(&fakeWriter{err: writeErr}, zap.NewNop())

	err := p.PublishBookingFinished(context.Background(), BookingFinished{BookingID: uuid.New()})
	if !errors.Is(err, writeErr) {
		t.Fatalf("error = %v, want %v", err, writeErr)
	}
}

func TestClose(t *testing.T) {
	w := &fakeWriter{}
	p := newPublisher(w, zap.NewNop())
	if err := p.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	if !w.closed {
		t.Error("writer not closed")
	}
}

func TestNewKafkaPublisher_WriterConfig(t *testing.T) {
	p := NewKafkaPublisher([]string{"localhost:9092"}, "settlements", zap.NewNop())
	w, ok := p.writer.(*kafka.Writer)
	if !ok {
		t.Fatalf("writer = %T, want *kafka.Writer", p.writer)
	}
	if w.Topic != "settlements" {
		t.Errorf("Topic = %q", w.Topic)
	}
	if w.RequiredAcks != kafka.RequireOne {
		t.Errorf("RequiredAcks = %v", w.RequiredAcks)
	}
	// A zero BatchTimeout means kafka-go's one second default.
	if w.BatchTimeout <= 0 || w.BatchTimeout > 50*time.Millisecond {
		t.Errorf("BatchTimeout = %v, want a short flush interval", w.BatchTimeout)
	}
	if err := p.Close(); err != nil {
		t.Errorf("Close: %v", err)
	}
}
