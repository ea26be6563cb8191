// Package events publishes settlement events to Kafka so downstream
// reporting can follow transactions without polling the database.
package events

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/tableside-pos/api/internal/calc"
	"go.uber.org/zap"
)

// EventType names a published event.
type EventType string

const (
	EventTypeTransactionCreated EventType = "transaction.created"
	EventTypeOnAccountCharged   EventType = "transaction.on_account"
	EventTypeBookingFinished    EventType = "booking.finished"
)

// Event is the envelope written to the topic.
type Event struct {
	ID        string          `json:"id"`
	Type      EventType       `json:"type"`
	OutletID  string          `json:"outlet_id"`
	Data      json.RawMessage `json:"data"`
	Timestamp time.Time       `json:"timestamp"`
}

// TransactionCreated describes a stored transaction.
type TransactionCreated struct {
	TransactionID   int64             `json:"transaction_id"`
	TransactionUUID uuid.UUID         `json:"transaction_uuid"`
	OutletID        uuid.UUID         `json:"outlet_id"`
	OrderUUID       uuid.UUID         `json:"order_uuid"`
	DocketID        uuid.UUID         `json:"docket_id"`
	EmployeeID      uuid.UUID         `json:"employee_id"`
	Source          int               `json:"source"`
	Total           string            `json:"total"`
	Tip             string            `json:"tip"`
	Tax             string            `json:"tax"`
	Payments        []calc.Allocation `json:"payments"`
	CreatedAt       time.Time         `json:"created_at"`
}

// BookingFinished describes a booking marked complete.
type BookingFinished struct {
	BookingID  uuid.UUID `json:"booking_id"`
	OutletID   uuid.UUID `json:"outlet_id"`
	OrderUUID  uuid.UUID `json:"order_uuid"`
	FinishedAt time.Time `json:"finished_at"`
}

// messageWriter is the part of *kafka.Writer the publisher uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publishes events to a single topic.
type KafkaPublisher struct {
	writer messageWriter
	logger *zap.Logger
	now    func() time.Time
}

// NewKafkaPublisher creates a publisher writing to topic on brokers.
func NewKafkaPublisher(brokers []string, topic string, logger *zap.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		WriteTimeout: 10 * time.Second,
		RequiredAcks: kafka.RequireOne,
		// Publish is synchronous on the payment path; flush each event
		// instead of waiting on the writer's 1s batch timer.
		BatchTimeout: 10 * time.Millisecond,
	}
	return newPublisher(writer, logger)
}

func newPublisher(w messageWriter, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger.Named("events"), now: time.Now}
}

// PublishTransactionCreated publishes a transaction event. On-account
// transactions use their own event type.
func (p *KafkaPublisher) PublishTransactionCreated(ctx context.Context, e TransactionCreated) error {
	eventType := EventTypeTransactionCreated
	key := e.OrderUUID
	if e.DocketID != uuid.Nil {
		eventType = EventTypeOnAccountCharged
		key = e.DocketID
	}
	return p.publish(ctx, eventType, e.OutletID, key, e)
}

// PublishBookingFinished publishes a booking completion.
func (p *KafkaPublisher) PublishBookingFinished(ctx context.Context, e BookingFinished) error {
	return p.publish(ctx, EventTypeBookingFinished, e.OutletID, e.BookingID, e)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType EventType, outletID, key uuid.UUID, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	event := Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		OutletID:  outletID.String(),
		Data:      data,
		Timestamp: p.now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	// Messages for one order (or docket) share a key, so they land on one
	// partition in order.
	msg := kafka.Message{
		Key:   []byte(key.String()),
		Value: value,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(eventType)},
			{Key: "event_id", Value: []byte(event.ID)},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("failed to publish event",
			zap.String("event_id", event.ID),
			zap.String("event_type", string(eventType)),
			zap.Error(err),
		)
		return err
	}

	p.logger.Debug("event published",
		zap.String("event_id", event.ID),
		zap.String("event_type", string(eventType)),
	)
	return nil
}

// Close flushes and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher drops events. Used when no brokers are configured.
type NopPublisher struct{}

func (NopPublisher) PublishTransactionCreated(context.Context, TransactionCreated) error { return nil }
func (NopPublisher) PublishBookingFinished(context.Context, BookingFinished) error { return nil }
