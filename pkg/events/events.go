package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/Kr4ToS117/Site-Location/pkg/logger"
)

type Publisher interface {
	Publish(ctx context.Context, subject string, data interface{}) error
	Close() error
}

type Subscriber interface {
	Subscribe(subject string, handler func(msg *Message)) error
	Close() error
}

type EventBus interface {
	Publisher
	Subscriber
}

type Message struct {
	Subject   string
	Data      []byte
	Timestamp time.Time
}

type NATSEventBus struct {
	conn *nats.Conn
}

func NewNATSEventBus(url string) (*NATSEventBus, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSEventBus{conn: conn}, nil
}

func (n *NATSEventBus) Publish(ctx context.Context, subject string, data interface{}) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal event data: %w", err)
	}

	logger.DebugContext(ctx, "Publishing event", "subject", subject, "data", string(payload))

	return n.conn.Publish(subject, payload)
}

func (n *NATSEventBus) Subscribe(subject string, handler func(msg *Message)) error {
	_, err := n.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(&Message{
			Subject:   msg.Subject,
			Data:      msg.Data,
			Timestamp: time.Now(),
		})
	})
	return err
}

func (n *NATSEventBus) Close() error {
	n.conn.Close()
	return nil
}

// NoopEventBus stands in when no NATS_URL is configured. Publishes are
// dropped silently; the booking flow does not depend on them.
type NoopEventBus struct{}

func (NoopEventBus) Publish(context.Context, string, interface{}) error { return nil }
func (NoopEventBus) Subscribe(string, func(msg *Message)) error         { return nil }
func (NoopEventBus) Close() error                                       { return nil }

var (
	_ EventBus = (*NATSEventBus)(nil)
	_ EventBus = NoopEventBus{}
)

// Subjects
const (
	BookingCreated  = "booking.created"
	BookingCanceled = "booking.canceled"
	BookingPaid     = "booking.paid"

	PaymentIntentCreated = "payment.intent.created"
)

// Payloads
type BookingCreatedEvent struct {
	BookingID  string    `json:"booking_id"`
	GuestEmail string    `json:"guest_email"`
	GuestName  string    `json:"guest_name"`
	CheckIn    string    `json:"check_in"`
	CheckOut   string    `json:"check_out"`
	Guests     int       `json:"guests"`
	TotalPrice string    `json:"total_price"`
	CreatedAt  time.Time `json:"created_at"`
}

type BookingCanceledEvent struct {
	BookingID  string    `json:"booking_id"`
	CanceledAt time.Time `json:"canceled_at"`
}

type BookingPaidEvent struct {
	BookingID string    `json:"booking_id"`
	PaidAt    time.Time `json:"paid_at"`
}

type PaymentIntentCreatedEvent struct {
	BookingID    string `json:"booking_id,omitempty"`
	IntentID     string `json:"intent_id"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	ClientSecret string `json:"client_secret,omitempty"`
}
