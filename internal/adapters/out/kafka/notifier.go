// Package kafka publishes customer notifications to a Kafka topic. A mail
// or push relay downstream consumes the topic and does the actual delivery.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/twmb/franz-go/pkg/kgo"
)

const kindHeader = "notification-kind"

// producer is the part of *kgo.Client the notifier needs.
type producer interface {
	ProduceSync(ctx context.Context, rs ...*kgo.Record) kgo.ProduceResults
}

// NotificationMessage is the JSON value of every published record.
type NotificationMessage struct {
	OrderID    string    `json:"orderId"`
	Kind       string    `json:"kind"`
	Recipient  string    `json:"recipient"`
	Subject    string    `json:"subject"`
	Body       string    `json:"body"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Notifier implements ports.Notifier over a franz-go client. Records are
// keyed by order id so the notifications of one order stay in one partition.
type Notifier struct {
	client   *kgo.Client
	producer producer
	topic    string
	now      func() time.Time
}

// NewNotifier connects a producer to brokers. The client is lazy: no broker
// needs to be reachable until the first Send.
func NewNotifier(brokers []string, topic string) (*Notifier, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.DefaultProduceTopic(topic),
		kgo.ProduceRequestTimeout(10*time.Second),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ClientID("fulfillment"),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	n := newNotifier(client, topic)
	n.client = client
	return n, nil
}

func newNotifier(p producer, topic string) *Notifier {
	return &Notifier{
		producer: p,
		topic:    topic,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Send publishes the notification and waits for the broker acknowledgement.
// Every failure wraps ports.ErrDispatch.
func (n *Notifier) Send(ctx context.Context, notification order.Notification) error {
	value, err := json.Marshal(NotificationMessage{
		OrderID:    notification.OrderID.String(),
		Kind:       string(notification.Kind),
		Recipient:  notification.Recipient,
		Subject:    notification.Subject,
		Body:       notification.Body,
		OccurredAt: n.now(),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", ports.ErrDispatch, err)
	}

	record := &kgo.Record{
		Topic: n.topic,
		Key:   []byte(notification.OrderID.String()),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: kindHeader, Value: []byte(notification.Kind)},
		},
	}

	if err = n.producer.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("%w: order %s: %w", ports.ErrDispatch, notification.OrderID, err)
	}

	return nil
}

// Close releases the client. It is a no-op for notifiers built without one.
func (n *Notifier) Close() {
	if n.client != nil {
		n.client.Close()
	}
}
