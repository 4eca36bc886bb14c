package kafka

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/example/reseller-console/internal/events"
	"github.com/segmentio/kafka-go"
)

// Publisher is what the domain services see; it lets tests record
// published events without a broker.
type Publisher interface {
	Publish(ctx context.Context, key string, event events.Event) error
}

type Producer struct {
	writer *kafka.Writer
}

func NewProducer(brokers []string, topic string) *Producer {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &Producer{writer: writer}
}

func (p *Producer) Publish(ctx context.Context, key string, event events.Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(key),
		Value: data,
		Time:  time.Now(),
	})
}

func (p *Producer) Close() error {
	return p.writer.Close()
}

// PublishEvent builds an envelope for data and publishes it, logging
// instead of failing the caller on broker errors. Operational events are
// best-effort; the state change they describe has already committed.
func PublishEvent(ctx context.Context, pub Publisher, eventType string, aggregateID int64, data any) {
	if pub == nil {
		return
	}
	event, err := events.New(eventType, data)
	if err != nil {
		log.Printf("[Events] Failed to encode %s: %v", eventType, err)
		return
	}
	if err := pub.Publish(ctx, strconv.FormatInt(aggregateID, 10), event); err != nil {
		log.Printf("[Events] Failed to publish %s: %v", eventType, err)
	}
}
