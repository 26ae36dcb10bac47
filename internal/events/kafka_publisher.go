package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fjod/orderdesk/pkg/circuitbreaker"
	"github.com/fjod/orderdesk/pkg/logger"
	"github.com/segmentio/kafka-go"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"
)

const defaultPublishTimeout = 5 * time.Second

// messageWriter is the subset of *kafka.Writer the publisher needs
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes order events to a Kafka topic. Writes go through a
// circuit breaker so a dead broker fails fast instead of stalling checkout.
type KafkaPublisher struct {
	writer  messageWriter
	breaker *gobreaker.CircuitBreaker[struct{}]
	timeout time.Duration
	logger  *zap.Logger
}

func NewKafkaPublisher(topic string, brokers []string, l *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.LeastBytes{},
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, circuitbreaker.DefaultConfig("kafka-"+topic), l)
}

func newKafkaPublisher(w messageWriter, cfg circuitbreaker.Config, l *zap.Logger) *KafkaPublisher {
	l = logger.OrNop(l)
	return &KafkaPublisher{
		writer:  w,
		breaker: circuitbreaker.New[struct{}](cfg, l),
		timeout: defaultPublishTimeout,
		logger:  l,
	}
}

func (p *KafkaPublisher) PublishOrderPlaced(ctx context.Context, event OrderPlaced) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal order event failed: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OrderID), // order_id for ordering
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(EventTypeOrderPlaced)},
			{Key: "event_id", Value: []byte(event.EventID)},
		},
	}

	_, err = p.breaker.Execute(func() (struct{}, error) {
		writeCtx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return struct{}{}, p.writer.WriteMessages(writeCtx, msg)
	})
	if err != nil {
		return fmt.Errorf("publish %s for %s failed: %w", EventTypeOrderPlaced, event.OrderID, err)
	}

	p.logger.Debug("order event published",
		zap.String("order_id", event.OrderID),
		zap.String("event_id", event.EventID),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
