package messaging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var consumerTracer = otel.Tracer("messaging/consumer")

const (
	defaultMaxAttempts = 3
	defaultRetryDelay  = 500 * time.Millisecond
)

// HandlerFunc processes one message payload.
type HandlerFunc func(ctx context.Context, payload []byte) error

type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Consumer delivers a topic to a handler inside a consumer group. A message
// is committed once the handler accepts it. Failed deliveries are retried
// with a linear backoff; when retries run out Consume stops without
// committing so the message is redelivered after a restart.
type Consumer struct {
	reader      messageReader
	topic       string
	groupID     string
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

type consumerSettings struct {
	reader      kafka.ReaderConfig
	maxAttempts int
	retryDelay  time.Duration
	logger      *slog.Logger
}

type ConsumerOption func(*consumerSettings)

// WithStartOffset sets where a group with no committed offset begins,
// kafka.FirstOffset or kafka.LastOffset.
func WithStartOffset(offset int64) ConsumerOption {
	return func(s *consumerSettings) {
		s.reader.StartOffset = offset
	}
}

// WithRetry sets how many times a message is handed to the handler and the
// base delay between attempts.
func WithRetry(maxAttempts int, delay time.Duration) ConsumerOption {
	return func(s *consumerSettings) {
		if maxAttempts > 0 {
			s.maxAttempts = maxAttempts
		}
		s.retryDelay = delay
	}
}

func WithLogger(logger *slog.Logger) ConsumerOption {
	return func(s *consumerSettings) {
		s.logger = logger
	}
}

func NewConsumer(brokers []string, topic, groupID string, opts ...ConsumerOption) *Consumer {
	s := consumerSettings{
		reader: kafka.ReaderConfig{
			Brokers: brokers,
			Topic:   topic,
			GroupID: groupID,
		},
		maxAttempts: defaultMaxAttempts,
		retryDelay:  defaultRetryDelay,
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&s)
	}

	return &Consumer{
		reader:      kafka.NewReader(s.reader),
		topic:       topic,
		groupID:     groupID,
		maxAttempts: s.maxAttempts,
		retryDelay:  s.retryDelay,
		logger:      s.logger,
	}
}

// Consume runs until ctx is cancelled, the reader fails, or a message
// exhausts its retries.
func (c *Consumer) Consume(ctx context.Context, handler HandlerFunc) error {
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			return fmt.Errorf("fetch from %s: %w", c.topic, err)
		}

		if err := c.deliver(ctx, msg, handler); err != nil {
			return err
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			return fmt.Errorf("commit offset %d on %s: %w", msg.Offset, c.topic, err)
		}
	}
}

func (c *Consumer) deliver(ctx context.Context, msg kafka.Message, handler HandlerFunc) error {
	var err error
	for attempt := 1; attempt <= c.maxAttempts; attempt++ {
		if err = c.process(ctx, msg, attempt, handler); err == nil {
			return nil
		}

		c.logger.Warn("message handler failed",
			"error", err,
			"topic", c.topic,
			"partition", msg.Partition,
			"offset", msg.Offset,
			"attempt", attempt,
		)

		if attempt == c.maxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Duration(attempt) * c.retryDelay):
		}
	}
	return fmt.Errorf("handle offset %d on %s after %d attempts: %w", msg.Offset, c.topic, c.maxAttempts, err)
}

func (c *Consumer) process(ctx context.Context, msg kafka.Message, attempt int, handler HandlerFunc) error {
	parentCtx := otel.GetTextMapPropagator().Extract(ctx, carrierFor(&msg))

	spanCtx, span := consumerTracer.Start(parentCtx, c.topic+" process",
		trace.WithSpanKind(trace.SpanKindConsumer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("process"),
			semconv.MessagingOperationTypeDeliver,
			semconv.MessagingDestinationName(c.topic),
			semconv.MessagingKafkaConsumerGroup(c.groupID),
			semconv.MessagingKafkaMessageOffset(int(msg.Offset)),
			semconv.MessagingDestinationPartitionID(strconv.Itoa(msg.Partition)),
			semconv.MessagingKafkaMessageKey(string(msg.Key)),
			attribute.Int("messaging.delivery.attempt", attempt),
		),
	)
	defer span.End()

	if err := handler(spanCtx, msg.Value); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

func (c *Consumer) Close() error {
	return c.reader.Close()
}
