package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

var producerTracer = otel.Tracer("messaging/producer")

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes JSON events to a single topic.
type Producer struct {
	writer messageWriter
	topic  string
}

type ProducerOption func(*kafka.Writer)

// WithCompression compresses message batches with codec.
func WithCompression(codec kafka.Compression) ProducerOption {
	return func(w *kafka.Writer) {
		w.Compression = codec
	}
}

func NewProducer(brokers []string, topic string, opts ...ProducerOption) *Producer {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
		BatchTimeout:           50 * time.Millisecond,
		RequiredAcks:           kafka.RequireOne,
	}
	for _, opt := range opts {
		opt(w)
	}
	return &Producer{writer: w, topic: topic}
}

// Publish writes event as JSON under key, so every event about one document
// lands on the same partition. The active trace context travels in the
// message headers.
func (p *Producer) Publish(ctx context.Context, key string, event any) error {
	msg, err := newMessage(p.topic, key, event)
	if err != nil {
		return fmt.Errorf("encode event for %s: %w", p.topic, err)
	}

	ctx, span := producerTracer.Start(ctx, p.topic+" publish",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			semconv.MessagingSystemKafka,
			semconv.MessagingOperationName("publish"),
			semconv.MessagingOperationTypePublish,
			semconv.MessagingDestinationName(p.topic),
			semconv.MessagingKafkaMessageKey(key),
			semconv.MessagingMessageBodySize(len(msg.Value)),
		),
	)
	defer span.End()

	otel.GetTextMapPropagator().Inject(ctx, carrierFor(&msg))

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("publish to %s: %w", p.topic, err)
	}
	return nil
}

func newMessage(topic, key string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(key),
		Value: data,
		Headers: []kafka.Header{
			{Key: contentTypeHeader, Value: []byte("application/json")},
			{Key: eventTypeHeader, Value: []byte(topic)},
		},
	}, nil
}

func (p *Producer) Close() error {
	return p.writer.Close()
}
