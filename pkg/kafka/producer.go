package kafka

import (
	"context"
	"fmt"
	"shiftboard/pkg/logger"
	"sync"
	"time"

	kafka_config "shiftboard/pkg/kafka/config"

	"github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/compress"
)

// MessageWriter is the part of *kafka.Writer the producer needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer publishes messages through a middleware chain to one topic, with
// an optional dead letter topic for failed writes.
type Producer struct {
	writer       MessageWriter
	dlqWriter    MessageWriter
	topic        string
	writeTimeout time.Duration
	middleware   []ProducerMiddleware
	closed       bool
	mu           sync.RWMutex
}

type ProducerMiddleware func(ctx context.Context, msg Message, next func(ctx context.Context, msg Message) error) error

func NewProducer(cfg *kafka_config.Config, topic string, log *logger.Logger) (*Producer, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("at least one broker is required")
	}

	if topic == "" {
		return nil, fmt.Errorf("topic cannot be empty")
	}

	compression := compressionFor(cfg.ProducerCompression)
	errorLogger := kafka.LoggerFunc(func(msg string, args ...any) {
		log.Error("kafka writer error", "detail", fmt.Sprintf(msg, args...), "topic", topic)
	})

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: requiredAcksFor(cfg.ProducerRequireAcks),
		Compression:  compression,
		MaxAttempts:  cfg.ProducerMaxAttempts,
		BatchTimeout: cfg.ProducerBatchTimeout,
		WriteTimeout: cfg.ProducerWriteTimeout,
		Async:        cfg.ProducerAsync,
		Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
		ErrorLogger:  errorLogger,
	}

	var dlqWriter MessageWriter
	if cfg.DLQTopic != "" {
		dlqWriter = &kafka.Writer{
			Addr:         kafka.TCP(cfg.Brokers...),
			Topic:        cfg.DLQTopic,
			Balancer:     &kafka.Hash{},
			RequiredAcks: kafka.RequireAll,
			Compression:  compression,
			MaxAttempts:  3,
			Logger:       kafka.LoggerFunc(func(msg string, args ...any) {}),
			ErrorLogger:  errorLogger,
		}
	}

	return NewProducerWithWriter(writer, dlqWriter, topic, cfg.ProducerWriteTimeout), nil
}

// NewProducerWithWriter builds a producer over an existing writer. dlqWriter
// may be nil.
func NewProducerWithWriter(writer, dlqWriter MessageWriter, topic string, writeTimeout time.Duration) *Producer {
	return &Producer{
		writer:       writer,
		dlqWriter:    dlqWriter,
		topic:        topic,
		writeTimeout: writeTimeout,
		middleware:   make([]ProducerMiddleware, 0),
	}
}

func compressionFor(name string) compress.Compression {
	switch name {
	case "none":
		return compress.None
	case "gzip":
		return compress.Gzip
	case "lz4":
		return compress.Lz4
	case "zstd":
		return compress.Zstd
	default:
		return compress.Snappy
	}
}

func requiredAcksFor(acks int) kafka.RequiredAcks {
	switch acks {
	case 0:
		return kafka.RequireNone
	case 1:
		return kafka.RequireOne
	default:
		return kafka.RequireAll
	}
}

func (p *Producer) Topic() string {
	return p.topic
}

// Use appends middleware. The first registered runs outermost.
func (p *Producer) Use(middleware ProducerMiddleware) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.middleware = append(p.middleware, middleware)
}

func (p *Producer) Publish(ctx context.Context, msg Message) error {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return ErrProducerClosed
	}
	chain := make([]ProducerMiddleware, len(p.middleware))
	copy(chain, p.middleware)
	p.mu.RUnlock()

	if msg.Key == "" {
		return ErrEmptyKey
	}
	if len(msg.Value) == 0 {
		return ErrEmptyValue
	}
	if msg.Topic == "" {
		msg.Topic = p.topic
	}

	handler := p.publishInternal
	for i := len(chain) - 1; i >= 0; i-- {
		middleware := chain[i]
		next := handler
		handler = func(ctx context.Context, m Message) error {
			return middleware(ctx, m, next)
		}
	}

	return handler(ctx, msg)
}

func (p *Producer) publishInternal(ctx context.Context, msg Message) error {
	if p.writeTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.writeTimeout)
		defer cancel()
	}

	err := p.writer.WriteMessages(ctx, toKafkaMessage(msg, msg.Timestamp))
	if err != nil {
		if p.dlqWriter != nil {
			if dlqErr := p.sendToDLQ(ctx, msg, err); dlqErr != nil {
				return fmt.Errorf("failed to send to DLQ: %v (original error: %w)", dlqErr, err)
			}
		}
		return err
	}

	return nil
}

func (p *Producer) sendToDLQ(ctx context.Context, msg Message, originalErr error) error {
	headers := make(map[string]string, len(msg.Headers)+3)
	for k, v := range msg.Headers {
		headers[k] = v
	}
	headers[HeaderOriginalTopic] = p.topic
	headers[HeaderDLQError] = originalErr.Error()
	headers[HeaderDLQTimestamp] = time.Now().UTC().Format(time.RFC3339)
	msg.Headers = headers

	return p.dlqWriter.WriteMessages(ctx, toKafkaMessage(msg, time.Now()))
}

func toKafkaMessage(msg Message, at time.Time) kafka.Message {
	kafkaMsg := kafka.Message{
		Key:   []byte(msg.Key),
		Value: msg.Value,
		Time:  at,
	}
	for k, v := range msg.Headers {
		kafkaMsg.Headers = append(kafkaMsg.Headers, kafka.Header{
			Key:   k,
			Value: []byte(v),
		})
	}
	return kafkaMsg
}

func (p *Producer) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return nil
	}

	p.closed = true

	var err error
	if p.writer != nil {
		err = p.writer.Close()
	}

	if p.dlqWriter != nil {
		dlqErr := p.dlqWriter.Close()
		if err == nil {
			err = dlqErr
		}
	}

	return err
}
