package kafka

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Message struct {
	Key       string // partition key, e.g. doctor id or month key
	Value     []byte // JSON payload
	Headers   map[string]string
	Topic     string
	Timestamp time.Time
}

const (
	HeaderEventID       = "event-id"
	HeaderEventType     = "event-type"
	HeaderCorrelationID = "correlation-id"
	HeaderSchemaVersion = "schema-version"
	HeaderSource        = "source"
	HeaderTimestamp     = "timestamp"
	HeaderOriginalTopic = "original-topic"
	HeaderDLQError      = "dlq-error"
	HeaderDLQTimestamp  = "dlq-timestamp"
)

// MessageBuilder assembles a Message. Encoding errors are kept and returned
// from Build.
type MessageBuilder struct {
	msg Message
	err error
}

func NewMessage() *MessageBuilder {
	return &MessageBuilder{
		msg: Message{
			Headers:   make(map[string]string),
			Timestamp: time.Now(),
		},
	}
}

func (mb *MessageBuilder) WithKey(key string) *MessageBuilder {
	mb.msg.Key = key
	return mb
}

func (mb *MessageBuilder) WithValue(value any) *MessageBuilder {
	data, err := json.Marshal(value)
	if err != nil {
		mb.err = fmt.Errorf("%w: %v", ErrEncodeValue, err)
		return mb
	}
	mb.msg.Value = data
	return mb
}

func (mb *MessageBuilder) WithTimestamp(t time.Time) *MessageBuilder {
	mb.msg.Timestamp = t
	return mb
}

func (mb *MessageBuilder) WithHeader(key, value string) *MessageBuilder {
	mb.msg.Headers[key] = value
	return mb
}

func (mb *MessageBuilder) WithEventType(eventType string) *MessageBuilder {
	return mb.WithHeader(HeaderEventType, eventType)
}

// WithCorrelationID is a no-op for an empty id.
func (mb *MessageBuilder) WithCorrelationID(correlationID string) *MessageBuilder {
	if correlationID == "" {
		return mb
	}
	return mb.WithHeader(HeaderCorrelationID, correlationID)
}

func (mb *MessageBuilder) WithSchemaVersion(version string) *MessageBuilder {
	return mb.WithHeader(HeaderSchemaVersion, version)
}

func (mb *MessageBuilder) WithSource(source string) *MessageBuilder {
	return mb.WithHeader(HeaderSource, source)
}

func (mb *MessageBuilder) Build() (Message, error) {
	if mb.err != nil {
		return Message{}, mb.err
	}
	if mb.msg.Headers[HeaderEventID] == "" {
		mb.msg.Headers[HeaderEventID] = uuid.New().String()
	}
	if mb.msg.Headers[HeaderTimestamp] == "" {
		mb.msg.Headers[HeaderTimestamp] = mb.msg.Timestamp.UTC().Format(time.RFC3339)
	}
	return mb.msg, nil
}

func (m *Message) EventID() string {
	return m.Headers[HeaderEventID]
}

func (m *Message) EventType() string {
	return m.Headers[HeaderEventType]
}

func (m *Message) CorrelationID() string {
	return m.Headers[HeaderCorrelationID]
}
