package kafka_config

import "time"

const (
	DefaultKafkaBrokers = "localhost:9092"

	DefaultProducerMaxAttempts  = 3
	DefaultProducerBatchTimeout = 10 * time.Millisecond
	DefaultProducerRequireAcks  = -1
	DefaultProducerCompression  = "snappy"
	DefaultProducerAsync        = false
	DefaultProducerWriteTimeout = 2 * time.Second

	DefaultEnableMiddleware = true
)
