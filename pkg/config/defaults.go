package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "shiftboard"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxRequestSize = 64 * 1024 // 64KB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultEventsEnabled = false
	DefaultEventsTopic   = "shiftboard.events"

	MinJWTSecretLength = 16
)
