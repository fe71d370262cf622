package kafka

import "time"

// Config holds Kafka producer connection parameters.
type Config struct {
	Brokers []string

	// BatchTimeout bounds how long a writer buffers messages before
	// flushing. Zero means the default of 10ms.
	BatchTimeout time.Duration
}
