package cmd

import (
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/document"
)

type Config struct {
	HTTPPort    string
	Environment string
	LogLevel    string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr         string
	RedisPassword     string
	DocumentTTL       time.Duration
	DocumentKeyPrefix string

	RabbitMQURL      string
	RabbitMQExchange string

	KafkaBrokers          []string
	KafkaClientID         string
	KafkaOrderStatusTopic string

	OTLPEndpoint    string
	TraceSampleRate float64

	Store document.Store

	WorkerPoolSize  int
	WorkerQueueSize int

	PgNotifyEnabled bool
	PgNotifyChannel string

	RepushSchedule  string
	StuckThreshold  time.Duration
	PurgeSchedule   string
	JobRetention    time.Duration
	RefreshSchedule string

	ShutdownTimeout time.Duration
}

// DSN is the libpq connection string shared by GORM and the pq listener.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
