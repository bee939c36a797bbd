package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultReplayInterval    = 30 * time.Second
	defaultReplayMaxAttempts = 10
	defaultReplayBatchSize   = 100
	defaultAdyenEnvironment  = "TEST"
	defaultServiceName       = "payment-service"
	defaultEnvironment       = "development"
)

type Config struct {
	ServiceName      string
	Environment      string
	ServicePort      string
	MetricsPort      string
	GRPCPort         string
	PostgreSQLConfig PostgreSQLConfig
	AdyenConfig      AdyenConfig
	KafkaConfig      KafkaConfig
	TracingConfig    TracingConfig
	DeadLetterConfig DeadLetterConfig
}

type PostgreSQLConfig struct {
	DBHost     string
	DBPort     string
	DBName     string
	DBUsername string
	DBPassword string
}

// AdyenConfig holds the payment provider credentials. The webhook only reads
// the HMAC key and the basic auth pair; the rest belongs to the Checkout API
// client and the storefront.
type AdyenConfig struct {
	HMACKey         string
	HMACRequired    bool
	WebhookUsername string
	WebhookPassword string
	APIKey          string
	Environment     string
	LiveURLPrefix   string
	MerchantAccount string
	ClientKey       string
}

type KafkaConfig struct {
	BrokerAddress   string
	BrokerTopic     string
	BrokerPartition int
}

type TracingConfig struct {
	CollectorHost string
}

type DeadLetterConfig struct {
	ReplayInterval time.Duration
	MaxAttempts    int
	BatchSize      int
}

func CreateNewConfig() *Config {
	godotenv.Load(".env")

	conf := Config{
		ServiceName: getEnvOrDefault("SERVICE_NAME", defaultServiceName),
		Environment: getEnvOrDefault("ENVIRONMENT", defaultEnvironment),
		ServicePort: os.Getenv("SERVICE_PORT"),
		MetricsPort: os.Getenv("METRICS_PORT"),
		GRPCPort:    os.Getenv("GRPC_PORT"),
		PostgreSQLConfig: PostgreSQLConfig{
			DBHost:     os.Getenv("DB_HOST"),
			DBName:     os.Getenv("DB_NAME"),
			DBPort:     os.Getenv("DB_PORT"),
			DBUsername: os.Getenv("DB_USERNAME"),
			DBPassword: os.Getenv("DB_PASSWORD"),
		},
		AdyenConfig: AdyenConfig{
			HMACKey:         os.Getenv("ADYEN_HMAC_KEY"),
			HMACRequired:    strings.EqualFold(os.Getenv("ADYEN_HMAC_REQUIRED"), "true"),
			WebhookUsername: os.Getenv("ADYEN_WEBHOOK_USERNAME"),
			WebhookPassword: os.Getenv("ADYEN_WEBHOOK_PASSWORD"),
			APIKey:          os.Getenv("ADYEN_API_KEY"),
			Environment:     strings.ToUpper(getEnvOrDefault("ADYEN_ENVIRONMENT", defaultAdyenEnvironment)),
			LiveURLPrefix:   os.Getenv("ADYEN_LIVE_URL_PREFIX"),
			MerchantAccount: os.Getenv("ADYEN_MERCHANT_ACCOUNT"),
			ClientKey:       os.Getenv("ADYEN_CLIENT_KEY"),
		},
		KafkaConfig: KafkaConfig{
			BrokerAddress: os.Getenv("BROKER_ADDRESS"),
			BrokerTopic:   os.Getenv("BROKER_TOPIC"),
		},
		TracingConfig: TracingConfig{
			CollectorHost: os.Getenv("COLLECTOR_HOST"),
		},
		DeadLetterConfig: DeadLetterConfig{
			ReplayInterval: defaultReplayInterval,
			MaxAttempts:    defaultReplayMaxAttempts,
			BatchSize:      defaultReplayBatchSize,
		},
	}

	brokerPartition, err := strconv.Atoi(os.Getenv("BROKER_PARTITION"))
	if err == nil {
		conf.KafkaConfig.BrokerPartition = brokerPartition
	}

	replayInterval, err := time.ParseDuration(os.Getenv("DEAD_LETTER_REPLAY_INTERVAL"))
	if err == nil && replayInterval > 0 {
		conf.DeadLetterConfig.ReplayInterval = replayInterval
	}

	maxAttempts, err := strconv.Atoi(os.Getenv("DEAD_LETTER_MAX_ATTEMPTS"))
	if err == nil && maxAttempts > 0 {
		conf.DeadLetterConfig.MaxAttempts = maxAttempts
	}

	return &conf
}

func getEnvOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
