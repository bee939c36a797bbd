package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCreateNewConfig(t *testing.T) {
	t.Setenv("SERVICE_PORT", "8080")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("ADYEN_HMAC_KEY", "testkey")
	t.Setenv("ADYEN_HMAC_REQUIRED", "TRUE")
	t.Setenv("ADYEN_WEBHOOK_USERNAME", "adyen")
	t.Setenv("ADYEN_WEBHOOK_PASSWORD", "s3cret")
	t.Setenv("ADYEN_ENVIRONMENT", "live")
	t.Setenv("BROKER_PARTITION", "2")
	t.Setenv("DEAD_LETTER_REPLAY_INTERVAL", "1m")
	t.Setenv("DEAD_LETTER_MAX_ATTEMPTS", "3")

	conf := CreateNewConfig()

	assert.Equal(t, "8080", conf.ServicePort)
	assert.Equal(t, "payment-service", conf.ServiceName)
	assert.Equal(t, "production", conf.Environment)
	assert.Equal(t, "testkey", conf.AdyenConfig.HMACKey)
	assert.True(t, conf.AdyenConfig.HMACRequired)
	assert.Equal(t, "adyen", conf.AdyenConfig.WebhookUsername)
	assert.Equal(t, "s3cret", conf.AdyenConfig.WebhookPassword)
	assert.Equal(t, "LIVE", conf.AdyenConfig.Environment)
	assert.Equal(t, 2, conf.KafkaConfig.BrokerPartition)
	assert.Equal(t, time.Minute, conf.DeadLetterConfig.ReplayInterval)
	assert.Equal(t, 3, conf.DeadLetterConfig.MaxAttempts)
}

func TestCreateNewConfig_Defaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "")
	t.Setenv("ADYEN_ENVIRONMENT", "")
	t.Setenv("ADYEN_HMAC_REQUIRED", "")
	t.Setenv("BROKER_PARTITION", "not-a-number")
	t.Setenv("DEAD_LETTER_REPLAY_INTERVAL", "")
	t.Setenv("DEAD_LETTER_MAX_ATTEMPTS", "-1")

	conf := CreateNewConfig()

	assert.Equal(t, "development", conf.Environment)
	assert.Equal(t, "TEST", conf.AdyenConfig.Environment)
	assert.False(t, conf.AdyenConfig.HMACRequired)
	assert.Equal(t, 0, conf.KafkaConfig.BrokerPartition)
	assert.Equal(t, 30*time.Second, conf.DeadLetterConfig.ReplayInterval)
	assert.Equal(t, 10, conf.DeadLetterConfig.MaxAttempts)
	assert.Equal(t, 100, conf.DeadLetterConfig.BatchSize)
}
