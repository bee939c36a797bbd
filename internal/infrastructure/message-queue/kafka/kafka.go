package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
	"github.com/segmentio/kafka-go"
)

const (
	maxRetries   = 3
	writeTimeout = 5 * time.Second
)

type messageWriter interface {
	SetWriteDeadline(t time.Time) error
	WriteMessages(msgs ...kafka.Message) (int, error)
}

// Publisher writes KafkaMessages to the leader of the configured partition.
type Publisher struct {
	mu      sync.Mutex
	conn    messageWriter
	backoff time.Duration
}

func CreateKafkaProducer(config *config.Config) (*kafka.Conn, error) {
	conn, err := kafka.DialLeader(context.Background(), "tcp", config.KafkaConfig.BrokerAddress, config.KafkaConfig.BrokerTopic, config.KafkaConfig.BrokerPartition)
	if err != nil {
		return nil, fmt.Errorf("dialing kafka leader: %w", err)
	}

	return conn, nil
}

func CreatePublisher(conn *kafka.Conn) *Publisher {
	return &Publisher{
		conn:    conn,
		backoff: time.Second,
	}
}

func (p *Publisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	jsonMsg, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal Kafka message: %w", err)
	}

	for i := 0; i < maxRetries; i++ {
		err = p.write(kafka.Message{Key: []byte(key), Value: jsonMsg})
		if err == nil {
			return nil
		}
		log.Ctx(ctx).Error().Err(err).Str("component", "Publish").Int("attempt", i+1).Msg("")

		if i == maxRetries-1 {
			break
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("%w: %w", errs.ErrEventPublishFailed, ctx.Err())
		case <-time.After(p.backoff * time.Duration(i+1)):
		}
	}

	return fmt.Errorf("%w after %d attempts: %w", errs.ErrEventPublishFailed, maxRetries, err)
}

func (p *Publisher) write(msg kafka.Message) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}

	_, err := p.conn.WriteMessages(msg)
	return err
}

// DisabledPublisher drops every message. It is used when no broker is
// configured.
type DisabledPublisher struct{}

func (DisabledPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	log.Ctx(ctx).Debug().Str("component", "Publish").Str("event_type", msg.EventType).Str("key", key).Msg("kafka disabled, dropping event")
	return nil
}
