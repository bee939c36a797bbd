package kafka

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

const DefaultQueueSize = 1024

var errPublisherClosed = errors.New("publisher closed")

type messagePublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

type queuedMessage struct {
	ctx context.Context
	key string
	msg dto.KafkaMessage
}

// AsyncPublisher queues messages and hands them to the wrapped publisher on
// its own goroutine, so callers never wait on the broker. A full queue drops
// the message.
type AsyncPublisher struct {
	next  messagePublisher
	queue chan queuedMessage
	done  chan struct{}

	mu     sync.RWMutex
	closed bool
}

func CreateAsyncPublisher(next messagePublisher, queueSize int) *AsyncPublisher {
	if queueSize <= 0 {
		queueSize = DefaultQueueSize
	}

	p := &AsyncPublisher{
		next:  next,
		queue: make(chan queuedMessage, queueSize),
		done:  make(chan struct{}),
	}
	go p.run()

	return p
}

func (p *AsyncPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.closed {
		return fmt.Errorf("%w: %w", errs.ErrEventPublishFailed, errPublisherClosed)
	}

	select {
	case p.queue <- queuedMessage{ctx: context.WithoutCancel(ctx), key: key, msg: msg}:
		return nil
	default:
		return fmt.Errorf("%w: queue full", errs.ErrEventPublishFailed)
	}
}

func (p *AsyncPublisher) run() {
	defer close(p.done)

	for m := range p.queue {
		if err := p.next.Publish(m.ctx, m.key, m.msg); err != nil {
			log.Ctx(m.ctx).Error().Err(err).Str("component", "AsyncPublisher").Str("key", m.key).Str("event_type", m.msg.EventType).Msg("event dropped")
		}
	}
}

// Close stops accepting messages and waits up to timeout for the queued ones
// to be handed over.
func (p *AsyncPublisher) Close(timeout time.Duration) error {
	p.mu.Lock()
	if !p.closed {
		p.closed = true
		close(p.queue)
	}
	p.mu.Unlock()

	select {
	case <-p.done:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("%w: %d events still queued", errs.ErrEventPublishFailed, len(p.queue))
	}
}
