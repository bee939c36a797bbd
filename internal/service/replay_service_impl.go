package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/config"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/payment-service/internal/repository"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/rs/zerolog/log"
)

type ReplayServiceImpl struct {
	orderRepo      repository.OrderRepository
	deadLetterRepo repository.DeadLetterRepository
	publisher      EventPublisher
	maxAttempts    int
	batchSize      int
	now            func() time.Time
}

func CreateReplayService(orderRepo repository.OrderRepository, deadLetterRepo repository.DeadLetterRepository, publisher EventPublisher, conf config.DeadLetterConfig) ReplayService {
	return &ReplayServiceImpl{
		orderRepo:      orderRepo,
		deadLetterRepo: deadLetterRepo,
		publisher:      publisher,
		maxAttempts:    conf.MaxAttempts,
		batchSize:      conf.BatchSize,
		now:            time.Now,
	}
}

// ReplayDeadLetters re-applies pending dead-lettered status updates, oldest
// first. A letter whose order was written after the update failed is
// resolved without applying it. Letters that keep failing stop being picked
// up after maxAttempts.
func (s *ReplayServiceImpl) ReplayDeadLetters(ctx context.Context) (err error) {
	log.Info().Str("component", "ReplayDeadLetters").Msg("replay starts")

	deadLetters, err := s.deadLetterRepo.GetPendingDeadLetters(ctx, s.maxAttempts, s.batchSize)
	if err != nil {
		return fmt.Errorf("loading pending dead letters: %w", err)
	}

	var replayed int
	for _, deadLetter := range deadLetters {
		updateErr := s.orderRepo.ReplayOrderPaymentStatus(ctx, deadLetter.MerchantReference, deadLetter.TargetStatus, deadLetter.CreatedAt)
		now := s.now().Unix()

		if errors.Is(updateErr, errs.ErrOrderStatusSuperseded) {
			log.Warn().Str("component", "ReplayDeadLetters").Str("dead_letter_id", deadLetter.ID).Str("merchant_reference", deadLetter.MerchantReference).Str("status", string(deadLetter.TargetStatus)).Msg("order changed since the update failed, dropping dead letter")
			if err := s.deadLetterRepo.MarkDeadLetterResolved(ctx, deadLetter.ID, now); err != nil {
				log.Error().Err(err).Str("component", "ReplayDeadLetters").Str("dead_letter_id", deadLetter.ID).Msg("")
				continue
			}
			metrics.DeadLetters.WithLabelValues("superseded").Inc()
			continue
		}

		if updateErr != nil {
			metrics.DeadLetters.WithLabelValues("retry_failed").Inc()
			if err := s.deadLetterRepo.IncrementDeadLetterAttempt(ctx, deadLetter.ID, updateErr.Error(), now); err != nil {
				log.Error().Err(err).Str("component", "ReplayDeadLetters").Str("dead_letter_id", deadLetter.ID).Msg("")
			}
			if deadLetter.Attempts+1 >= s.maxAttempts {
				log.Error().Err(updateErr).Str("component", "ReplayDeadLetters").Str("dead_letter_id", deadLetter.ID).Str("merchant_reference", deadLetter.MerchantReference).Msg("dead letter exhausted its replay attempts")
			}
			continue
		}

		if err := s.deadLetterRepo.MarkDeadLetterResolved(ctx, deadLetter.ID, now); err != nil {
			log.Error().Err(err).Str("component", "ReplayDeadLetters").Str("dead_letter_id", deadLetter.ID).Msg("")
			continue
		}

		metrics.DeadLetters.WithLabelValues("replayed").Inc()
		replayed++

		publishStatusUpdate(ctx, s.publisher, dto.OrderPaymentStatusUpdate{
			MerchantReference: deadLetter.MerchantReference,
			PSPReference:      deadLetter.PSPReference,
			EventCode:         deadLetter.EventCode,
			Status:            string(deadLetter.TargetStatus),
		})
	}

	log.Info().Str("component", "ReplayDeadLetters").Int("pending", len(deadLetters)).Int("replayed", replayed).Msg("replay ends")

	return nil
}
