package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/internal/infrastructure/metrics"
	"github.com/alimikegami/point-of-sales/payment-service/internal/repository"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/utils"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type ItemResult string

const (
	ItemDispatched ItemResult = "dispatched"
	ItemIgnored    ItemResult = "ignored"
	ItemSkipped    ItemResult = "skipped"
	ItemFailed     ItemResult = "failed"
)

// ItemOutcome records what happened to one item of a notification batch.
type ItemOutcome struct {
	Index             int
	PSPReference      string
	MerchantReference string
	EventCode         string
	Result            ItemResult
	Status            domain.PaymentStatus
	Reason            string
}

type WebhookServiceImpl struct {
	orderRepo      repository.OrderRepository
	deadLetterRepo repository.DeadLetterRepository
	publisher      EventPublisher
	signer         *HMACSigner
	handlers       map[domain.EventCode]eventHandler
	now            func() time.Time
}

func CreateWebhookService(orderRepo repository.OrderRepository, deadLetterRepo repository.DeadLetterRepository, publisher EventPublisher, signer *HMACSigner) WebhookService {
	return &WebhookServiceImpl{
		orderRepo:      orderRepo,
		deadLetterRepo: deadLetterRepo,
		publisher:      publisher,
		signer:         signer,
		handlers:       defaultEventHandlers(),
		now:            time.Now,
	}
}

// ProcessNotifications handles the items of a batch in the order received.
// A failing item never stops the items after it.
func (s *WebhookServiceImpl) ProcessNotifications(ctx context.Context, req dto.NotificationRequest) (outcomes []ItemOutcome) {
	// The sender hanging up must not abandon half a batch.
	ctx = context.WithoutCancel(ctx)

	outcomes = make([]ItemOutcome, 0, len(req.NotificationItems))
	for i, wrapper := range req.NotificationItems {
		outcome := s.processItem(ctx, i, wrapper)
		metrics.NotificationItems.WithLabelValues(s.eventCodeLabel(outcome.EventCode), string(outcome.Result)).Inc()
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// eventCodeLabel keeps the metric label set bounded: codes without a handler
// are counted as "other".
func (s *WebhookServiceImpl) eventCodeLabel(eventCode string) string {
	if _, ok := s.handlers[domain.EventCode(eventCode)]; !ok {
		return metrics.OtherEventCode
	}
	return eventCode
}

func (s *WebhookServiceImpl) processItem(ctx context.Context, index int, wrapper dto.NotificationItemWrapper) (outcome ItemOutcome) {
	outcome.Index = index
	logger := log.Ctx(ctx).With().Str("component", "ProcessNotifications").Int("index", index).Logger()

	defer func() {
		if r := recover(); r != nil {
			outcome.Result = ItemFailed
			outcome.Reason = fmt.Sprintf("panic: %v", r)
			logger.Error().Str("psp_reference", outcome.PSPReference).Interface("panic", r).Msg("recovered while processing notification item")
		}
	}()

	item, err := decodeItem(wrapper)
	if err != nil {
		logger.Warn().Err(err).Msg("invalid notification item format")
		outcome.Result = ItemSkipped
		outcome.Reason = err.Error()
		return
	}

	outcome.PSPReference = item.PSPReference
	outcome.MerchantReference = item.MerchantReference
	outcome.EventCode = item.EventCode
	logger = logger.With().Str("psp_reference", item.PSPReference).Str("merchant_reference", item.MerchantReference).Str("event_code", item.EventCode).Logger()

	if !s.signer.Enabled() {
		logger.Warn().Msg("HMAC key not configured, skipping signature verification")
	}

	if err := s.signer.Verify(item); err != nil {
		logger.Error().Err(err).Msg("invalid HMAC signature for notification")
		outcome.Result = ItemSkipped
		outcome.Reason = err.Error()
		return
	}

	logger.Info().Bool("success", item.Success.IsTrue()).Msg("processing notification")

	handler, ok := s.handlers[domain.EventCode(item.EventCode)]
	if !ok {
		logger.Info().Msg("unhandled event code")
		outcome.Result = ItemIgnored
		outcome.Reason = "unhandled event code"
		return
	}

	status, ok := handler(item)
	if !ok {
		logger.Info().Msg("unsuccessful event, order status unchanged")
		outcome.Result = ItemIgnored
		outcome.Reason = "unsuccessful event requires no status change"
		return
	}
	outcome.Status = status

	if err := s.applyStatus(ctx, item, status); err != nil {
		logger.Error().Err(err).Str("status", string(status)).Msg("failed to update order status")
		outcome.Result = ItemFailed
		outcome.Reason = err.Error()
		return
	}

	logger.Info().Str("status", string(status)).Msg("order status updated")
	outcome.Result = ItemDispatched
	return
}

func decodeItem(wrapper dto.NotificationItemWrapper) (item dto.NotificationRequestItem, err error) {
	raw := wrapper.NotificationRequestItem
	if len(raw) == 0 || string(raw) == "null" {
		return item, fmt.Errorf("%w: NotificationRequestItem is missing", errs.ErrMalformedNotification)
	}

	if err := json.Unmarshal(raw, &item); err != nil {
		return item, fmt.Errorf("%w: %w", errs.ErrMalformedNotification, err)
	}

	if item.PSPReference == "" {
		return item, fmt.Errorf("%w: pspReference is missing", errs.ErrMalformedNotification)
	}

	return item, nil
}

func (s *WebhookServiceImpl) applyStatus(ctx context.Context, item dto.NotificationRequestItem, status domain.PaymentStatus) error {
	err := s.orderRepo.UpdateOrderPaymentStatus(ctx, item.MerchantReference, status)
	if err != nil {
		if !errors.Is(err, errs.ErrOrderNotFound) {
			s.deadLetter(ctx, item, status, err)
		}
		return err
	}

	update := dto.OrderPaymentStatusUpdate{
		MerchantReference: item.MerchantReference,
		PSPReference:      item.PSPReference,
		EventCode:         item.EventCode,
		Status:            string(status),
		Amount:            item.Amount,
	}
	if item.EventDate != "" {
		eventDate, err := utils.ParseEventDate(item.EventDate)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str("component", "applyStatus").Str("event_date", item.EventDate).Msg("")
		} else {
			update.EventDate = &eventDate
		}
	}
	publishStatusUpdate(ctx, s.publisher, update)

	return nil
}

func (s *WebhookServiceImpl) deadLetter(ctx context.Context, item dto.NotificationRequestItem, status domain.PaymentStatus, cause error) {
	id, err := uuid.NewV7()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "deadLetter").Msg("error generating dead letter id")
		return
	}

	now := s.now().Unix()
	err = s.deadLetterRepo.AddDeadLetter(ctx, domain.DeadLetter{
		ID:                id.String(),
		MerchantReference: item.MerchantReference,
		PSPReference:      item.PSPReference,
		EventCode:         item.EventCode,
		TargetStatus:      status,
		LastError:         cause.Error(),
		CreatedAt:         now,
		UpdatedAt:         now,
	})
	if err != nil {
		metrics.DeadLetters.WithLabelValues("store_failed").Inc()
		log.Ctx(ctx).Error().Err(err).Str("component", "deadLetter").Str("psp_reference", item.PSPReference).Str("merchant_reference", item.MerchantReference).Str("status", string(status)).Msg("order status update lost")
		return
	}

	metrics.DeadLetters.WithLabelValues("queued").Inc()
}

func publishStatusUpdate(ctx context.Context, publisher EventPublisher, update dto.OrderPaymentStatusUpdate) {
	err := publisher.Publish(ctx, update.MerchantReference, dto.KafkaMessage{
		EventType: dto.EventTypeOrderPaymentStatusUpdated,
		Data:      update,
	})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "publishStatusUpdate").Str("merchant_reference", update.MerchantReference).Msg("")
	}
}
