package controller

import (
	"net/http"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/internal/service"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

type WebhookController struct {
	service service.WebhookService
}

func CreateWebhookController(g *echo.Group, service service.WebhookService, webhookAuth echo.MiddlewareFunc) {
	c := WebhookController{
		service: service,
	}

	g.POST("/webhooks/adyen", c.AdyenNotification, webhookAuth)
}

// AdyenNotification acknowledges every authenticated batch. The provider
// retries anything that is not acknowledged, so processing failures are
// logged and never surfaced in the response.
func (c *WebhookController) AdyenNotification(e echo.Context) (err error) {
	ctx := e.Request().Context()

	defer func() {
		if r := recover(); r != nil {
			log.Ctx(ctx).Error().Str("component", "AdyenNotification").Interface("panic", r).Msg("recovered while processing notification batch")
			err = writeAccepted(e)
		}
	}()

	payload := dto.NotificationRequest{}
	if err := e.Echo().JSONSerializer.Deserialize(e, &payload); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "AdyenNotification").Msg("malformed notification payload")
		return writeAccepted(e)
	}

	outcomes := c.service.ProcessNotifications(ctx, payload)

	results := make(map[service.ItemResult]int, 4)
	for _, outcome := range outcomes {
		results[outcome.Result]++
	}

	log.Ctx(ctx).Info().
		Str("component", "AdyenNotification").
		Str("live", payload.Live).
		Int("items", len(outcomes)).
		Int("dispatched", results[service.ItemDispatched]).
		Int("ignored", results[service.ItemIgnored]).
		Int("skipped", results[service.ItemSkipped]).
		Int("failed", results[service.ItemFailed]).
		Msg("notification batch processed")

	return writeAccepted(e)
}

func writeAccepted(e echo.Context) error {
	return e.JSON(http.StatusOK, dto.NotificationResponse{
		NotificationResponse: dto.NotificationAccepted,
	})
}
