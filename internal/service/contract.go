package service

import (
	"context"
	"encoding/json"

	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/httpclient"
)

type WebhookService interface {
	ProcessNotifications(ctx context.Context, req dto.NotificationRequest) (outcomes []ItemOutcome)
}

type PaymentService interface {
	GetPaymentDetails(ctx context.Context, req dto.PaymentDetailsRequest) (resp json.RawMessage, err error)
	ProxyAsset(ctx context.Context, rawURL string) (resp httpclient.HttpResponse, err error)
}

type ReplayService interface {
	ReplayDeadLetters(ctx context.Context) (err error)
}

type EventPublisher interface {
	Publish(ctx context.Context, key string, msg dto.KafkaMessage) error
}

type PaymentGateway interface {
	PaymentsDetails(ctx context.Context, details map[string]string) (json.RawMessage, error)
}

type AssetFetcher interface {
	SendRequest(ctx context.Context, req httpclient.HttpRequest) (httpclient.HttpResponse, error)
}
