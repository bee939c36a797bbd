package service

import (
	"context"
	"encoding/json"

	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/httpclient"
	"github.com/stretchr/testify/mock"
)

type mockOrderRepository struct {
	mock.Mock
}

func (m *mockOrderRepository) UpdateOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus) error {
	args := m.Called(ctx, transactionNumber, status)
	return args.Error(0)
}

func (m *mockOrderRepository) ReplayOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus, failedAt int64) error {
	args := m.Called(ctx, transactionNumber, status, failedAt)
	return args.Error(0)
}

type mockDeadLetterRepository struct {
	mock.Mock
}

func (m *mockDeadLetterRepository) AddDeadLetter(ctx context.Context, data domain.DeadLetter) error {
	args := m.Called(ctx, data)
	return args.Error(0)
}

func (m *mockDeadLetterRepository) GetPendingDeadLetters(ctx context.Context, maxAttempts int, limit int) ([]domain.DeadLetter, error) {
	args := m.Called(ctx, maxAttempts, limit)
	data, _ := args.Get(0).([]domain.DeadLetter)
	return data, args.Error(1)
}

func (m *mockDeadLetterRepository) MarkDeadLetterResolved(ctx context.Context, id string, resolvedAt int64) error {
	args := m.Called(ctx, id, resolvedAt)
	return args.Error(0)
}

func (m *mockDeadLetterRepository) IncrementDeadLetterAttempt(ctx context.Context, id string, lastError string, updatedAt int64) error {
	args := m.Called(ctx, id, lastError, updatedAt)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, key string, msg dto.KafkaMessage) error {
	args := m.Called(ctx, key, msg)
	return args.Error(0)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) PaymentsDetails(ctx context.Context, details map[string]string) (json.RawMessage, error) {
	args := m.Called(ctx, details)
	resp, _ := args.Get(0).(json.RawMessage)
	return resp, args.Error(1)
}

type mockFetcher struct {
	mock.Mock
}

func (m *mockFetcher) SendRequest(ctx context.Context, req httpclient.HttpRequest) (httpclient.HttpResponse, error) {
	args := m.Called(ctx, req)
	return args.Get(0).(httpclient.HttpResponse), args.Error(1)
}
