package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
)

// OrderRepository is the order status store. Updates are idempotent for a
// given transaction number and status, so redelivered notifications are safe.
type OrderRepository interface {
	UpdateOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus) (err error)
	// ReplayOrderPaymentStatus applies status only if the order has not been
	// written since failedAt. Otherwise it returns errs.ErrOrderStatusSuperseded.
	ReplayOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus, failedAt int64) (err error)
}

type DeadLetterRepository interface {
	AddDeadLetter(ctx context.Context, data domain.DeadLetter) (err error)
	GetPendingDeadLetters(ctx context.Context, maxAttempts int, limit int) (data []domain.DeadLetter, err error)
	MarkDeadLetterResolved(ctx context.Context, id string, resolvedAt int64) (err error)
	IncrementDeadLetterAttempt(ctx context.Context, id string, lastError string, updatedAt int64) (err error)
}
