package repository

import (
	"context"
	"time"

	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type OrderRepositoryImpl struct {
	db  *sqlx.DB
	now func() time.Time
}

func CreateOrderRepository(db *sqlx.DB) OrderRepository {
	return &OrderRepositoryImpl{
		db:  db,
		now: time.Now,
	}
}

func (r *OrderRepositoryImpl) UpdateOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus) (err error) {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET payment_status = $1, updated_at = $2 WHERE transaction_number = $3 AND deleted_at IS NULL", status, r.now().Unix(), transactionNumber)
	if err != nil {
		log.Error().Err(err).Str("component", "UpdateOrderPaymentStatus").Msg("")
		return
	}

	return expectAffected(res, errs.ErrOrderNotFound)
}

func (r *OrderRepositoryImpl) ReplayOrderPaymentStatus(ctx context.Context, transactionNumber string, status domain.PaymentStatus, failedAt int64) (err error) {
	res, err := r.db.ExecContext(ctx, "UPDATE orders SET payment_status = $1, updated_at = $2 WHERE transaction_number = $3 AND deleted_at IS NULL AND updated_at <= $4", status, r.now().Unix(), transactionNumber, failedAt)
	if err != nil {
		log.Error().Err(err).Str("component", "ReplayOrderPaymentStatus").Msg("")
		return
	}

	return expectAffected(res, errs.ErrOrderStatusSuperseded)
}
