package repository

import (
	"context"

	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/pkg/errs"
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

type DeadLetterRepositoryImpl struct {
	db *sqlx.DB
}

func CreateDeadLetterRepository(db *sqlx.DB) DeadLetterRepository {
	return &DeadLetterRepositoryImpl{
		db: db,
	}
}

func (r *DeadLetterRepositoryImpl) AddDeadLetter(ctx context.Context, data domain.DeadLetter) (err error) {
	_, err = r.db.NamedExecContext(ctx, "INSERT INTO payment_dead_letters(id, merchant_reference, psp_reference, event_code, target_status, last_error, attempts, created_at, updated_at) VALUES (:id, :merchant_reference, :psp_reference, :event_code, :target_status, :last_error, :attempts, :created_at, :updated_at)", data)
	if err != nil {
		log.Error().Err(err).Str("component", "AddDeadLetter").Msg("")
		return
	}

	return nil
}

func (r *DeadLetterRepositoryImpl) GetPendingDeadLetters(ctx context.Context, maxAttempts int, limit int) (data []domain.DeadLetter, err error) {
	err = r.db.SelectContext(ctx, &data, "SELECT * FROM payment_dead_letters WHERE resolved_at IS NULL AND attempts < $1 ORDER BY created_at LIMIT $2", maxAttempts, limit)
	if err != nil {
		log.Error().Err(err).Str("component", "GetPendingDeadLetters").Msg("")
		return nil, err
	}

	return
}

func (r *DeadLetterRepositoryImpl) MarkDeadLetterResolved(ctx context.Context, id string, resolvedAt int64) (err error) {
	res, err := r.db.ExecContext(ctx, "UPDATE payment_dead_letters SET resolved_at = $1, updated_at = $1 WHERE id = $2 AND resolved_at IS NULL", resolvedAt, id)
	if err != nil {
		log.Error().Err(err).Str("component", "MarkDeadLetterResolved").Msg("")
		return
	}

	return expectAffected(res, errs.ErrDeadLetterNotFound)
}

func (r *DeadLetterRepositoryImpl) IncrementDeadLetterAttempt(ctx context.Context, id string, lastError string, updatedAt int64) (err error) {
	res, err := r.db.ExecContext(ctx, "UPDATE payment_dead_letters SET attempts = attempts + 1, last_error = $1, updated_at = $2 WHERE id = $3", lastError, updatedAt, id)
	if err != nil {
		log.Error().Err(err).Str("component", "IncrementDeadLetterAttempt").Msg("")
		return
	}

	return expectAffected(res, errs.ErrDeadLetterNotFound)
}
