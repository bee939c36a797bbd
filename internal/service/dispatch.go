package service

import (
	"github.com/alimikegami/point-of-sales/payment-service/internal/domain"
	"github.com/alimikegami/point-of-sales/payment-service/internal/dto"
)

// eventHandler resolves the order status a notification moves the order to.
// ok is false when the notification requires no status change.
type eventHandler func(item dto.NotificationRequestItem) (status domain.PaymentStatus, ok bool)

func defaultEventHandlers() map[domain.EventCode]eventHandler {
	return map[domain.EventCode]eventHandler{
		domain.EventCodeAuthorisation: func(item dto.NotificationRequestItem) (domain.PaymentStatus, bool) {
			if item.Success.IsTrue() {
				return domain.PaymentStatusPaid, true
			}
			return domain.PaymentStatusFailed, true
		},
		domain.EventCodeCancellation: always(domain.PaymentStatusCancelled),
		domain.EventCodeCapture:      onSuccess(domain.PaymentStatusCaptured),
		domain.EventCodeRefund:       onSuccess(domain.PaymentStatusRefunded),
		domain.EventCodeChargeback:   always(domain.PaymentStatusChargedBack),
	}
}

func always(status domain.PaymentStatus) eventHandler {
	return func(dto.NotificationRequestItem) (domain.PaymentStatus, bool) {
		return status, true
	}
}

func onSuccess(status domain.PaymentStatus) eventHandler {
	return func(item dto.NotificationRequestItem) (domain.PaymentStatus, bool) {
		if !item.Success.IsTrue() {
			return "", false
		}
		return status, true
	}
}
