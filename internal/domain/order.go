package domain

type PaymentStatus string

const (
	PaymentStatusPending     PaymentStatus = "pending"
	PaymentStatusPaid        PaymentStatus = "paid"
	PaymentStatusFailed      PaymentStatus = "failed"
	PaymentStatusCancelled   PaymentStatus = "cancelled"
	PaymentStatusCaptured    PaymentStatus = "captured"
	PaymentStatusRefunded    PaymentStatus = "refunded"
	PaymentStatusChargedBack PaymentStatus = "charged-back"
)

// EventCode is the provider's name for a payment lifecycle transition. The
// set is open: the provider adds codes without notice.
type EventCode string

const (
	EventCodeAuthorisation EventCode = "AUTHORISATION"
	EventCodeCancellation  EventCode = "CANCELLATION"
	EventCodeCapture       EventCode = "CAPTURE"
	EventCodeRefund        EventCode = "REFUND"
	EventCodeChargeback    EventCode = "CHARGEBACK"
)
