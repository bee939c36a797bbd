package domain

// DeadLetter is an order status update that failed while handling a
// notification and is waiting to be replayed.
type DeadLetter struct {
	ID                string        `db:"id"`
	MerchantReference string        `db:"merchant_reference"`
	PSPReference      string        `db:"psp_reference"`
	EventCode         string        `db:"event_code"`
	TargetStatus      PaymentStatus `db:"target_status"`
	LastError         string        `db:"last_error"`
	Attempts          int           `db:"attempts"`
	CreatedAt         int64         `db:"created_at"`
	UpdatedAt         int64         `db:"updated_at"`
	ResolvedAt        *int64        `db:"resolved_at"`
}
