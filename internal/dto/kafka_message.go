package dto

const EventTypeOrderPaymentStatusUpdated = "order_payment_status_updated"

type KafkaMessage struct {
	EventType string      `json:"event_type"`
	Data      interface{} `json:"data"`
}

type OrderPaymentStatusUpdate struct {
	MerchantReference string  `json:"merchant_reference"`
	PSPReference      string  `json:"psp_reference"`
	EventCode         string  `json:"event_code"`
	Status            string  `json:"status"`
	EventDate         *int64  `json:"event_date"`
	Amount            *Amount `json:"amount,omitempty"`
}
