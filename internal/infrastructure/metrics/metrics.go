package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OtherEventCode labels notifications whose event code has no handler.
const OtherEventCode = "other"

var (
	NotificationItems = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_notification_items_total",
		Help: "Payment notification items processed, by event code and result.",
	}, []string{"event_code", "result"})

	DeadLetters = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "payment_dead_letters_total",
		Help: "Dead-lettered order status updates, by replay result.",
	}, []string{"result"})
)
