package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	PaymentsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pesapay_payments_created_total",
		Help: "Payments persisted with status succeeded.",
	})
	PaymentsDeclined = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pesapay_payments_declined_total",
		Help: "Charge attempts rejected by authorization.",
	})
	PaymentsRefunded = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pesapay_payments_refunded_total",
		Help: "Payments transitioned to refunded.",
	})
)
