package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted after a successful stock validation.",
	})
	OrdersRejected = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_rejected_total",
		Help: "Order requests rejected by stock validation.",
	})
	OrdersTimedOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_validation_timeout_total",
		Help: "Order requests abandoned after the validation deadline.",
	})
	OrdersCancelled = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orders_cancelled_total",
		Help: "Orders transitioned to cancelled.",
	})

	StockValidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_validations_total",
		Help: "Stock validation requests answered, by outcome.",
	}, []string{"outcome"})
	StockDecrements = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_decrements_total",
		Help: "Stock decrement attempts for created orders, by outcome.",
	}, []string{"outcome"})
)
