package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	StockOut = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_out_units_total",
		Help: "Units moved out of stock by reservations and allocations.",
	})

	StockIn = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_stock_in_units_total",
		Help: "Units returned to stock.",
	})

	LineErrors = promauto.NewCounter(prometheus.CounterOpts{
		Name: "inventory_line_errors_total",
		Help: "Per-line soft failures in reserve/allocate batches.",
	})
)
