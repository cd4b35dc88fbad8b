package lot

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	vehiclesParked   *prometheus.CounterVec
	parkRejections   *prometheus.CounterVec
	vehiclesUnparked prometheus.Counter
	revenueCollected prometheus.Counter
	occupiedSlots    *prometheus.GaugeVec
)

// newCollectors creates new metric collectors.
func newCollectors() (*prometheus.CounterVec, *prometheus.CounterVec, prometheus.Counter, prometheus.Counter, *prometheus.GaugeVec) {
	parked := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "vehicles_parked_total",
			Help: "Number of successful park operations",
		},
		[]string{"vehicle_type"},
	)
	rejected := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "park_rejections_total",
			Help: "Number of rejected park requests",
		},
		[]string{"reason"},
	)
	unparked := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "vehicles_unparked_total",
			Help: "Number of successful unpark operations",
		},
	)
	revenue := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "parking_revenue_total",
			Help: "Accumulated amount collected across closed sessions",
		},
	)
	occupied := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "occupied_slots",
			Help: "Currently occupied slots per category",
		},
		[]string{"category"},
	)
	return parked, rejected, unparked, revenue, occupied
}

func init() {
	vehiclesParked, parkRejections, vehiclesUnparked, revenueCollected, occupiedSlots = newCollectors()
	MustRegisterMetrics(nil)
}

// MustRegisterMetrics registers lot metrics on the provided registry.
// If reg is nil, prometheus.DefaultRegisterer is used.
func MustRegisterMetrics(reg prometheus.Registerer) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(vehiclesParked, parkRejections, vehiclesUnparked, revenueCollected, occupiedSlots)
}

// ResetMetrics reinitializes metrics collectors for testing purposes and
// registers them on the provided registry if not nil.
func ResetMetrics(reg prometheus.Registerer) {
	vehiclesParked, parkRejections, vehiclesUnparked, revenueCollected, occupiedSlots = newCollectors()
	if reg != nil {
		MustRegisterMetrics(reg)
	}
}
