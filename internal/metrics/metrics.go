package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	LeadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_registrations_total",
			Help: "Lead registrations by outcome",
		},
		[]string{"outcome"}, // created|returning|rejected
	)

	CheckinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "leads_checkins_total",
			Help: "Check-ins recorded by source",
		},
		[]string{"source"}, // http|kafka|form
	)
)

var once sync.Once

// MustRegister is safe to call from every command; collectors are registered once.
func MustRegister(r prometheus.Registerer) {
	once.Do(func() {
		r.MustRegister(
			LeadsTotal,
			CheckinsTotal,
		)
	})
}
