package maintenance

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	drainsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "broker",
		Subsystem: "maintenance",
		Name:      "drains_total",
		Help:      "Number of completed drain operations on this node.",
	})
	revivesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "broker",
		Subsystem: "maintenance",
		Name:      "revives_total",
		Help:      "Number of completed revive operations on this node.",
	})
	connectionsClosedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "broker",
		Subsystem: "maintenance",
		Name:      "connections_closed_total",
		Help:      "Client connections force-closed by drain operations.",
	})
	transfersTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "broker",
		Subsystem: "maintenance",
		Name:      "leadership_transfers_total",
		Help:      "Queue leadership transfers attempted during drains, by outcome.",
	}, []string{"outcome"})
)
