package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var uploadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "repl",
	Name:      "uploads_total",
	Help:      "Stored uploads by media kind.",
}, []string{"kind"})

var recognitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "repl",
	Name:      "recognitions_total",
	Help:      "Recognition requests by media kind and outcome.",
}, []string{"kind", "status"})
