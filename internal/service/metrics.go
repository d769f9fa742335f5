package service

import "github.com/prometheus/client_golang/prometheus"

var (
	listMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "bucketlist_list_mutations_total", Help: "List and item mutations by operation"},
		[]string{"op"},
	)
	usageIncrementFailures = prometheus.NewCounter(
		prometheus.CounterOpts{Name: "bucketlist_usage_increment_failures_total", Help: "Library idea usageCount increments that failed"},
	)
)

func init() { prometheus.MustRegister(listMutations, usageIncrementFailures) }
