package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	CacheReads = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Name: "cache_reads_total", Help: "Document reads by outcome: hit, miss, fallback, default."},
		[]string{"outcome"},
	)
	RemoteErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Name: "remote_errors_total", Help: "Remote document store failures by operation."},
		[]string{"op"},
	)
	DocumentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Name: "document_writes_total", Help: "Whole-document writes by result."},
		[]string{"result"},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "storefront", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(CacheReads)
	reg.MustRegister(RemoteErrors)
	reg.MustRegister(DocumentWrites)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
