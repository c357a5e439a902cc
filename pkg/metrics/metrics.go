package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	GenerationRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "legalease", Name: "generation_requests_total", Help: "Number of document generation requests by outcome."},
		[]string{"status"},
	)
	ChatTurns = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "legalease", Name: "chat_turns_total", Help: "Number of chat turns by outcome."},
		[]string{"status"},
	)
	DocumentsExported = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "legalease", Name: "documents_exported_total", Help: "Number of PDF exports served."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "legalease", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "legalease", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(GenerationRequests)
	reg.MustRegister(ChatTurns)
	reg.MustRegister(DocumentsExported)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
