package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	DocumentWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "document_writes_total", Help: "Number of document writes by kind (create|update)."},
		[]string{"kind"},
	)
	DocumentDeletes = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "quill", Name: "document_deletes_total", Help: "Number of documents deleted."},
	)
	SignInAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "signin_attempts_total", Help: "Number of sign-in attempts by result (ok|invalid|error)."},
		[]string{"result"},
	)
	SignUps = prometheus.NewCounter(
		prometheus.CounterOpts{Namespace: "quill", Name: "signups_total", Help: "Number of accounts created."},
	)
	RateLimitAllowed = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "rate_limit_allowed_total", Help: "Number of allowed requests by limiter type."},
		[]string{"limiter"},
	)
	RateLimitRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{Namespace: "quill", Name: "rate_limit_rejected_total", Help: "Number of rejected requests by limiter type."},
		[]string{"limiter"},
	)
)

func RegisterCollectors(reg prometheus.Registerer) {
	reg.MustRegister(DocumentWrites)
	reg.MustRegister(DocumentDeletes)
	reg.MustRegister(SignInAttempts)
	reg.MustRegister(SignUps)
	reg.MustRegister(RateLimitAllowed)
	reg.MustRegister(RateLimitRejected)
}
