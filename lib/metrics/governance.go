package metrics

import (
	"github.com/go-kit/kit/metrics"
	"github.com/go-kit/kit/metrics/discard"
	prometheus "github.com/go-kit/kit/metrics/prometheus"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
)

type GovernanceMetrics struct {
	Initiatives    metrics.Gauge
	LatestSequence metrics.Gauge

	CreatedTotal    metrics.Counter
	TerminatedTotal metrics.Counter
	SignalsTotal    metrics.Counter
	RejectedTotal   metrics.Counter
}

func PromGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Initiatives: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "initiatives",
			Help:      "Count of initiatives ever created.",
		}, []string{}),
		LatestSequence: prometheus.NewGaugeFrom(stdprometheus.GaugeOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "latest_sequence",
			Help:      "Latest ledger sequence.",
		}, []string{}),
		CreatedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "created_total",
			Help:      "Total number of created initiatives.",
		}, []string{}),
		TerminatedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "terminated_total",
			Help:      "Total number of terminated initiatives.",
		}, []string{}),
		SignalsTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "signals_total",
			Help:      "Total number of recorded signals.",
		}, []string{}),
		RejectedTotal: prometheus.NewCounterFrom(stdprometheus.CounterOpts{
			Namespace: Namespace,
			Subsystem: GovernanceSubsystem,
			Name:      "rejected_total",
			Help:      "Total number of rejected operations.",
		}, []string{"operation"}),
	}
}

func NopGovernanceMetrics() *GovernanceMetrics {
	return &GovernanceMetrics{
		Initiatives:     discard.NewGauge(),
		LatestSequence:  discard.NewGauge(),
		CreatedTotal:    discard.NewCounter(),
		TerminatedTotal: discard.NewCounter(),
		SignalsTotal:    discard.NewCounter(),
		RejectedTotal:   discard.NewCounter(),
	}
}
