package push

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultAccepted     = "accepted"
	resultNoRecipients = "no_recipients"
	resultGatewayError = "gateway_error"
	resultError        = "error"
)

var (
	broadcastsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "push_broadcasts_total",
			Help: "Number of broadcasts, differentiated by channel and result.",
		},
		[]string{"channel", "result"},
	)

	registrationsTotal = promauto.NewCounterVec( //nolint:gochecknoglobals
		prometheus.CounterOpts{
			Name: "push_registrations_total",
			Help: "Number of accepted token registrations per channel.",
		},
		[]string{"channel"},
	)
)
