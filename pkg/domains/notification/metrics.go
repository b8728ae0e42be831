package notification

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	resultSent    = "sent"
	resultFailed  = "failed"
	resultDropped = "dropped"
)

var notificationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "reservation_notifications_total",
	Help: "Reservation confirmations by channel and outcome.",
}, []string{"channel", "result"})
