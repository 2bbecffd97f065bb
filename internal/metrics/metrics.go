package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	TransfersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_transfers_total",
			Help: "Transfers by outcome",
		},
		[]string{"outcome"},
	)

	TransferredMinorUnits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "wallet_transferred_minor_units_total",
			Help: "Sum of successfully transferred amounts in minor units",
		},
	)

	DepositsInitiatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_deposits_initiated_total",
			Help: "Deposit initiations by outcome",
		},
		[]string{"outcome"},
	)

	WebhookNotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_webhook_notifications_total",
			Help: "Gateway notifications by reconciliation outcome",
		},
		[]string{"outcome"},
	)

	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "wallet_gateway_request_duration_seconds",
			Help:    "Payment gateway call latency",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "status"},
	)

	StalePendingDeposits = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_stale_pending_deposits",
			Help: "Pending deposits older than the configured TTL",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "wallet_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "wallet_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordTransfer(outcome string, amount int64) {
	TransfersTotal.WithLabelValues(outcome).Inc()
	if outcome == "success" {
		TransferredMinorUnits.Add(float64(amount))
	}
}

func RecordDepositInitiated(outcome string) {
	DepositsInitiatedTotal.WithLabelValues(outcome).Inc()
}

func RecordWebhook(outcome string) {
	WebhookNotificationsTotal.WithLabelValues(outcome).Inc()
}

func RecordGatewayCall(operation, status string, seconds float64) {
	GatewayRequestDuration.WithLabelValues(operation, status).Observe(seconds)
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
