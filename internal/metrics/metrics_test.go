package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequestMultiple(t *testing.T) {
	HTTPRequestsTotal.Reset()

	RecordHTTPRequest("POST", "/wallet/transfer", "200", 0.1)
	RecordHTTPRequest("POST", "/wallet/transfer", "200", 0.2)
	RecordHTTPRequest("POST", "/wallet/transfer", "400", 0.05)

	assert.Equal(t, float64(2), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/transfer", "200")))
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/wallet/transfer", "400")))
}

func TestRecordTransfer(t *testing.T) {
	TransfersTotal.Reset()

	testCounter := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "wallet_transferred_minor_units_total_test",
		Help: "test",
	})
	old := TransferredMinorUnits
	TransferredMinorUnits = testCounter
	defer func() { TransferredMinorUnits = old }()

	RecordTransfer("success", 300)
	RecordTransfer("success", 200)
	RecordTransfer("insufficient_funds", 10000)

	assert.Equal(t, float64(2), testutil.ToFloat64(TransfersTotal.WithLabelValues("success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(TransfersTotal.WithLabelValues("insufficient_funds")))
	assert.Equal(t, float64(500), testutil.ToFloat64(testCounter))
}

func TestRecordWebhook(t *testing.T) {
	WebhookNotificationsTotal.Reset()

	RecordWebhook("credited")
	RecordWebhook("duplicate")
	RecordWebhook("duplicate")

	assert.Equal(t, float64(1), testutil.ToFloat64(WebhookNotificationsTotal.WithLabelValues("credited")))
	assert.Equal(t, float64(2), testutil.ToFloat64(WebhookNotificationsTotal.WithLabelValues("duplicate")))
}

func TestRecordDepositInitiated(t *testing.T) {
	DepositsInitiatedTotal.Reset()

	RecordDepositInitiated("gateway_unavailable")

	assert.Equal(t, float64(1), testutil.ToFloat64(DepositsInitiatedTotal.WithLabelValues("gateway_unavailable")))
}

func TestRecordGatewayCall(t *testing.T) {
	GatewayRequestDuration.Reset()

	RecordGatewayCall("initialize", "ok", 0.3)

	assert.Equal(t, 1, testutil.CollectAndCount(GatewayRequestDuration))
}

func TestRecordEmail(t *testing.T) {
	EmailsSentTotal.Reset()

	RecordEmail("deposit_receipt", "success")
	RecordEmail("deposit_receipt", "failed")

	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("deposit_receipt", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(EmailsSentTotal.WithLabelValues("deposit_receipt", "failed")))
}

func TestGauges(t *testing.T) {
	StalePendingDeposits.Set(4)
	assert.Equal(t, float64(4), testutil.ToFloat64(StalePendingDeposits))

	EmailQueueLength.Set(0)
	assert.Equal(t, float64(0), testutil.ToFloat64(EmailQueueLength))
}
