package email

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(rdb *redis.Client, deliver func(EmailJob) error) *Service {
	return &Service{
		redis:    rdb,
		from:     "noreply@wallet.test",
		fromName: "Wallet Team",
		smtpHost: "smtp.test.com",
		smtpPort: "587",
		deliver:  deliver,
	}
}

func TestSend(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.Regexp().ExpectLPush(queueKey, `.*`).SetVal(1)

	err := newTestService(db, nil).Send(context.Background(), "user@example.com", "User", "test", "Hello", "Test body")

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSendError(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.Regexp().ExpectLPush(queueKey, `.*`).SetErr(assert.AnError)

	err := newTestService(db, nil).Send(context.Background(), "user@example.com", "User", "test", "Hello", "Test body")

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReceiptTemplates(t *testing.T) {
	db, mock := redismock.NewClientMock()
	svc := newTestService(db, nil)
	ctx := context.Background()

	mock.Regexp().ExpectLPush(queueKey, `deposit_receipt.*500\.00`).SetVal(1)
	mock.Regexp().ExpectLPush(queueKey, `transfer_sent.*2000000002`).SetVal(2)
	mock.Regexp().ExpectLPush(queueKey, `transfer_received.*1000000001`).SetVal(3)

	require.NoError(t, svc.SendDepositReceipt(ctx, "a@example.com", "A", "ps_x", 50000, 70000))
	require.NoError(t, svc.SendTransferSent(ctx, "a@example.com", "A", "tr_1", "2000000002", 30000))
	require.NoError(t, svc.SendTransferReceived(ctx, "b@example.com", "B", "tr_1", "1000000001", 30000))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_Delivers(t *testing.T) {
	db, mock := redismock.NewClientMock()
	job, _ := json.Marshal(EmailJob{To: "a@example.com", Type: TypeDepositReceipt, Subject: "s"})
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, string(job)})

	var delivered []EmailJob
	svc := newTestService(db, func(j EmailJob) error {
		delivered = append(delivered, j)
		return nil
	})

	svc.processNext(context.Background())

	require.Len(t, delivered, 1)
	assert.Equal(t, 1, delivered[0].Tries)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_RequeuesThenDeadLetters(t *testing.T) {
	db, mock := redismock.NewClientMock()
	failing := func(EmailJob) error { return errors.New("smtp down") }

	first, _ := json.Marshal(EmailJob{To: "a@example.com", Type: TypeTransferSent, Tries: 0, Created: time.Now()})
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, string(first)})
	mock.Regexp().ExpectLPush(queueKey, `"tries":1`).SetVal(1)

	svc := newTestService(db, failing)
	svc.processNext(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())

	last, _ := json.Marshal(EmailJob{To: "a@example.com", Type: TypeTransferSent, Tries: maxTries - 1})
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, string(last)})
	mock.Regexp().ExpectLPush(failedQueueKey, `smtp down`).SetVal(1)

	svc.processNext(context.Background())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_RetryWaitEndsOnShutdown(t *testing.T) {
	db, mock := redismock.NewClientMock()
	job, _ := json.Marshal(EmailJob{To: "a@example.com", Type: TypeTransferSent})
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, string(job)})
	mock.Regexp().ExpectLPush(queueKey, `"tries":1`).SetVal(1)

	svc := newTestService(db, func(EmailJob) error { return errors.New("smtp down") })
	svc.retryDelay = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	svc.processNext(ctx)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_PopErrorBacksOff(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(popTimeout, queueKey).SetErr(errors.New("connection refused"))

	svc := newTestService(db, nil)
	svc.popBackoff = time.Hour

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	svc.processNext(ctx)

	assert.Less(t, time.Since(start), 5*time.Second)
	assert.Equal(t, 1, svc.popFailures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProcessNext_PopSuccessResetsBackoff(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(popTimeout, queueKey).SetErr(redis.Nil)
	job, _ := json.Marshal(EmailJob{To: "a@example.com", Type: TypeTransferSent})
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, string(job)})

	svc := newTestService(db, func(EmailJob) error { return nil })
	svc.popFailures = 4

	svc.processNext(context.Background())
	assert.Equal(t, 4, svc.popFailures, "an empty queue is not a failure")

	svc.processNext(context.Background())
	assert.Equal(t, 0, svc.popFailures)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNextPopBackoff(t *testing.T) {
	svc := &Service{popBackoff: time.Second}

	tests := []struct {
		failures int
		want     time.Duration
	}{
		{1, time.Second},
		{2, 2 * time.Second},
		{4, 8 * time.Second},
		{6, maxPopBackoff},
		{50, maxPopBackoff},
	}
	for _, tt := range tests {
		svc.popFailures = tt.failures
		assert.Equal(t, tt.want, svc.nextPopBackoff(), "failures=%d", tt.failures)
	}
}

func TestProcessNext_BadPayload(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectBRPop(popTimeout, queueKey).SetVal([]string{queueKey, "{not json"})

	called := false
	svc := newTestService(db, func(EmailJob) error { called = true; return nil })
	svc.processNext(context.Background())

	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueueLength(t *testing.T) {
	db, mock := redismock.NewClientMock()
	mock.ExpectLLen(queueKey).SetVal(5)

	assert.Equal(t, int64(5), newTestService(db, nil).QueueLength(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
