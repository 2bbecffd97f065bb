package server

import (
	"bytes"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
	"time"

	"walletledger/internal/auth"
	"walletledger/internal/config"
	"walletledger/internal/paystack"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testJWTSecret      = "test-secret"
	testPaystackSecret = "sk_test_secret"
)

func newTestServer(t *testing.T) (*Server, sqlmock.Sqlmock) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })

	cfg := &config.Config{
		Port:      "0",
		Env:       "development",
		JWTSecret: testJWTSecret,
		Paystack: config.PaystackConfig{
			BaseURL:   "http://127.0.0.1:1",
			SecretKey: testPaystackSecret,
			Timeout:   time.Second,
		},
		RateLimitRPS:   1000,
		RateLimitBurst: 1000,
	}

	srv := New(sqlx.NewDb(mockDB, "sqlmock"), cfg, nil)
	t.Cleanup(srv.limiter.Stop)
	return srv, mock
}

func TestServer_Routes(t *testing.T) {
	srv, _ := newTestServer(t)

	registered := map[string]bool{}
	for _, r := range srv.router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}

	for _, want := range []string{
		"GET /health",
		"GET /ready",
		"GET /metrics",
		"POST /auth/register",
		"POST /auth/login",
		"POST /auth/refresh",
		"GET /me",
		"POST /wallet/deposit",
		"GET /wallet/deposit/:reference/status",
		"POST /wallet/paystack/webhook",
		"GET /wallet/balance",
		"GET /wallet/transactions",
		"POST /wallet/transfer",
	} {
		assert.True(t, registered[want], "missing route %s", want)
	}
}

func TestServer_Health(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(requestIDHeader))
}

func TestServer_Ready(t *testing.T) {
	srv, _ := newTestServer(t)

	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok","database":"ok","email_queue":"disabled","queue_depth":0}`, w.Body.String())
}

func TestServer_WalletRoutesRequireAuth(t *testing.T) {
	srv, mock := newTestServer(t)

	for _, path := range []string{"/wallet/balance", "/wallet/transactions", "/me"} {
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServer_BalanceWithBearer(t *testing.T) {
	srv, mock := newTestServer(t)

	token, err := auth.GenerateAccessToken(7, "ada@example.com", testJWTSecret)
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("FROM wallets WHERE user_id = $1")).
		WithArgs(7).
		WillReturnError(sql.ErrNoRows)

	req := httptest.NewRequest(http.MethodGet, "/wallet/balance", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestServer_WebhookIsPublic(t *testing.T) {
	srv, mock := newTestServer(t)

	t.Run("bad signature rejected without touching the store", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{"reference":"ps_x"}}`)
		req := httptest.NewRequest(http.MethodPost, "/wallet/paystack/webhook", bytes.NewReader(body))
		req.Header.Set(paystack.SignatureHeader, "deadbeef")
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("signed body without reference acknowledged", func(t *testing.T) {
		body := []byte(`{"event":"charge.success","data":{}}`)
		req := httptest.NewRequest(http.MethodPost, "/wallet/paystack/webhook", bytes.NewReader(body))
		req.Header.Set(paystack.SignatureHeader, paystack.Sign(body, testPaystackSecret))
		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"acknowledged":true}`, w.Body.String())
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}
