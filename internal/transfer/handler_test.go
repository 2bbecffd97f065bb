package transfer

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"walletledger/internal/auth"
	"walletledger/internal/principal"
	"walletledger/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockService struct{ mock.Mock }

func (m *MockService) Transfer(ctx context.Context, p principal.Principal, recipientNumber string, amount int64) (*Result, error) {
	args := m.Called(ctx, p, recipientNumber, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Result), args.Error(1)
}

func transferRouter(svc Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/wallet/transfer", func(c *gin.Context) {
		auth.SetPrincipal(c, principal.NewUser(10))
	}, NewHandler(svc).Transfer)
	return router
}

func postTransfer(router *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/wallet/transfer", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestTransferHandler_Success(t *testing.T) {
	svc := new(MockService)
	svc.On("Transfer", mock.Anything, principal.NewUser(10), "2000000002", int64(300)).
		Return(&Result{Reference: "tr_1", Amount: 300}, nil)

	w := postTransfer(transferRouter(svc), `{"wallet_number":"2000000002","amount":300}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"success","reference":"tr_1"}`, w.Body.String())
	svc.AssertExpectations(t)
}

func TestTransferHandler_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		code int
	}{
		{ErrInvalidAmount, http.StatusBadRequest},
		{ErrSelfTransfer, http.StatusBadRequest},
		{wallet.ErrInsufficientFunds, http.StatusBadRequest},
		{ErrRecipientNotFound, http.StatusNotFound},
		{wallet.ErrWalletNotFound, http.StatusNotFound},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			svc := new(MockService)
			svc.On("Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			w := postTransfer(transferRouter(svc), `{"wallet_number":"2000000002","amount":300}`)
			assert.Equal(t, tt.code, w.Code)
		})
	}
}

func TestTransferHandler_InvalidBody(t *testing.T) {
	svc := new(MockService)

	assert.Equal(t, http.StatusBadRequest, postTransfer(transferRouter(svc), `{"amount":300}`).Code)
	assert.Equal(t, http.StatusBadRequest, postTransfer(transferRouter(svc), `{"wallet_number":"abc","amount":300}`).Code)
	assert.Equal(t, http.StatusBadRequest, postTransfer(transferRouter(svc), `not json`).Code)
	svc.AssertNotCalled(t, "Transfer", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
