package webhook

import (
	"context"
	"errors"
	"io"
	"net/http"

	"walletledger/internal/api"
	"walletledger/internal/paystack"

	"github.com/gin-gonic/gin"
)

const maxBodyBytes = 1 << 20

type NotificationHandler interface {
	HandleNotification(ctx context.Context, rawBody []byte, signature string) (Outcome, error)
}

type Handler struct {
	reconciler NotificationHandler
}

func NewHandler(reconciler NotificationHandler) *Handler {
	return &Handler{reconciler: reconciler}
}

type AckResponse struct {
	Acknowledged bool `json:"acknowledged" example:"true"`
}

// Paystack godoc
// @Summary      Paystack webhook
// @Description  Receives signed settlement notifications. Any notification with a valid signature is acknowledged.
// @Tags         wallet
// @Accept       json
// @Produce      json
// @Param        X-Paystack-Signature  header    string  true  "hex HMAC-SHA512 of the raw body"
// @Success      200                   {object}  AckResponse
// @Failure      400                   {object}  api.ErrorResponse
// @Failure      413                   {object}  api.ErrorResponse
// @Router       /wallet/paystack/webhook [post]
func (h *Handler) Paystack(c *gin.Context) {
	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, api.ErrorResponse{Error: "body too large"})
			return
		}
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "could not read body"})
		return
	}

	_, err = h.reconciler.HandleNotification(c.Request.Context(), body, c.GetHeader(paystack.SignatureHeader))
	if err != nil {
		if errors.Is(err, paystack.ErrInvalidSignature) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid signature"})
			return
		}
		// Not acknowledged so the gateway redelivers; reconciliation is idempotent.
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "reconciliation failed"})
		return
	}

	c.JSON(http.StatusOK, AckResponse{Acknowledged: true})
}
