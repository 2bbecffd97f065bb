package transfer

import (
	"errors"
	"net/http"

	"walletledger/internal/api"
	"walletledger/internal/auth"
	"walletledger/internal/wallet"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Transfer godoc
// @Summary      Transfer funds
// @Description  Moves amount (minor units) from the caller's wallet to another wallet.
// @Tags         wallet
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TransferRequest  true  "Transfer"
// @Success      200      {object}  TransferResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      403      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Router       /wallet/transfer [post]
func (h *Handler) Transfer(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	var req TransferRequest
	if !api.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Transfer(c.Request.Context(), p, req.WalletNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount),
			errors.Is(err, ErrSelfTransfer),
			errors.Is(err, wallet.ErrInsufficientFunds):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, ErrRecipientNotFound), errors.Is(err, wallet.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "transfer failed"})
		}
		return
	}

	c.JSON(http.StatusOK, TransferResponse{Status: "success", Reference: res.Reference})
}
