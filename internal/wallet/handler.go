package wallet

import (
	"errors"
	"net/http"

	"walletledger/internal/api"
	"walletledger/internal/auth"
	"walletledger/internal/logger"
	"walletledger/internal/money"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

// GetBalance godoc
// @Summary      Wallet balance
// @Description  Current balance of the caller's wallet in minor units.
// @Tags         wallet
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Produce      json
// @Success      200  {object}  BalanceResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /wallet/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	w, err := h.repo.GetByUserID(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "wallet not found"})
			return
		}
		logger.Error("failed to load wallet", "user_id", p.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load wallet"})
		return
	}

	c.JSON(http.StatusOK, BalanceResponse{
		Balance:        w.Balance,
		BalanceDisplay: money.Format(w.Balance),
		WalletNumber:   w.WalletNumber,
	})
}
