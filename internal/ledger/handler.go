package ledger

import (
	"errors"
	"net/http"
	"strconv"

	"walletledger/internal/api"
	"walletledger/internal/auth"
	"walletledger/internal/logger"
	"walletledger/internal/money"
	"walletledger/internal/wallet"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	entries Repository
	wallets wallet.Repository
}

func NewHandler(entries Repository, wallets wallet.Repository) *Handler {
	return &Handler{entries: entries, wallets: wallets}
}

// ListTransactions godoc
// @Summary      List transactions
// @Description  Ledger entries of the caller's wallet, most recent first.
// @Tags         wallet
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Produce      json
// @Param        limit   query  int  false  "Page size (default 50, max 200)"
// @Param        offset  query  int  false  "Offset"
// @Success      200  {array}   TransactionView
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /wallet/transactions [get]
func (h *Handler) ListTransactions(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	w, err := h.wallets.GetByUserID(c.Request.Context(), p.UserID)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "wallet not found"})
			return
		}
		logger.Error("failed to load wallet", "user_id", p.UserID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load wallet"})
		return
	}

	entries, err := h.entries.ListByWallet(c.Request.Context(), w.ID, limit, offset)
	if err != nil {
		logger.Error("failed to load transactions", "wallet_id", w.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load transactions"})
		return
	}

	c.JSON(http.StatusOK, Views(entries))
}

func Views(entries []Entry) []TransactionView {
	out := make([]TransactionView, 0, len(entries))
	for _, e := range entries {
		out = append(out, TransactionView{
			Type:          e.Type,
			Amount:        e.Amount,
			AmountDisplay: money.Format(e.Amount),
			Status:        e.Status,
			Reference:     e.Reference,
			CreatedAt:     e.CreatedAt,
		})
	}
	return out
}
