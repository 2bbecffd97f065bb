package deposit

import (
	"errors"
	"net/http"

	"walletledger/internal/api"
	"walletledger/internal/auth"
	"walletledger/internal/paystack"
	"walletledger/internal/wallet"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Initiate godoc
// @Summary      Initialize deposit
// @Description  Records a pending deposit and opens a Paystack checkout for it.
// @Tags         wallet
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Accept       json
// @Produce      json
// @Param        request  body      DepositRequest  true  "Deposit"
// @Success      200      {object}  DepositResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      502      {object}  api.ErrorResponse
// @Router       /wallet/deposit [post]
func (h *Handler) Initiate(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	var req DepositRequest
	if !api.BindJSON(c, &req) {
		return
	}

	res, err := h.service.Initiate(c.Request.Context(), p, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
		case errors.Is(err, wallet.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "wallet not found"})
		case errors.Is(err, paystack.ErrGatewayUnavailable):
			c.JSON(http.StatusBadGateway, api.ErrorResponse{Error: "payment gateway unavailable, please retry"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to initialize deposit"})
		}
		return
	}

	c.JSON(http.StatusOK, DepositResponse{Reference: res.Reference, AuthorizationURL: res.AuthorizationURL})
}

// Status godoc
// @Summary      Deposit status
// @Description  Status and amount of one of the caller's deposits.
// @Tags         wallet
// @Security     BearerAuth
// @Security     ApiKeyAuth
// @Produce      json
// @Param        reference  path      string  true  "Deposit reference"
// @Success      200        {object}  StatusResponse
// @Failure      404        {object}  api.ErrorResponse
// @Router       /wallet/deposit/{reference}/status [get]
func (h *Handler) Status(c *gin.Context) {
	p, ok := auth.GetPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "user not authenticated"})
		return
	}

	res, err := h.service.Status(c.Request.Context(), p, c.Param("reference"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound), errors.Is(err, wallet.ErrWalletNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: "not found"})
		default:
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: "failed to load deposit"})
		}
		return
	}

	c.JSON(http.StatusOK, res)
}
