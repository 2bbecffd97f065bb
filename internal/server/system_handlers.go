package server

import (
	"context"
	"net/http"
	"time"

	"walletledger/internal/api"
	"walletledger/internal/email"
	"walletledger/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} api.HealthResponse
// @Router       /health [get]
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, api.HealthResponse{Status: "ok"})
}

// @Summary      Prometheus metrics
// @Description  Exposes Prometheus metrics in text format
// @Tags         system
// @Produce      text/plain
// @Success      200 {string} string
// @Router       /metrics [get]
func Metrics() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}

type ReadyResponse struct {
	Status     string `json:"status" example:"ok"`
	Database   string `json:"database" example:"ok"`
	EmailQueue string `json:"email_queue" example:"ok"`
	QueueDepth int64  `json:"queue_depth" example:"0"`
}

// Ready reports whether the database and the mail queue answer. A down mail
// queue is reported but does not fail the check.
// @Summary      Readiness check
// @Tags         system
// @Produce      json
// @Success      200 {object} ReadyResponse
// @Failure      503 {object} ReadyResponse
// @Router       /ready [get]
func Ready(db *sqlx.DB, mail *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		resp := ReadyResponse{Status: "ok", Database: "ok", EmailQueue: "disabled"}
		code := http.StatusOK

		if err := db.PingContext(ctx); err != nil {
			logger.WithError(err).Error("readiness: database ping failed")
			resp.Status, resp.Database = "unavailable", "unavailable"
			code = http.StatusServiceUnavailable
		}

		if mail != nil {
			if err := mail.Ping(ctx); err != nil {
				resp.EmailQueue = "unavailable"
			} else {
				resp.EmailQueue = "ok"
				resp.QueueDepth = mail.QueueLength(ctx)
			}
		}

		c.JSON(code, resp)
	}
}
