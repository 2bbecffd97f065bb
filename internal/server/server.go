package server

import (
	"context"
	"net/http"
	"time"

	"walletledger/internal/auth"
	"walletledger/internal/config"
	"walletledger/internal/deposit"
	"walletledger/internal/email"
	"walletledger/internal/ledger"
	"walletledger/internal/paystack"
	"walletledger/internal/principal"
	"walletledger/internal/transfer"
	"walletledger/internal/user"
	"walletledger/internal/wallet"
	"walletledger/internal/webhook"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router  *gin.Engine
	http    *http.Server
	limiter *RateLimiter
}

// New wires every repository, service and handler. mail may be nil, in
// which case no receipts are sent.
func New(db *sqlx.DB, cfg *config.Config, mail *email.Service) *Server {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestIDMiddleware(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(limiter),
	)

	users := user.NewRepository(db)
	wallets := wallet.NewRepository(db)
	entries := ledger.NewRepository(db)
	gateway := paystack.NewClient(cfg.Paystack)

	var (
		transferNotifier transfer.Notifier
		depositNotifier  webhook.Notifier
	)
	if mail != nil {
		receipts := email.NewReceipts(mail, users)
		transferNotifier = receipts
		depositNotifier = receipts
	}

	userHandler := user.NewHandler(user.NewService(db, users, wallets, cfg.JWTSecret))
	walletHandler := wallet.NewHandler(wallets)
	ledgerHandler := ledger.NewHandler(entries, wallets)
	transferHandler := transfer.NewHandler(transfer.NewService(db, wallets, entries, transferNotifier))
	depositHandler := deposit.NewHandler(deposit.NewService(db, wallets, entries, users, gateway))
	webhookHandler := webhook.NewHandler(webhook.NewReconciler(db, wallets, entries, cfg.Paystack.SecretKey, depositNotifier))

	router.GET("/health", Health)
	router.GET("/ready", Ready(db, mail))
	router.GET("/metrics", Metrics())
	SetupSwagger(router, cfg.Port)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.Middleware(cfg.JWTSecret, auth.NewKeyRepository(db))

	router.GET("/me", authMiddleware, userHandler.GetMe)

	walletGroup := router.Group("/wallet")
	walletGroup.POST("/paystack/webhook", webhookHandler.Paystack)

	protected := walletGroup.Group("")
	protected.Use(authMiddleware)
	{
		protected.POST("/deposit", auth.RequirePermission(principal.PermDeposit), depositHandler.Initiate)
		protected.GET("/deposit/:reference/status", auth.RequirePermission(principal.PermRead), depositHandler.Status)
		protected.POST("/transfer", auth.RequirePermission(principal.PermTransfer), transferHandler.Transfer)
		protected.GET("/balance", auth.RequirePermission(principal.PermRead), walletHandler.GetBalance)
		protected.GET("/transactions", auth.RequirePermission(principal.PermRead), ledgerHandler.ListTransactions)
	}

	return &Server{
		router:  router,
		limiter: limiter,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks until the server stops. It returns http.ErrServerClosed after
// Shutdown.
func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.http.Shutdown(ctx)
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, X-API-Key, X-Request-ID, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}
