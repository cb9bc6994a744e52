package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/server/handlers"
)

// Handlers groups the adapters mounted on the engine. Webhook is optional and
// only mounted when WhatsApp is configured.
type Handlers struct {
	Ledger  *handlers.LedgerHandler
	Parties *handlers.PartyHandler
	Webhook *handlers.WebhookHandler
}

// New wires the Gin engine with required routes and middlewares.
func New(h Handlers, logger *zap.Logger) *gin.Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(zapLoggerMiddleware(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		api.GET("/feed-prices", h.Ledger.FeedPrices)
		api.GET("/stock/:category", h.Ledger.Stock)
		api.GET("/dashboard", h.Ledger.Dashboard)

		api.GET("/bills/:category", h.Ledger.ListBills)
		api.POST("/bills/:category", h.Ledger.CreateBill)
		api.DELETE("/bills/:category/:billNo", h.Ledger.DeleteBill)

		api.GET("/customer-bills/:category", h.Ledger.ListCustomerBills)
		api.DELETE("/customer-bills/:category/:billNo", h.Ledger.DeleteCustomerBill)

		api.GET("/purchases/:category", h.Ledger.ListPurchases)
		api.POST("/purchases/:category", h.Ledger.CreatePurchase)
		api.DELETE("/purchases/:category/:invoiceNo", h.Ledger.DeletePurchase)

		api.GET("/purchase-ledger/:category", h.Ledger.PurchaseLedger)
		api.GET("/purchase-ledger/:category/recent", h.Ledger.RecentPurchases)

		api.GET("/parties", h.Parties.ListParties)
		api.POST("/parties", h.Parties.CreateParty)
		api.PUT("/parties/:id", h.Parties.UpdateParty)
		api.DELETE("/parties/:id", h.Parties.DeleteParty)
		api.GET("/parties/:id/statement", h.Parties.Statement)

		api.GET("/payments/:category", h.Parties.ListPayments)
		api.POST("/payments", h.Parties.CreatePayment)
		api.PUT("/payments/:id", h.Parties.UpdatePayment)
		api.DELETE("/payments/:id", h.Parties.DeletePayment)
	}

	if h.Webhook != nil {
		r.GET("/webhook", h.Webhook.Verify)
		r.POST("/webhook", h.Webhook.Receive)
		r.POST("/send-message", h.Webhook.SendMessage)
	}

	logger.Info("router initialized", zap.Bool("webhook", h.Webhook != nil))

	return r
}

func zapLoggerMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("request completed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
			zap.String("client_ip", c.ClientIP()))
	}
}
