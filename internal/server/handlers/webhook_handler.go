package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/feedbook/internal/domain/models"
	service "github.com/mamadbah2/feedbook/internal/service/whatsapp"
	"github.com/mamadbah2/feedbook/pkg/response"
)

// WebhookHandler exposes the chat query bot: inbound messages are parsed as
// ledger commands and answered on the same conversation.
type WebhookHandler struct {
	svc    service.MessagingService
	logger *zap.Logger
}

// NewWebhookHandler constructs the bot's HTTP adapter.
func NewWebhookHandler(svc service.MessagingService, logger *zap.Logger) *WebhookHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &WebhookHandler{svc: svc, logger: logger}
}

// Verify completes the subscription handshake by echoing hub.challenge.
func (h *WebhookHandler) Verify(c *gin.Context) {
	challenge, err := h.svc.VerifyWebhookToken(
		c.Query("hub.mode"),
		c.Query("hub.verify_token"),
		c.Query("hub.challenge"),
	)
	if err != nil {
		h.logger.Warn("webhook verification failed", zap.Error(err))
		c.String(http.StatusForbidden, "verification failed")
		return
	}

	c.String(http.StatusOK, challenge)
}

// Receive answers the commands carried by a callback. Callbacks with only
// delivery receipts are acknowledged without dispatch. Failures are logged
// and still acknowledged; Meta redelivers anything that is not a 200.
func (h *WebhookHandler) Receive(c *gin.Context) {
	var payload models.WebhookPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.logger.Warn("invalid webhook payload", zap.Error(err))
		badRequest(c, "invalid payload")
		return
	}
	if payload.Object != "" && payload.Object != models.WhatsAppObject {
		h.logger.Debug("ignoring webhook object", zap.String("object", payload.Object))
		c.Status(http.StatusOK)
		return
	}

	messages := payload.Messages()
	if len(messages) == 0 {
		c.Status(http.StatusOK)
		return
	}

	if err := h.svc.HandleWebhook(c.Request.Context(), payload); err != nil {
		h.logger.Error("failed answering commands", zap.Int("messages", len(messages)), zap.Error(err))
	} else {
		h.logger.Debug("answered commands", zap.Int("messages", len(messages)))
	}

	c.Status(http.StatusOK)
}

// SendMessage lets the operator push a notice, such as a price update, to a customer.
func (h *WebhookHandler) SendMessage(c *gin.Context) {
	var req models.OutboundMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid outbound payload", zap.Error(err))
		badRequest(c, "invalid request body")
		return
	}

	if err := h.svc.SendOutbound(c.Request.Context(), req); err != nil {
		h.logger.Error("failed sending outbound", zap.Error(err))
		c.JSON(http.StatusBadGateway, response.Error(http.StatusBadGateway, "unable to send message"))
		return
	}

	c.JSON(http.StatusAccepted, response.Success(http.StatusAccepted, gin.H{"to": req.To}))
}
