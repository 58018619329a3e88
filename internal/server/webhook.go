package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/subsynclabs/subsync/internal/observability"
	"github.com/subsynclabs/subsync/internal/webhook"
	"go.uber.org/zap"
)

const signatureHeader = "Stripe-Signature"

// HandleStripeWebhook accepts provider event deliveries. Any non-2xx
// response relies on the provider's redelivery policy for recovery.
func (s *Server) HandleStripeWebhook(c *gin.Context) {
	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unreadable body"})
		return
	}

	err = s.webhookSvc.Process(c.Request.Context(), payload, c.GetHeader(signatureHeader))
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"received": true})
	case webhook.IsAuthError(err):
		s.log.Warn("webhook rejected",
			zap.Error(err),
			zap.Any("headers", observability.MaskHeaders(c.Request.Header)))
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid signature"})
	case errors.Is(err, webhook.ErrConfigMissing):
		s.log.Error("webhook secret not configured")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server configuration error"})
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "webhook handler failed"})
	}
}
