package api

import (
	"net/http" // HTTP status codes

	"owambe/internal/service" // Webhook reconciler

	"github.com/gin-gonic/gin" // Gin web framework
)

// PaystackWebhookHandler receives provider notifications. No bearer auth:
// the provider authenticates with a signature over the exact raw body.
func PaystackWebhookHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		rawBody, err := c.GetRawData() // The signature covers the exact bytes
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}
		signature := c.GetHeader("x-paystack-signature")
		if err := svc.HandlePaystackWebhook(c.Request.Context(), signature, rawBody); err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"received": true})
	}
}
