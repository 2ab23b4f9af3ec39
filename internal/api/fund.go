package api

import (
	"net/http" // HTTP status codes

	"owambe/internal/service" // Transaction coordinator

	"github.com/gin-gonic/gin" // Gin web framework
)

// FundRequest represents a wallet fund initialization request
type FundRequest struct {
	Amount         int64  `json:"amount" binding:"required,gt=0"`     // Amount in kobo
	IdempotencyKey string `json:"idempotency_key" binding:"required"` // Dedupe token
}

// InitFundHandler starts a wallet top-up with the payment provider
func InitFundHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req FundRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := svc.InitializeFund(c.Request.Context(), userID, req.Amount, req.IdempotencyKey)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if result.Replayed {
			// Reused idempotency key: return the prior transaction
			c.JSON(http.StatusOK, gin.H{"transaction_id": result.TransactionID, "status": result.Status})
			return
		}
		c.JSON(http.StatusOK, gin.H{"authorization_url": result.AuthorizationURL, "reference": result.Reference})
	}
}
