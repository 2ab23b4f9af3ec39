package api

import (
	"context"  // Context for cache invalidation
	"net/http" // HTTP status codes

	"owambe/internal/service" // Transaction coordinator
	"owambe/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// WithdrawRequest represents a withdrawal request
type WithdrawRequest struct {
	Amount        int64  `json:"amount" binding:"required,gt=0"`    // Amount in kobo
	BankCode      string `json:"bank_code" binding:"required"`      // Destination bank code
	AccountNumber string `json:"account_number" binding:"required"` // Destination account number
}

// WithdrawHandler queues a withdrawal for the authenticated user
func WithdrawHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req WithdrawRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := svc.Withdraw(c.Request.Context(), userID, service.WithdrawInput{
			Amount:        req.Amount,        // Amount in kobo
			BankCode:      req.BankCode,      // Bank code
			AccountNumber: req.AccountNumber, // Account number
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		// The hold posted: drop the user's cached balance and history
		utils.InvalidateWallet(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"status": result.Status, "transaction_id": result.TransactionID})
	}
}
