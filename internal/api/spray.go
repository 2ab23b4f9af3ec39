package api

import (
	"context"  // Context for cache invalidation
	"net/http" // HTTP status codes

	"owambe/internal/service" // Transaction coordinator
	"owambe/internal/utils"   // Cache helpers

	"github.com/gin-gonic/gin"     // Gin web framework
	"github.com/redis/go-redis/v9" // Redis client
)

// SprayRequest represents a spray request
type SprayRequest struct {
	EventID        string `json:"event_id" binding:"required"`        // Event being sprayed at
	RecipientID    string `json:"recipient_id" binding:"required"`    // Recipient being sprayed
	Amount         int64  `json:"amount" binding:"required,gt=0"`     // Gross amount in kobo
	BurstCount     int    `json:"burst_count"`                        // Visual burst count, defaults to 1
	VibePack       string `json:"vibe_pack"`                          // Cosmetic tag
	IdempotencyKey string `json:"idempotency_key" binding:"required"` // Dedupe token
}

// SprayHandler runs the spray workflow for the authenticated sender
func SprayHandler(svc *service.Service, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req SprayRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		if req.BurstCount == 0 {
			req.BurstCount = 1 // Default burst
		}
		result, err := svc.Spray(c.Request.Context(), userID, service.SprayInput{
			EventID:        req.EventID,        // Event
			RecipientID:    req.RecipientID,    // Recipient
			Amount:         req.Amount,         // Gross amount
			BurstCount:     req.BurstCount,     // Burst count
			VibePack:       req.VibePack,       // Vibe pack
			IdempotencyKey: req.IdempotencyKey, // Dedupe token
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		if result.Replayed {
			// Reused idempotency key: return the prior result, nothing moved
			c.JSON(http.StatusOK, gin.H{"transaction_id": result.TransactionID, "status": result.Status})
			return
		}
		// Money moved: drop the sender's cached balance and history
		utils.InvalidateWallet(context.Background(), rdb, userID)
		c.JSON(http.StatusOK, gin.H{"spray_id": result.SprayID, "transaction_id": result.TransactionID})
	}
}
