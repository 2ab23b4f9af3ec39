package api

import (
	"net/http" // HTTP status codes
	"time"     // Schedule fields

	"owambe/internal/service" // Transaction coordinator

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateEventRequest represents a create-event request
type CreateEventRequest struct {
	Title      string     `json:"title" binding:"required"` // Event title
	Venue      string     `json:"venue"`                    // Venue, optional
	StartsAt   *time.Time `json:"starts_at"`                // Scheduled start, optional
	EndsAt     *time.Time `json:"ends_at"`                  // Scheduled end, optional
	PayoutMode string     `json:"payout_mode"`              // "hold" or "instant"
	Theme      string     `json:"theme"`                    // Visual theme, optional
}

// CreateEventHandler creates an event with its wallet, host membership, and
// default recipient
func CreateEventHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req CreateEventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If binding fails, return bad request
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		event, err := svc.CreateEvent(c.Request.Context(), userID, service.CreateEventInput{
			Title:      req.Title,      // Event title
			Venue:      req.Venue,      // Venue
			StartsAt:   req.StartsAt,   // Scheduled start
			EndsAt:     req.EndsAt,     // Scheduled end
			PayoutMode: req.PayoutMode, // Payout mode
			Theme:      req.Theme,      // Theme
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"event": event})
	}
}

// JoinEventRequest represents a join-event request
type JoinEventRequest struct {
	EventID string `json:"event_id" binding:"required"` // Event to join
}

// JoinEventHandler registers the caller as a guest and returns the realtime
// channel plus a screen-mode token
func JoinEventHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req JoinEventRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		result, err := svc.JoinEvent(c.Request.Context(), userID, req.EventID)
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

// AddRecipientRequest represents an add-recipient request
type AddRecipientRequest struct {
	EventID string `json:"event_id" binding:"required"` // Event the recipient belongs to
	Label   string `json:"label" binding:"required"`    // Display label
	Type    string `json:"type" binding:"required"`     // celebrant, dj, table
	TableNo *int   `json:"table_no"`                    // Table number, optional
}

// AddRecipientHandler adds a sprayable recipient to an event (host only)
func AddRecipientHandler(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			return
		}
		var req AddRecipientRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
			return
		}
		recipient, err := svc.AddRecipient(c.Request.Context(), userID, service.AddRecipientInput{
			EventID: req.EventID, // Event
			Label:   req.Label,   // Label
			Type:    req.Type,    // Recipient type
			TableNo: req.TableNo, // Table number
		})
		if err != nil {
			writeServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"recipient": recipient})
	}
}
