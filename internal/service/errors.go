package service

import "errors"

// Sentinel errors returned by the service layer. The API layer maps these to
// HTTP statuses; anything else is treated as an internal error.
var (
	ErrValidation        = errors.New("invalid request")                    // Malformed or out-of-range input, no state change
	ErrUnauthorized      = errors.New("unauthorized")                       // Missing or invalid principal
	ErrNotEventMember    = errors.New("user is not a member of this event") // Sender has not joined the event
	ErrHostRequired      = errors.New("host role required")                 // Action restricted to event hosts
	ErrEventNotFound     = errors.New("event not found")                    // Referenced event absent
	ErrRecipientNotFound = errors.New("recipient not found")                // Referenced recipient absent
	ErrWalletNotFound    = errors.New("wallet not found")                   // Referenced wallet absent
	ErrTxnNotFound       = errors.New("transaction not found")              // Referenced transaction absent
	ErrPaymentNotFound   = errors.New("payment reference not found")        // Referenced provider payment absent
	ErrRateLimited       = errors.New("rate limit exceeded")                // Window exceeded, no state change besides the counter
	ErrPhoneVerification = errors.New("phone verification required")        // Withdrawal gate not passed
	ErrWithdrawalCap     = errors.New("daily withdrawal cap exceeded")      // Rolling 24h cap would be exceeded
	ErrInvalidSignature  = errors.New("invalid webhook signature")          // HMAC mismatch on an inbound webhook
)
