package service

import "math"

// Window describes one rolling rate-limit window
type Window struct {
	Seconds     int // Window length in seconds
	MaxRequests int // Maximum requests allowed per window
}

// Limits gathers every tunable amount, fee, and throttle in one place so the
// numbers are not scattered as magic constants through the workflows.
type Limits struct {
	FeeRate          float64  // Platform fee rate applied to spray gross
	FeeCap           int64    // Platform fee ceiling, in kobo
	MinSpray         int64    // Minimum spray amount, in kobo
	MaxSpray         int64    // Maximum spray amount, in kobo
	MinFund          int64    // Minimum fund amount, in kobo
	MaxFund          int64    // Maximum fund amount, in kobo
	MinWithdraw      int64    // Minimum withdrawal amount, in kobo
	WithdrawalCap24h int64    // Rolling 24-hour withdrawal cap, in kobo
	MinBurst         int      // Minimum burst count
	MaxBurst         int      // Maximum burst count
	RiskDivisor      int64    // Divisor applied to gross in the risk score
	SprayWindows     []Window // Rate-limit windows applied to sprays, all must pass
}

// DefaultLimits returns the production limits
func DefaultLimits() Limits {
	return Limits{
		FeeRate:          0.02,      // 2% platform fee
		FeeCap:           50000,     // Capped at 500 NGN
		MinSpray:         10000,     // 100 NGN
		MaxSpray:         5000000,   // 50,000 NGN
		MinFund:          10000,     // 100 NGN
		MaxFund:          200000000, // 2,000,000 NGN
		MinWithdraw:      10000,     // 100 NGN
		WithdrawalCap24h: 2000000,   // 20,000 NGN per rolling day
		MinBurst:         1,
		MaxBurst:         50,
		RiskDivisor:      100000,
		SprayWindows: []Window{
			{Seconds: 10, MaxRequests: 10}, // Short burst window
			{Seconds: 60, MaxRequests: 30}, // Sustained window
		},
	}
}

// PlatformFee returns min(round(gross * rate), cap). Pure function.
func (l Limits) PlatformFee(gross int64) int64 {
	fee := int64(math.Round(float64(gross) * l.FeeRate))
	if fee > l.FeeCap {
		fee = l.FeeCap
	}
	return fee
}

// RiskScore derives the informational fraud signal from amount and burst
// count: min(100, floor(gross / divisor) + burst). Persisted on the
// transaction, never used as a gate.
func (l Limits) RiskScore(gross int64, burstCount int) int {
	score := int(gross/l.RiskDivisor) + burstCount
	if score > 100 {
		score = 100
	}
	return score
}

// validAmount checks that amount is within [min, max]
func validAmount(amount, min, max int64) bool {
	return amount >= min && amount <= max
}
