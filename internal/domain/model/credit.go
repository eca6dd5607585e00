package model

import "time"

// DailyMessageMax is the per-day cap on consultant messages, independent of
// the credit balance. Both limits gate sending on their own.
const DailyMessageMax = 10

// SignupCredits is the balance a fresh account starts with.
const SignupCredits = 10

// Ledger action tags. These end up in credit_transactions rows and must stay
// stable for reconciliation.
const (
	CreditActionChat     = "ai_chat"
	CreditActionReferral = "referral_bonus"
	CreditActionSignup   = "signup_grant"
)

// CreditState is the quota snapshot the consultant engine works against.
// Credits live in the external credit store; the daily count lives in a
// day-scoped local counter.
type CreditState struct {
	Credits    int    `json:"credits"`
	DailyCount int    `json:"dailyCount"`
	DayMarker  string `json:"-"` // local calendar date the count belongs to
}

// CanSend reports whether a message may be accepted under both quotas.
func (c CreditState) CanSend() bool {
	return c.Credits > 0 && c.DailyCount < DailyMessageMax
}

// CreditTransaction is one ledger entry in the credit store.
type CreditTransaction struct {
	UserID    string
	Action    string
	Delta     int
	CreatedAt time.Time
}

// DayKey formats t as the local-calendar-day key used by the day counter.
func DayKey(t time.Time) string { return t.Format("2006-01-02") }
