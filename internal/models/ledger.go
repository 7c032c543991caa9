package models

import "time"

type LedgerEntryType string

const (
	EntryQuizStake      LedgerEntryType = "quiz_stake"
	EntryQuizPayout     LedgerEntryType = "quiz_payout"
	EntryReviewWager    LedgerEntryType = "review_wager"
	EntryReviewPayout   LedgerEntryType = "review_payout"
	EntryReviewPenalty  LedgerEntryType = "review_penalty"
	EntryToleranceBleed LedgerEntryType = "tolerance_bleed"
	EntryAdjustment     LedgerEntryType = "adjustment"
)

// TokenLedgerEntry is one append-only balance movement. Entries are never
// updated or deleted; BalanceAfter must equal the running sum of Amount in
// id order for the user.
type TokenLedgerEntry struct {
	ID           int64           `json:"id"`
	UserID       int64           `json:"user_id"`
	EntryType    LedgerEntryType `json:"entry_type"`
	Amount       int             `json:"amount"`
	BalanceAfter int             `json:"balance_after"`
	Reference    *string         `json:"reference,omitempty"`
	Description  string          `json:"description"`
	CreatedAt    time.Time       `json:"created_at"`
}

type LedgerListResponse struct {
	Entries []TokenLedgerEntry `json:"entries"`
	Balance int                `json:"balance"`
	Total   int                `json:"total"`
}
