package dto

import "github.com/shopspring/decimal"

type AppendMovementRequest struct {
	SessionID string          `json:"session_id" validate:"required,uuid"`
	Type      string          `json:"type"       validate:"required,oneof=cash_in cash_out"`
	Amount    decimal.Decimal `json:"amount"     validate:"required"`
	Reason    string          `json:"reason"     validate:"required"`
	// Confirmed acknowledges a cash-out above the configured threshold.
	Confirmed bool `json:"confirmed"`
}

type MovementResponse struct {
	ID           string          `json:"id"`
	SessionID    string          `json:"session_id"`
	UserID       string          `json:"user_id"`
	OperatorName string          `json:"operator_name,omitempty"`
	Type         string          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	Reason       string          `json:"reason"`
	CreatedAt    string          `json:"created_at"`
}

// AppendMovementResult is the discriminated append outcome: either the
// movement was written, or a large cash-out needs explicit confirmation
// first (nothing was written in that case).
type AppendMovementResult struct {
	RequiresConfirmation bool              `json:"requires_confirmation"`
	Threshold            *decimal.Decimal  `json:"threshold,omitempty"`
	Movement             *MovementResponse `json:"movement,omitempty"`
}

// LedgerTotals are the per-type sums over one session's movements, always
// computed from the ledger on read — never cached on the session row.
type LedgerTotals struct {
	CashInTotal  decimal.Decimal `json:"cash_in_total"`
	CashOutTotal decimal.Decimal `json:"cash_out_total"`
}

// LedgerResponse is the at-a-glance till view: movements plus the running
// balance independent of sales.
type LedgerResponse struct {
	SessionID  string             `json:"session_id"`
	Totals     LedgerTotals       `json:"totals"`
	CashInHand decimal.Decimal    `json:"cash_in_hand"`
	Movements  []MovementResponse `json:"movements"`
}
