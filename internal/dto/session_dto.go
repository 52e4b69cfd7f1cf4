package dto

import "github.com/shopspring/decimal"

// ─── Request DTOs ────────────────────────────────────────────────────────────

type OpenSessionRequest struct {
	RegisterID string `json:"register_id" validate:"required,uuid"`
	// OpeningCash is a pointer so a missing field is distinguishable from an
	// explicit 0 (a valid empty float). Presence and sign are checked in the
	// service; the validator's decimal shim would collapse *0 into "absent".
	OpeningCash *decimal.Decimal `json:"opening_cash"`
}

type CloseSessionRequest struct {
	// CountedAmount is the physically counted drawer total.
	CountedAmount decimal.Decimal `json:"counted_amount" validate:"min=0"`
	// Note explains a discrepancy; required whenever the rounded over/short
	// is non-zero.
	Note string `json:"note"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type SessionResponse struct {
	ID           string           `json:"id"`
	RegisterID   string           `json:"register_id"`
	UserID       string           `json:"user_id"`
	OperatorName string           `json:"operator_name,omitempty"`
	OpeningCash  decimal.Decimal  `json:"opening_cash"`
	ClosingCash  *decimal.Decimal `json:"closing_cash,omitempty"`
	OverShort    *decimal.Decimal `json:"over_short,omitempty"`
	Status       string           `json:"status"`
	CloseNote    *string          `json:"close_note,omitempty"`
	OpenedAt     string           `json:"opened_at"`
	ClosedAt     *string          `json:"closed_at,omitempty"`
}

// Reconciliation is the expected-vs-counted result for one close attempt.
type Reconciliation struct {
	Expected     decimal.Decimal `json:"expected"`
	Counted      decimal.Decimal `json:"counted"`
	Difference   decimal.Decimal `json:"difference"` // >0 over, <0 short
	RequiresNote bool            `json:"requires_note"`
}

// CloseSessionResponse is the discriminated close result: a successful close
// carries the final session and its frozen report; LargeDiscrepancy warns the
// operator that the over/short exceeded the configured threshold (the close
// still went through).
type CloseSessionResponse struct {
	Session          SessionResponse `json:"session"`
	Reconciliation   Reconciliation  `json:"reconciliation"`
	LargeDiscrepancy bool            `json:"large_discrepancy"`
	ZReport          ZReportResponse `json:"z_report"`
}

type SessionListResponse struct {
	Data  []SessionResponse `json:"data"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}
