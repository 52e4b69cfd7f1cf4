package dto

import "github.com/shopspring/decimal"

// ProductSale is one line of the per-product sales rollup, accumulated across
// every order item sharing a product_id, in first-seen order.
type ProductSale struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `json:"total"`
}

// SalesSummary is the derived (never persisted) payment and product rollup
// for a session's orders. PaymentBreakdown keys are lower-cased method
// labels; unrecognized labels land in "other", so the values always sum to
// TotalSales.
type SalesSummary struct {
	PaymentBreakdown map[string]decimal.Decimal `json:"payment_breakdown"`
	ProductsSold     []ProductSale              `json:"products_sold"`
	TotalSales       decimal.Decimal            `json:"total_sales"`
	TotalRefund      decimal.Decimal            `json:"total_refund"`
	TotalExpense     decimal.Decimal            `json:"total_expense"`
}

// ZReportResponse is the archived end-of-session snapshot.
type ZReportResponse struct {
	ID               string                     `json:"id"`
	SessionID        string                     `json:"session_id"`
	RegisterID       string                     `json:"register_id"`
	UserID           string                     `json:"user_id"`
	OperatorName     string                     `json:"operator_name,omitempty"`
	OpeningCash      decimal.Decimal            `json:"opening_cash"`
	ClosingCash      decimal.Decimal            `json:"closing_cash"`
	OverShort        decimal.Decimal            `json:"over_short"`
	TotalSales       decimal.Decimal            `json:"total_sales"`
	PaymentBreakdown map[string]decimal.Decimal `json:"payment_breakdown"`
	ProductsSold     []ProductSale              `json:"products_sold"`
	OpenedAt         string                     `json:"opened_at"`
	ClosedAt         string                     `json:"closed_at"`
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}
