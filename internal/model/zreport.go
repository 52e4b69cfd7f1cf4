package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ZReport is the frozen end-of-session financial snapshot, created exactly
// once when a session closes. PaymentBreakdown and ProductsSold are captured
// as JSON at close time so that later changes to the underlying orders (a
// late refund, a voided line) never alter an archived report.
// The unique index on session_id makes a second Generate a no-op.
type ZReport struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex" json:"session_id"`
	RegisterID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"register_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null" json:"user_id"`
	OpeningCash decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	ClosingCash decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"closing_cash"`
	OverShort   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"over_short"`
	TotalSales  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_sales"`
	// PaymentBreakdown holds {method: amount} pairs, ProductsSold the ordered
	// per-product rollup — both serialized dto shapes.
	PaymentBreakdown []byte    `gorm:"type:jsonb;not null" json:"-"`
	ProductsSold     []byte    `gorm:"type:jsonb;not null" json:"-"`
	OpenedAt         time.Time `json:"opened_at"`
	ClosedAt         time.Time `json:"closed_at"`
	CreatedAt        time.Time `json:"created_at"`
}
