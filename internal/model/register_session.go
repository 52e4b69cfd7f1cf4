package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Session status values.
const (
	SessionOpen   = "open"
	SessionClosed = "closed"
)

// RegisterSession represents one open-to-close operating period of a physical
// register drawer. Status: "open" | "closed". A partial unique index on
// (register_id) WHERE status = 'open' enforces at most one open session per
// register at the storage layer (see infra.applySchemaPatches), so concurrent
// opens race on the insert, never on an application-level check.
// Once closed the row is never written again.
type RegisterSession struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	RegisterID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"register_id"`
	UserID      uuid.UUID       `gorm:"type:uuid;not null" json:"user_id"`
	OpeningCash decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"opening_cash"`
	// ClosingCash is the operator-counted drawer amount, set at close.
	ClosingCash *decimal.Decimal `gorm:"type:decimal(12,2)" json:"closing_cash"`
	// OverShort = counted − expected; full precision, rounding is display-only.
	OverShort *decimal.Decimal `gorm:"type:decimal(12,2)" json:"over_short"`
	Status    string           `gorm:"type:varchar(20);not null;default:'open'" json:"status"`
	CloseNote *string          `json:"close_note"`
	OpenedAt  time.Time        `json:"opened_at"`
	ClosedAt  *time.Time       `json:"closed_at"`

	Movements []CashMovement `gorm:"foreignKey:SessionID" json:"-"`
}

// Cash movement types.
const (
	MovementCashIn  = "cash_in"
	MovementCashOut = "cash_out"
)

// CashMovement is an immutable entry in a session's manual cash ledger
// (float top-ups, petty cash withdrawals). Amount is always positive; the
// sign is carried by Type. Movements are NEVER updated or deleted — the
// repository interface deliberately has no update/delete methods.
type CashMovement struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	SessionID uuid.UUID       `gorm:"type:uuid;not null;index" json:"session_id"`
	UserID    uuid.UUID       `gorm:"type:uuid;not null" json:"user_id"`
	Type      string          `gorm:"type:varchar(20);not null" json:"type"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	Reason    string          `gorm:"not null" json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}
