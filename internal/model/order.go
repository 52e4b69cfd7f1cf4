package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order is a completed point-of-sale transaction owned by the external sales
// subsystem. This service only ever reads orders — it never creates, updates
// or deletes them.
//
// PaymentData is a heterogeneous legacy payload: depending on the client
// version that rang the sale up it may be a JSON object with a "payments"
// array (split payment), an object with a single method descriptor, a bare
// array of descriptors, or any of those wrapped in a JSON string. The
// service normalizes it at ingestion (see service.NormalizePayments); the
// PaymentMethod column is the oldest-generation fallback.
type Order struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RegisterID    uuid.UUID       `gorm:"type:uuid;index" json:"register_id"`
	SessionID     *uuid.UUID      `gorm:"type:uuid;index" json:"session_id"`
	StoreID       *uuid.UUID      `gorm:"type:uuid" json:"store_id"`
	Total         decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
	PaymentMethod *string         `gorm:"type:varchar(30)" json:"payment_method"`
	PaymentData   []byte          `gorm:"type:jsonb" json:"payment_data"`
	Status        string          `gorm:"type:varchar(20)" json:"status"`
	Timestamp     time.Time       `json:"timestamp"`
}

// OrderItem is a sale line item, read-only like its parent Order.
type OrderItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID   uuid.UUID       `gorm:"type:uuid;index" json:"order_id"`
	ProductID uuid.UUID       `gorm:"type:uuid" json:"product_id"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2)" json:"total"`
}

// Expense is an out-of-drawer business expense recorded against a session by
// the external expense tracker. Read-only here; feeds the totalExpense
// accumulator of the sales summary.
type Expense struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	SessionID *uuid.UUID      `gorm:"type:uuid;index" json:"session_id"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Reason    string          `json:"reason"`
	CreatedAt time.Time       `json:"created_at"`
}
