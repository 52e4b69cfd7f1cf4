package model

import (
	"time"

	"github.com/google/uuid"
)

// User stores system operators. Authentication and user administration live
// in an external service; this table is read here only to resolve display
// names for sessions and movements.
// Role: "cashier" | "supervisor" | "admin"
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Username  string    `gorm:"uniqueIndex;not null" json:"username"`
	FullName  string    `gorm:"not null" json:"full_name"`
	Email     *string   `json:"email"`
	Role      string    `gorm:"type:varchar(20);not null" json:"role"`
	Active    bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
