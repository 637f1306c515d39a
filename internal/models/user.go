package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Role is a closed tag set, not a free-form string.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSupplier Role = "supplier"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSupplier
}

// Supplier is a registered account, keyed by username in the supplier
// collection.
type Supplier struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	StoreName    string    `json:"store_name"`
	Email        string    `json:"email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Session is the persisted session record. Guest sessions carry no
// credentials and exist only for the store name they were opened with.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	Guest     bool      `json:"guest,omitempty"`
	StoreName string    `json:"store_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Claims struct {
	SessionID uuid.UUID `json:"session_id"`
	Username  string    `json:"username"`
	Role      Role      `json:"role"`
	jwt.RegisteredClaims
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignupRequest struct {
	Username  string `json:"username" validate:"required,min=3,max=50"`
	Password  string `json:"password" validate:"required,min=4"`
	StoreName string `json:"store_name" validate:"required"`
	Email     string `json:"email,omitempty" validate:"omitempty,email"`
}

type GuestRequest struct {
	StoreName string `json:"store_name" validate:"required"`
}

type LoginResponse struct {
	Success        bool   `json:"success"`
	Token          string `json:"token,omitempty"`
	ExpiresIn      int    `json:"expires_in,omitempty"`
	Role           Role   `json:"role,omitempty"`
	RemainingTries int    `json:"remaining_tries,omitempty"`
	RetryAfter     int    `json:"retry_after,omitempty"`
	Message        string `json:"message,omitempty"`
}
