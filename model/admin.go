package model

import (
	"time"

	"github.com/bondyapp/bondy/constant"
)

// AdminEntity represents a staff identity document. Admins and users are
// deliberately separate actor types with no shared collection.
type AdminEntity struct {
	ID               string             `bson:"_id" json:"id"`
	Name             string             `bson:"name" json:"name"`
	Email            string             `bson:"email" json:"email"`
	Phone            string             `bson:"phone" json:"phone"`
	PasswordHash     string             `bson:"password_hash" json:"-"`
	Role             constant.AdminRole `bson:"role" json:"role"`
	IsActive         bool               `bson:"is_active" json:"is_active"`
	FailedLoginCount int                `bson:"failed_login_count" json:"-"`
	LockedUntil      *time.Time         `bson:"locked_until,omitempty" json:"-"`
	CreatedAt        time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt        *time.Time         `bson:"updated_at,omitempty" json:"updated_at,omitempty"`
}

// Locked reports whether the account is inside its lockout cool-down.
func (a *AdminEntity) Locked(now time.Time) bool {
	return a.LockedUntil != nil && now.Before(*a.LockedUntil)
}

type AdminFilter struct {
	ID    string
	Email string
	Phone string
}

// AdminLoginRequest for admin console login
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type AdminLoginResponse struct {
	Name  string             `json:"name"`
	Email string             `json:"email"`
	Role  constant.AdminRole `json:"role"`
	Token string             `json:"token"`
}
