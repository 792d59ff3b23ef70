package models

import (
	"time"
)

// User defines the user model based on the 'users' table.
// Account creation, passwords and verification are owned by the identity
// service; this API only reads users for attribution and existence checks.
type User struct {
	ID        int64     `json:"id" db:"id" example:"1"`
	Email     string    `json:"email" db:"email" example:"ada@shecodes.id"`
	Name      string    `json:"name" db:"name" example:"Ada Lovelace"`
	Role      RoleType  `json:"role" db:"role" example:"member"`
	Avatar    *string   `json:"avatar,omitempty" db:"avatar"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}
