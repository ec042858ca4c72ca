package models

import "time"

// Account is a registered customer or staff member.
// PasswordHash never leaves the service layer.
type Account struct {
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Email        string    `json:"email"`
	Role         string    `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
