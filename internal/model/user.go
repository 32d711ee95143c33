package model

import "time"

// User là người dùng của cửa hàng (khách hoặc admin)
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // không trả hash qua JSON
	FullName     string     `json:"full_name"`
	Address      string     `json:"address"`
	Phone        string     `json:"phone"`
	AvatarURL    string     `json:"avatar_url"`
	Role         string     `json:"role"`
	IsVerified   bool       `json:"is_verified"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at,omitempty"`
}

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)
