package models

import (
	"time"
)

// Типы учетных записей
const (
	UserTypeAdmin         = "admin"
	UserTypeBarangayAdmin = "barangay_admin"
	UserTypeDriver        = "driver"
)

// User - учетная запись панели управления
type User struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	Email            string    `json:"email"`
	PasswordHash     string    `json:"-"`
	UserType         string    `json:"user_type"`
	BarangayID       *int64    `json:"barangay_id,omitempty"`
	IsActive         bool      `json:"is_active"`
	TwoFactorEnabled bool      `json:"two_factor_enabled"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
