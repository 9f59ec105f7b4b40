package models

import (
	"time"
)

// Driver - водитель барангая, связанный с учетной записью пользователя
type Driver struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	LicenseNumber string    `json:"drivers_license_number"`
	ContactNumber string    `json:"contact_number,omitempty"`
	BarangayID    int64     `json:"barangay_id"`
	UserID        int64     `json:"user_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
