package models

import (
	"time"
)

// Vehicle - транспортное средство барангая.
// Code - короткий идентификатор, по которому GPS-устройство сообщает о себе.
type Vehicle struct {
	ID            int64     `json:"id"`
	Code          string    `json:"code"`
	PlateNumber   string    `json:"plate_number"`
	Brand         string    `json:"brand,omitempty"`
	Model         string    `json:"model,omitempty"`
	Color         string    `json:"color,omitempty"`
	Year          string    `json:"year,omitempty"`
	ChassisNumber string    `json:"chassis_number,omitempty"`
	EngineNumber  string    `json:"engine_number,omitempty"`
	VehicleType   string    `json:"vehicle_type,omitempty"`
	BarangayID    int64     `json:"barangay_id"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
