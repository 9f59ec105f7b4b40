package models

import (
	"time"
)

// Barangay - административная единица, владеющая пользователями, водителями и транспортом
type Barangay struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BarangayInfo - барангай вместе со связанными записями для страницы info
type BarangayInfo struct {
	Barangay *Barangay  `json:"barangay"`
	Users    []*User    `json:"users"`
	Drivers  []*Driver  `json:"drivers"`
	Vehicles []*Vehicle `json:"vehicles"`
}
