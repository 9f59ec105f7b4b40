package models

import (
	"time"
)

// VehicleLocation - одна GPS-точка транспортного средства.
// Серия точек append-only: записи никогда не обновляются и не удаляются
// трекинг-пайплайном, временная метка назначается при вставке.
type VehicleLocation struct {
	ID        int64     `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	VehicleID int64     `json:"vehicle_id"`
	CreatedAt time.Time `json:"created_at"`
}
