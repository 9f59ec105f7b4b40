package models

import (
	"time"
)

// Статусы обращения
const (
	IncidentStatusPending    = "pending"
	IncidentStatusInProgress = "in_progress"
	IncidentStatusResolved   = "resolved"
	IncidentStatusClosed     = "closed"
)

// Уровни серьезности
const (
	IncidentSeverityLow      = "low"
	IncidentSeverityMedium   = "medium"
	IncidentSeverityHigh     = "high"
	IncidentSeverityCritical = "critical"
)

// IncidentReport - обращение об инциденте, поданное публично или через панель
type IncidentReport struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	Severity    string    `json:"severity"`
	Creator     string    `json:"creator"`
	Latitude    float64   `json:"latitude"`
	Longitude   float64   `json:"longitude"`
	ImagePath   string    `json:"image_path,omitempty"`
	BarangayID  *int64    `json:"barangay_id,omitempty"`
	// Имя барангая заполняется только выборкой для сводки панели
	BarangayName string    `json:"barangay_name,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IncidentFilter - критерии выборки инцидентов для панели
type IncidentFilter struct {
	BarangayID *int64
	Status     string
}
