package models

import (
	"time"
)

// Session - сессия панели управления, хранится в Redis по токену
type Session struct {
	Token           string    `json:"token"`
	UserID          int64     `json:"user_id"`
	TwoFactorPassed bool      `json:"two_factor_passed"`
	CreatedAt       time.Time `json:"created_at"`
}

// DashboardStats - сводка для главной страницы панели
type DashboardStats struct {
	TotalAdmins     int               `json:"total_admins"`
	TotalVehicles   int               `json:"total_vehicles"`
	TotalDrivers    int               `json:"total_drivers"`
	TotalBarangays  int               `json:"total_barangays"`
	RecentIncidents []*IncidentReport `json:"recent_incidents"`
}
