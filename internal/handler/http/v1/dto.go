package v1

import (
	"time"
)

// StoreLocationRequest DTO для отчета GPS-устройства.
// Координаты без required: ноль - валидная точка (экватор, нулевой меридиан).
// @Description DTO для отчета GPS-устройства о позиции транспорта
type StoreLocationRequest struct {
	Code      string  `json:"code" validate:"required"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// StoreLocationResponse DTO для ответа устройству
// @Description DTO для ответа устройству
type StoreLocationResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// LocationResponse DTO для одной GPS-точки в истории транспорта
// @Description DTO для одной GPS-точки
type LocationResponse struct {
	ID        int64     `json:"id"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	CreatedAt time.Time `json:"created_at"`
	VehicleID int64     `json:"vehicle_id"`
}

// BarangayRequest DTO для создания/обновления барангая
// @Description DTO для создания/обновления барангая
type BarangayRequest struct {
	Name      string  `json:"name" validate:"required,max=255"`
	Latitude  float64 `json:"latitude" validate:"latitude"`
	Longitude float64 `json:"longitude" validate:"longitude"`
}

// AdminUserRequest DTO для учетной записи администратора барангая.
// Пустой пароль при обновлении оставляет текущий.
type AdminUserRequest struct {
	Name     string `json:"name" validate:"required,max=255"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"omitempty,min=8"`
	IsActive *bool  `json:"is_active,omitempty"`
}

// DriverRequest DTO для создания/обновления водителя
// @Description DTO для создания/обновления водителя
type DriverRequest struct {
	Name          string `json:"name" validate:"required,max=255"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"omitempty,min=8"`
	LicenseNumber string `json:"drivers_license_number" validate:"required,max=255"`
	ContactNumber string `json:"contact_number" validate:"omitempty,max=20"`
}

// VehicleRequest DTO для создания/обновления транспорта
// @Description DTO для создания/обновления транспорта
type VehicleRequest struct {
	Code          string `json:"code" validate:"required,max=50"`
	PlateNumber   string `json:"plate_number" validate:"required,max=50"`
	Brand         string `json:"brand" validate:"omitempty,max=100"`
	Model         string `json:"model" validate:"omitempty,max=100"`
	Color         string `json:"color" validate:"omitempty,max=50"`
	Year          string `json:"year" validate:"omitempty,max=4"`
	ChassisNumber string `json:"chassis_number" validate:"omitempty,max=100"`
	EngineNumber  string `json:"engine_number" validate:"omitempty,max=100"`
	VehicleType   string `json:"vehicle_type" validate:"omitempty,max=50"`
	BarangayID    int64  `json:"barangay_id" validate:"required"`
}

// SubmitIncidentRequest DTO публичной формы обращения (multipart)
// @Description DTO публичной формы обращения об инциденте
type SubmitIncidentRequest struct {
	Title       string  `form:"title" validate:"required,max=255"`
	Description string  `form:"description" validate:"required"`
	Creator     string  `form:"creator" validate:"required,max=255"`
	Latitude    float64 `form:"latitude" validate:"latitude"`
	Longitude   float64 `form:"longitude" validate:"longitude"`
	Status      string  `form:"status" validate:"omitempty,oneof=pending in_progress resolved closed"`
	Severity    string  `form:"severity" validate:"omitempty,oneof=low medium high critical"`
	BarangayID  *int64  `form:"barangay_id"`
}

// IncidentRequest DTO для создания/обновления обращения из панели
// @Description DTO для создания/обновления обращения
type IncidentRequest struct {
	Title       string  `json:"title" validate:"required,max=255"`
	Description string  `json:"description" validate:"required"`
	Status      string  `json:"status" validate:"required,oneof=pending in_progress resolved closed"`
	Severity    string  `json:"severity" validate:"required,oneof=low medium high critical"`
	Creator     string  `json:"creator" validate:"required,max=255"`
	Latitude    float64 `json:"latitude" validate:"latitude"`
	Longitude   float64 `json:"longitude" validate:"longitude"`
	BarangayID  *int64  `json:"barangay_id,omitempty"`
}

// LoginRequest DTO для входа в панель
// @Description DTO для входа в панель
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse DTO для ответа на вход
// @Description DTO для ответа на вход
type LoginResponse struct {
	Token             string `json:"token"`
	TwoFactorRequired bool   `json:"two_factor_required"`
}

// VerifyTwoFactorRequest DTO для подтверждения кода 2FA
// @Description DTO для подтверждения кода 2FA
type VerifyTwoFactorRequest struct {
	Code string `json:"two_factor_code" validate:"required"`
}
