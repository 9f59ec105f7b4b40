package service

import (
	"context"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
)

// BarangayRepository определяет контракт для работы с бд барангаев
type BarangayRepository interface {
	Create(ctx context.Context, barangay *models.Barangay) error
	GetByID(ctx context.Context, id int64) (*models.Barangay, error)
	Update(ctx context.Context, barangay *models.Barangay) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Barangay, error)
	Count(ctx context.Context) (int, error)
}

// UserRepository определяет контракт для работы с бд учетных записей
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id int64) error
	ListByBarangay(ctx context.Context, barangayID int64) ([]*models.User, error)
	CountByType(ctx context.Context, userType string) (int, error)
}

// DriverRepository определяет контракт для работы с бд водителей
type DriverRepository interface {
	Create(ctx context.Context, driver *models.Driver) error
	GetByID(ctx context.Context, id int64) (*models.Driver, error)
	Update(ctx context.Context, driver *models.Driver) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Driver, error)
	ListByBarangay(ctx context.Context, barangayID int64) ([]*models.Driver, error)
	Count(ctx context.Context) (int, error)
}

// VehicleRepository определяет контракт для работы с бд транспорта
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id int64) (*models.Vehicle, error)
	GetByCode(ctx context.Context, code string) (*models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]*models.Vehicle, error)
	ListByBarangay(ctx context.Context, barangayID int64) ([]*models.Vehicle, error)
	Count(ctx context.Context) (int, error)
}

// LocationRepository определяет контракт для работы с append-only серией GPS-точек
type LocationRepository interface {
	Append(ctx context.Context, point *models.VehicleLocation) error
	ListByVehicle(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error)
	ListByVehicleToday(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error)
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// IncidentRepository определяет контракт для работы с бд обращений
type IncidentRepository interface {
	Create(ctx context.Context, incident *models.IncidentReport) error
	GetByID(ctx context.Context, id int64) (*models.IncidentReport, error)
	Update(ctx context.Context, incident *models.IncidentReport) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentReport, error)
	ListRecent(ctx context.Context, limit int) ([]*models.IncidentReport, error)
}

// SessionRepository определяет контракт для хранения сессий и кодов 2FA
type SessionRepository interface {
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
	SetTwoFactorCode(ctx context.Context, userID int64, code string, ttl time.Duration) error
	GetTwoFactorCode(ctx context.Context, userID int64) (string, error)
	DeleteTwoFactorCode(ctx context.Context, userID int64) error
}
