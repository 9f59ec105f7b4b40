package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
)

// Срок жизни кэша транспорта по коду. Устройства шлют отчеты каждые несколько
// секунд, кэш снимает повторный поиск по коду с горячего пути приема.
const vehicleCacheTTL = 5 * time.Minute

type VehicleRepository struct {
	db          *pgxpool.Pool
	redisClient *redis.Client
}

func NewVehicleRepository(db *pgxpool.Pool, redisClient *redis.Client) service.VehicleRepository {
	return &VehicleRepository{
		db:          db,
		redisClient: redisClient,
	}
}

const vehicleColumns = `id, code, plate_number, brand, model, color, year, chassis_number, engine_number, vehicle_type, barangay_id, created_at, updated_at`

func scanVehicle(row pgx.Row) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := row.Scan(
		&vehicle.ID,
		&vehicle.Code,
		&vehicle.PlateNumber,
		&vehicle.Brand,
		&vehicle.Model,
		&vehicle.Color,
		&vehicle.Year,
		&vehicle.ChassisNumber,
		&vehicle.EngineNumber,
		&vehicle.VehicleType,
		&vehicle.BarangayID,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

// Create создает новую запись транспорта в бд
func (r *VehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	query := `
		INSERT INTO vehicles (code, plate_number, brand, model, color, year, chassis_number, engine_number, vehicle_type, barangay_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		vehicle.Code,
		vehicle.PlateNumber,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Color,
		vehicle.Year,
		vehicle.ChassisNumber,
		vehicle.EngineNumber,
		vehicle.VehicleType,
		vehicle.BarangayID,
	).Scan(&vehicle.ID, &vehicle.CreatedAt, &vehicle.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

// GetByID возвращает транспорт по его ID
func (r *VehicleRepository) GetByID(ctx context.Context, id int64) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1;`
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vehicle with id %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by id: %w", err)
	}
	return vehicle, nil
}

// GetByCode возвращает транспорт по его публичному коду устройства.
// Чтение через Redis-кэш: кэш обновляется при промахе и сбрасывается
// при изменении или удалении записи.
func (r *VehicleRepository) GetByCode(ctx context.Context, code string) (*models.Vehicle, error) {
	if cached, err := r.getCachedByCode(ctx, code); err == nil && cached != nil {
		return cached, nil
	}

	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE code = $1;`
	vehicle, err := scanVehicle(r.db.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("vehicle with code %q: %w", code, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get vehicle by code: %w", err)
	}

	// Ошибка кэша не мешает ответу
	_ = r.setCachedByCode(ctx, vehicle)
	return vehicle, nil
}

func (r *VehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	// Старый код нужен для сброса кэша, если код сменился
	old, err := r.GetByID(ctx, vehicle.ID)
	if err != nil {
		return err
	}

	query := `
		UPDATE vehicles SET
			code = $1,
			plate_number = $2,
			brand = $3,
			model = $4,
			color = $5,
			year = $6,
			chassis_number = $7,
			engine_number = $8,
			vehicle_type = $9,
			barangay_id = $10,
			updated_at = NOW()
		WHERE id = $11;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		vehicle.Code,
		vehicle.PlateNumber,
		vehicle.Brand,
		vehicle.Model,
		vehicle.Color,
		vehicle.Year,
		vehicle.ChassisNumber,
		vehicle.EngineNumber,
		vehicle.VehicleType,
		vehicle.BarangayID,
		vehicle.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle with id %d for update: %w", vehicle.ID, models.ErrNotFound)
	}

	_ = r.invalidateCodeCache(ctx, old.Code)
	if vehicle.Code != old.Code {
		_ = r.invalidateCodeCache(ctx, vehicle.Code)
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	old, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicles WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("vehicle with id %d for delete: %w", id, models.ErrNotFound)
	}

	_ = r.invalidateCodeCache(ctx, old.Code)
	return nil
}

// List возвращает весь транспорт
func (r *VehicleRepository) List(ctx context.Context) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles ORDER BY plate_number;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

// ListByBarangay возвращает транспорт барангая
func (r *VehicleRepository) ListByBarangay(ctx context.Context, barangayID int64) ([]*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE barangay_id = $1 ORDER BY plate_number;`
	rows, err := r.db.Query(ctx, query, barangayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles by barangay: %w", err)
	}
	defer rows.Close()
	return collectVehicles(rows)
}

func collectVehicles(rows pgx.Rows) ([]*models.Vehicle, error) {
	vehicles := make([]*models.Vehicle, 0)
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle row: %w", err)
		}
		vehicles = append(vehicles, vehicle)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return vehicles, nil
}

// Count возвращает количество транспорта
func (r *VehicleRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM vehicles;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return count, nil
}

// getCachedByCode пытается получить транспорт из Redis
func (r *VehicleRepository) getCachedByCode(ctx context.Context, code string) (*models.Vehicle, error) {
	key := fmt.Sprintf("vehicle:code:%s", code)
	val, err := r.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get vehicle from cache: %w", err)
	}

	vehicle := &models.Vehicle{}
	if err := json.Unmarshal(val, vehicle); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vehicle from cache: %w", err)
	}
	return vehicle, nil
}

// setCachedByCode сохраняет транспорт в Redis
func (r *VehicleRepository) setCachedByCode(ctx context.Context, vehicle *models.Vehicle) error {
	key := fmt.Sprintf("vehicle:code:%s", vehicle.Code)
	val, err := json.Marshal(vehicle)
	if err != nil {
		return fmt.Errorf("failed to marshal vehicle for cache: %w", err)
	}
	if err := r.redisClient.Set(ctx, key, val, vehicleCacheTTL).Err(); err != nil {
		return fmt.Errorf("failed to set vehicle in cache: %w", err)
	}
	return nil
}

// invalidateCodeCache удаляет транспорт из Redis кэша
func (r *VehicleRepository) invalidateCodeCache(ctx context.Context, code string) error {
	key := fmt.Sprintf("vehicle:code:%s", code)
	if err := r.redisClient.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("failed to invalidate vehicle cache: %w", err)
	}
	return nil
}
