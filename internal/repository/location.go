package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// LocationRepository работает с append-only таблицей GPS-точек.
// Обновлений и точечных удалений нет, только вставка, выборка и плановая очистка.
type LocationRepository struct {
	db *pgxpool.Pool
}

func NewLocationRepository(db *pgxpool.Pool) service.LocationRepository {
	return &LocationRepository{db: db}
}

// Append вставляет одну GPS-точку; временная метка назначается бд
func (r *LocationRepository) Append(ctx context.Context, point *models.VehicleLocation) error {
	query := `
		INSERT INTO vehicle_locations (vehicle_id, latitude, longitude)
		VALUES ($1, $2, $3) RETURNING id, created_at;
	`
	err := r.db.QueryRow(ctx, query,
		point.VehicleID,
		point.Latitude,
		point.Longitude,
	).Scan(&point.ID, &point.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append vehicle location: %w", err)
	}
	return nil
}

// ListByVehicle возвращает всю историю точек транспорта.
// Явный ORDER BY created_at вместо надежды на порядок вставки.
func (r *LocationRepository) ListByVehicle(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error) {
	query := `
		SELECT id, latitude, longitude, vehicle_id, created_at
		FROM vehicle_locations
		WHERE vehicle_id = $1
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle locations: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

// ListByVehicleToday возвращает точки транспорта за текущий календарный
// день сервера бд
func (r *LocationRepository) ListByVehicleToday(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error) {
	query := `
		SELECT id, latitude, longitude, vehicle_id, created_at
		FROM vehicle_locations
		WHERE vehicle_id = $1 AND created_at::date = CURRENT_DATE
		ORDER BY created_at, id;
	`
	rows, err := r.db.Query(ctx, query, vehicleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicle locations for today: %w", err)
	}
	defer rows.Close()
	return collectLocations(rows)
}

func collectLocations(rows pgx.Rows) ([]*models.VehicleLocation, error) {
	points := make([]*models.VehicleLocation, 0)
	for rows.Next() {
		point := &models.VehicleLocation{}
		err := rows.Scan(
			&point.ID,
			&point.Latitude,
			&point.Longitude,
			&point.VehicleID,
			&point.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle location row: %w", err)
		}
		points = append(points, point)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return points, nil
}

// DeleteOlderThan удаляет точки старше заданного момента, возвращает число удаленных
func (r *LocationRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM vehicle_locations WHERE created_at < $1;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune vehicle locations: %w", err)
	}
	return cmdTag.RowsAffected(), nil
}
