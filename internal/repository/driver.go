package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) service.DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `id, name, drivers_license_number, contact_number, barangay_id, user_id, created_at, updated_at`

func scanDriver(row pgx.Row) (*models.Driver, error) {
	driver := &models.Driver{}
	err := row.Scan(
		&driver.ID,
		&driver.Name,
		&driver.LicenseNumber,
		&driver.ContactNumber,
		&driver.BarangayID,
		&driver.UserID,
		&driver.CreatedAt,
		&driver.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return driver, nil
}

// Create создает новую запись водителя в бд
func (r *DriverRepository) Create(ctx context.Context, driver *models.Driver) error {
	query := `
		INSERT INTO drivers (name, drivers_license_number, contact_number, barangay_id, user_id)
		VALUES ($1, $2, $3, $4, $5) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		driver.Name,
		driver.LicenseNumber,
		driver.ContactNumber,
		driver.BarangayID,
		driver.UserID,
	).Scan(&driver.ID, &driver.CreatedAt, &driver.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

// GetByID возвращает водителя по его ID
func (r *DriverRepository) GetByID(ctx context.Context, id int64) (*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE id = $1;`
	driver, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("driver with id %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get driver by id: %w", err)
	}
	return driver, nil
}

func (r *DriverRepository) Update(ctx context.Context, driver *models.Driver) error {
	query := `
		UPDATE drivers SET
			name = $1,
			drivers_license_number = $2,
			contact_number = $3,
			updated_at = NOW()
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		driver.Name,
		driver.LicenseNumber,
		driver.ContactNumber,
		driver.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("driver with id %d for update: %w", driver.ID, models.ErrNotFound)
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM drivers WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("driver with id %d for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// List возвращает всех водителей
func (r *DriverRepository) List(ctx context.Context) ([]*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers ORDER BY name;`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()
	return collectDrivers(rows)
}

// ListByBarangay возвращает водителей барангая
func (r *DriverRepository) ListByBarangay(ctx context.Context, barangayID int64) ([]*models.Driver, error) {
	query := `SELECT ` + driverColumns + ` FROM drivers WHERE barangay_id = $1 ORDER BY name;`
	rows, err := r.db.Query(ctx, query, barangayID)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers by barangay: %w", err)
	}
	defer rows.Close()
	return collectDrivers(rows)
}

func collectDrivers(rows pgx.Rows) ([]*models.Driver, error) {
	drivers := make([]*models.Driver, 0)
	for rows.Next() {
		driver, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver row: %w", err)
		}
		drivers = append(drivers, driver)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return drivers, nil
}

// Count возвращает количество водителей
func (r *DriverRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM drivers;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return count, nil
}
