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

type BarangayRepository struct {
	db *pgxpool.Pool
}

func NewBarangayRepository(db *pgxpool.Pool) service.BarangayRepository {
	return &BarangayRepository{db: db}
}

// Create создает новую запись барангая в бд
func (r *BarangayRepository) Create(ctx context.Context, barangay *models.Barangay) error {
	query := `
		INSERT INTO barangays (name, latitude, longitude)
		VALUES ($1, $2, $3) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		barangay.Name,
		barangay.Latitude,
		barangay.Longitude,
	).Scan(&barangay.ID, &barangay.CreatedAt, &barangay.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create barangay: %w", err)
	}
	return nil
}

// GetByID возвращает барангай по его ID
func (r *BarangayRepository) GetByID(ctx context.Context, id int64) (*models.Barangay, error) {
	barangay := &models.Barangay{}
	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM barangays
		WHERE id = $1;
	`
	err := r.db.QueryRow(ctx, query, id).Scan(
		&barangay.ID,
		&barangay.Name,
		&barangay.Latitude,
		&barangay.Longitude,
		&barangay.CreatedAt,
		&barangay.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("barangay with id %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get barangay by id: %w", err)
	}
	return barangay, nil
}

func (r *BarangayRepository) Update(ctx context.Context, barangay *models.Barangay) error {
	query := `
		UPDATE barangays SET
			name = $1,
			latitude = $2,
			longitude = $3,
			updated_at = NOW()
		WHERE id = $4;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		barangay.Name,
		barangay.Latitude,
		barangay.Longitude,
		barangay.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update barangay: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("barangay with id %d for update: %w", barangay.ID, models.ErrNotFound)
	}
	return nil
}

func (r *BarangayRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM barangays WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete barangay: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("barangay with id %d for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// List возвращает все барангаи
func (r *BarangayRepository) List(ctx context.Context) ([]*models.Barangay, error) {
	query := `
		SELECT id, name, latitude, longitude, created_at, updated_at
		FROM barangays
		ORDER BY name;
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list barangays: %w", err)
	}
	defer rows.Close()

	barangays := make([]*models.Barangay, 0)
	for rows.Next() {
		barangay := &models.Barangay{}
		err := rows.Scan(
			&barangay.ID,
			&barangay.Name,
			&barangay.Latitude,
			&barangay.Longitude,
			&barangay.CreatedAt,
			&barangay.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan barangay row: %w", err)
		}
		barangays = append(barangays, barangay)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return barangays, nil
}

// Count возвращает количество барангаев
func (r *BarangayRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM barangays;`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count barangays: %w", err)
	}
	return count, nil
}
