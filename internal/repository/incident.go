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

type IncidentRepository struct {
	db *pgxpool.Pool
}

func NewIncidentRepository(db *pgxpool.Pool) service.IncidentRepository {
	return &IncidentRepository{db: db}
}

const incidentColumns = `id, title, description, status, severity, creator, latitude, longitude, image_path, barangay_id, created_at, updated_at`

func scanIncident(row pgx.Row) (*models.IncidentReport, error) {
	incident := &models.IncidentReport{}
	err := row.Scan(
		&incident.ID,
		&incident.Title,
		&incident.Description,
		&incident.Status,
		&incident.Severity,
		&incident.Creator,
		&incident.Latitude,
		&incident.Longitude,
		&incident.ImagePath,
		&incident.BarangayID,
		&incident.CreatedAt,
		&incident.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return incident, nil
}

// Create создает новую запись обращения в бд
func (r *IncidentRepository) Create(ctx context.Context, incident *models.IncidentReport) error {
	query := `
		INSERT INTO incident_reports (title, description, status, severity, creator, latitude, longitude, image_path, barangay_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id, created_at, updated_at;
	`
	err := r.db.QueryRow(ctx, query,
		incident.Title,
		incident.Description,
		incident.Status,
		incident.Severity,
		incident.Creator,
		incident.Latitude,
		incident.Longitude,
		incident.ImagePath,
		incident.BarangayID,
	).Scan(&incident.ID, &incident.CreatedAt, &incident.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create incident report: %w", err)
	}
	return nil
}

// GetByID возвращает обращение по его ID
func (r *IncidentRepository) GetByID(ctx context.Context, id int64) (*models.IncidentReport, error) {
	query := `SELECT ` + incidentColumns + ` FROM incident_reports WHERE id = $1;`
	incident, err := scanIncident(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("incident report with id %d: %w", id, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get incident report by id: %w", err)
	}
	return incident, nil
}

func (r *IncidentRepository) Update(ctx context.Context, incident *models.IncidentReport) error {
	query := `
		UPDATE incident_reports SET
			title = $1,
			description = $2,
			status = $3,
			severity = $4,
			creator = $5,
			latitude = $6,
			longitude = $7,
			image_path = $8,
			barangay_id = $9,
			updated_at = NOW()
		WHERE id = $10;
	`
	cmdTag, err := r.db.Exec(ctx, query,
		incident.Title,
		incident.Description,
		incident.Status,
		incident.Severity,
		incident.Creator,
		incident.Latitude,
		incident.Longitude,
		incident.ImagePath,
		incident.BarangayID,
		incident.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update incident report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident report with id %d for update: %w", incident.ID, models.ErrNotFound)
	}
	return nil
}

func (r *IncidentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM incident_reports WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete incident report: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("incident report with id %d for delete: %w", id, models.ErrNotFound)
	}
	return nil
}

// List возвращает обращения по фильтру, новые первыми
func (r *IncidentRepository) List(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentReport, error) {
	query := `SELECT ` + incidentColumns + ` FROM incident_reports WHERE 1=1`
	args := make([]any, 0, 2)

	if filter.BarangayID != nil {
		args = append(args, *filter.BarangayID)
		query += fmt.Sprintf(" AND barangay_id = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY created_at DESC;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list incident reports: %w", err)
	}
	defer rows.Close()
	return collectIncidents(rows)
}

// ListRecent возвращает последние обращения для сводки панели
// вместе с именем барангая
func (r *IncidentRepository) ListRecent(ctx context.Context, limit int) ([]*models.IncidentReport, error) {
	query := `
		SELECT i.id, i.title, i.description, i.status, i.severity, i.creator,
			i.latitude, i.longitude, i.image_path, i.barangay_id,
			COALESCE(b.name, '') AS barangay_name,
			i.created_at, i.updated_at
		FROM incident_reports i
		LEFT JOIN barangays b ON b.id = i.barangay_id
		ORDER BY i.created_at DESC
		LIMIT $1;
	`
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent incident reports: %w", err)
	}
	defer rows.Close()

	incidents := make([]*models.IncidentReport, 0)
	for rows.Next() {
		incident := &models.IncidentReport{}
		err := rows.Scan(
			&incident.ID,
			&incident.Title,
			&incident.Description,
			&incident.Status,
			&incident.Severity,
			&incident.Creator,
			&incident.Latitude,
			&incident.Longitude,
			&incident.ImagePath,
			&incident.BarangayID,
			&incident.BarangayName,
			&incident.CreatedAt,
			&incident.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recent incident row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}

func collectIncidents(rows pgx.Rows) ([]*models.IncidentReport, error) {
	incidents := make([]*models.IncidentReport, 0)
	for rows.Next() {
		incident, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan incident report row: %w", err)
		}
		incidents = append(incidents, incident)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error list iteration: %w", err)
	}
	return incidents, nil
}
