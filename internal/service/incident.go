package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/notify"
	"github.com/sirupsen/logrus"
)

// IncidentService определяет контракт для бизнес-логики обращений об инцидентах
type IncidentService interface {
	SubmitIncident(ctx context.Context, incident *models.IncidentReport) error
	CreateIncident(ctx context.Context, incident *models.IncidentReport) error
	GetIncident(ctx context.Context, id int64) (*models.IncidentReport, error)
	UpdateIncident(ctx context.Context, incident *models.IncidentReport) error
	DeleteIncident(ctx context.Context, id int64) error
	ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentReport, error)
}

type incidentService struct {
	repo      IncidentRepository
	publisher notify.Publisher
	logger    *logrus.Logger
}

func NewIncidentService(repo IncidentRepository, publisher notify.Publisher, logger *logrus.Logger) IncidentService {
	return &incidentService{
		repo:      repo,
		publisher: publisher,
		logger:    logger,
	}
}

// SubmitIncident сохраняет обращение c публичной формы и ставит уведомление в очередь
func (s *incidentService) SubmitIncident(ctx context.Context, incident *models.IncidentReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "SubmitIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to submit a public incident report")

	if incident.Status == "" {
		incident.Status = models.IncidentStatusPending
	}
	if incident.Severity == "" {
		incident.Severity = models.IncidentSeverityLow
	}

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not submit incident: %w", err)
	}

	// Уведомление асинхронное: отказ очереди не откатывает обращение
	event := notify.NotificationEvent{
		Type:      notify.EventIncidentReported,
		Timestamp: time.Now(),
		Incident:  incident,
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		log.WithError(err).Error("Failed to queue incident notification")
	}

	log.WithField("incident_id", incident.ID).Info("Incident report submitted successfully")
	return nil
}

// CreateIncident создает обращение из панели управления
func (s *incidentService) CreateIncident(ctx context.Context, incident *models.IncidentReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "incident",
		"method":  "CreateIncident",
		"title":   incident.Title,
	})
	log.Info("Attempting to create a new incident")

	if err := s.repo.Create(ctx, incident); err != nil {
		log.WithError(err).Error("Failed to create incident in repository")
		return fmt.Errorf("service: could not create incident: %w", err)
	}

	log.WithField("incident_id", incident.ID).Info("Incident created successfully")
	return nil
}

// GetIncident получает обращение по ID
func (s *incidentService) GetIncident(ctx context.Context, id int64) (*models.IncidentReport, error) {
	incident, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithField("incident_id", id).WithError(err).Warn("Failed to get incident")
		return nil, fmt.Errorf("service: could not get incident: %w", err)
	}
	return incident, nil
}

// UpdateIncident обновляет существующее обращение
func (s *incidentService) UpdateIncident(ctx context.Context, incident *models.IncidentReport) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "UpdateIncident",
		"incident_id": incident.ID,
	})
	log.Info("Attempting to update incident")

	existing, err := s.repo.GetByID(ctx, incident.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent incident")
		return fmt.Errorf("service: incident %d not found for update: %w", incident.ID, err)
	}

	existing.Title = incident.Title
	existing.Description = incident.Description
	existing.Status = incident.Status
	existing.Severity = incident.Severity
	existing.Creator = incident.Creator
	existing.Latitude = incident.Latitude
	existing.Longitude = incident.Longitude
	existing.BarangayID = incident.BarangayID

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update incident in repository")
		return fmt.Errorf("service: could not update incident: %w", err)
	}
	log.Info("Incident updated successfully")
	return nil
}

// DeleteIncident удаляет обращение вместе с приложенным изображением
func (s *incidentService) DeleteIncident(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "incident",
		"method":      "DeleteIncident",
		"incident_id": id,
	})
	log.Info("Attempting to delete incident")

	existing, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent incident")
		return fmt.Errorf("service: incident %d not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete incident in repository")
		return fmt.Errorf("service: could not delete incident: %w", err)
	}

	if existing.ImagePath != "" {
		if err := os.Remove(existing.ImagePath); err != nil && !os.IsNotExist(err) {
			log.WithError(err).Warn("Failed to remove incident image file")
		}
	}

	log.Info("Incident deleted successfully")
	return nil
}

// ListIncidents возвращает обращения по фильтру, новые первыми
func (s *incidentService) ListIncidents(ctx context.Context, filter models.IncidentFilter) ([]*models.IncidentReport, error) {
	incidents, err := s.repo.List(ctx, filter)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list incidents from repository")
		return nil, fmt.Errorf("service: could not list incidents: %w", err)
	}
	return incidents, nil
}
