package service

import (
	"context"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sirupsen/logrus"
)

// VehicleService определяет контракт для управления транспортом
type VehicleService interface {
	CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error
	DeleteVehicle(ctx context.Context, id int64) error
	ListVehicles(ctx context.Context) ([]*models.Vehicle, error)
}

type vehicleService struct {
	repo      VehicleRepository
	barangays BarangayRepository
	logger    *logrus.Logger
}

func NewVehicleService(repo VehicleRepository, barangays BarangayRepository, logger *logrus.Logger) VehicleService {
	return &vehicleService{
		repo:      repo,
		barangays: barangays,
		logger:    logger,
	}
}

// CreateVehicle создает транспортное средство; владеющий барангай должен существовать
func (s *vehicleService) CreateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":      "vehicle",
		"method":       "CreateVehicle",
		"plate_number": vehicle.PlateNumber,
	})
	log.Info("Attempting to create a new vehicle")

	if _, err := s.barangays.GetByID(ctx, vehicle.BarangayID); err != nil {
		log.WithError(err).Warn("Owning barangay does not exist")
		return fmt.Errorf("service: barangay %d for vehicle: %w", vehicle.BarangayID, err)
	}

	if err := s.repo.Create(ctx, vehicle); err != nil {
		log.WithError(err).Error("Failed to create vehicle in repository")
		return fmt.Errorf("service: could not create vehicle: %w", err)
	}

	log.WithField("vehicle_id", vehicle.ID).Info("Vehicle created successfully")
	return nil
}

// GetVehicle получает транспорт по ID
func (s *vehicleService) GetVehicle(ctx context.Context, id int64) (*models.Vehicle, error) {
	vehicle, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithField("vehicle_id", id).WithError(err).Warn("Failed to get vehicle")
		return nil, fmt.Errorf("service: could not get vehicle: %w", err)
	}
	return vehicle, nil
}

// UpdateVehicle обновляет существующий транспорт
func (s *vehicleService) UpdateVehicle(ctx context.Context, vehicle *models.Vehicle) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "vehicle",
		"method":     "UpdateVehicle",
		"vehicle_id": vehicle.ID,
	})
	log.Info("Attempting to update vehicle")

	existing, err := s.repo.GetByID(ctx, vehicle.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent vehicle")
		return fmt.Errorf("service: vehicle %d not found for update: %w", vehicle.ID, err)
	}

	existing.Code = vehicle.Code
	existing.PlateNumber = vehicle.PlateNumber
	existing.Brand = vehicle.Brand
	existing.Model = vehicle.Model
	existing.Color = vehicle.Color
	existing.Year = vehicle.Year
	existing.ChassisNumber = vehicle.ChassisNumber
	existing.EngineNumber = vehicle.EngineNumber
	existing.VehicleType = vehicle.VehicleType
	existing.BarangayID = vehicle.BarangayID

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update vehicle in repository")
		return fmt.Errorf("service: could not update vehicle: %w", err)
	}
	log.Info("Vehicle updated successfully")
	return nil
}

// DeleteVehicle удаляет транспорт
func (s *vehicleService) DeleteVehicle(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "vehicle",
		"method":     "DeleteVehicle",
		"vehicle_id": id,
	})
	log.Info("Attempting to delete vehicle")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent vehicle")
		return fmt.Errorf("service: vehicle %d not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete vehicle in repository")
		return fmt.Errorf("service: could not delete vehicle: %w", err)
	}

	log.Info("Vehicle deleted successfully")
	return nil
}

// ListVehicles возвращает весь транспорт
func (s *vehicleService) ListVehicles(ctx context.Context) ([]*models.Vehicle, error) {
	vehicles, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list vehicles from repository")
		return nil, fmt.Errorf("service: could not list vehicles: %w", err)
	}
	return vehicles, nil
}
