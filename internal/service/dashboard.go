package service

import (
	"context"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sirupsen/logrus"
)

const recentIncidentLimit = 5

// DashboardService определяет контракт для сводки главной страницы панели
type DashboardService interface {
	Stats(ctx context.Context) (*models.DashboardStats, error)
}

type dashboardService struct {
	users     UserRepository
	vehicles  VehicleRepository
	drivers   DriverRepository
	barangays BarangayRepository
	incidents IncidentRepository
	logger    *logrus.Logger
}

func NewDashboardService(users UserRepository, vehicles VehicleRepository, drivers DriverRepository, barangays BarangayRepository, incidents IncidentRepository, logger *logrus.Logger) DashboardService {
	return &dashboardService{
		users:     users,
		vehicles:  vehicles,
		drivers:   drivers,
		barangays: barangays,
		incidents: incidents,
		logger:    logger,
	}
}

// Stats собирает счетчики и последние обращения
func (s *dashboardService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "dashboard",
		"method":  "Stats",
	})

	admins, err := s.users.CountByType(ctx, models.UserTypeAdmin)
	if err != nil {
		log.WithError(err).Error("Failed to count admins")
		return nil, fmt.Errorf("service: could not count admins: %w", err)
	}

	vehicles, err := s.vehicles.Count(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count vehicles")
		return nil, fmt.Errorf("service: could not count vehicles: %w", err)
	}

	drivers, err := s.drivers.Count(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count drivers")
		return nil, fmt.Errorf("service: could not count drivers: %w", err)
	}

	barangays, err := s.barangays.Count(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to count barangays")
		return nil, fmt.Errorf("service: could not count barangays: %w", err)
	}

	recent, err := s.incidents.ListRecent(ctx, recentIncidentLimit)
	if err != nil {
		log.WithError(err).Error("Failed to list recent incidents")
		return nil, fmt.Errorf("service: could not list recent incidents: %w", err)
	}

	return &models.DashboardStats{
		TotalAdmins:     admins,
		TotalVehicles:   vehicles,
		TotalDrivers:    drivers,
		TotalBarangays:  barangays,
		RecentIncidents: recent,
	}, nil
}
