package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sirupsen/logrus"
)

// TrackingService определяет контракт для трекинг-пайплайна:
// прием GPS-точек от устройств и выдача истории для отрисовки маршрута
type TrackingService interface {
	RecordLocation(ctx context.Context, code string, lat, lng float64) (*models.VehicleLocation, error)
	VehicleHistory(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error)
	VehicleHistoryToday(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error)
}

type trackingService struct {
	locations LocationRepository
	vehicles  VehicleRepository
	logger    *logrus.Logger
}

func NewTrackingService(locations LocationRepository, vehicles VehicleRepository, logger *logrus.Logger) TrackingService {
	return &trackingService{
		locations: locations,
		vehicles:  vehicles,
		logger:    logger,
	}
}

// RecordLocation принимает отчет о позиции от устройства, идентифицированного
// публичным кодом транспорта. Неизвестный код не создает ни одной записи.
func (s *trackingService) RecordLocation(ctx context.Context, code string, lat, lng float64) (*models.VehicleLocation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "tracking",
		"method":  "RecordLocation",
		"code":    code,
	})

	vehicle, err := s.vehicles.GetByCode(ctx, code)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Location report for unknown vehicle code")
			return nil, fmt.Errorf("service: vehicle with code %q: %w", code, models.ErrNotFound)
		}
		log.WithError(err).Error("Failed to resolve vehicle by code")
		return nil, fmt.Errorf("service: could not resolve vehicle: %w", err)
	}

	point := &models.VehicleLocation{
		VehicleID: vehicle.ID,
		Latitude:  lat,
		Longitude: lng,
	}
	if err := s.locations.Append(ctx, point); err != nil {
		log.WithError(err).Error("Failed to append location point")
		return nil, fmt.Errorf("service: could not store location: %w", err)
	}

	log.WithField("vehicle_id", vehicle.ID).Debug("Location point stored")
	return point, nil
}

// VehicleHistory возвращает полную историю точек транспорта в порядке вставки
func (s *trackingService) VehicleHistory(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error) {
	return s.history(ctx, vehicleID, false)
}

// VehicleHistoryToday возвращает точки транспорта только за текущий календарный день
func (s *trackingService) VehicleHistoryToday(ctx context.Context, vehicleID int64) ([]*models.VehicleLocation, error) {
	return s.history(ctx, vehicleID, true)
}

func (s *trackingService) history(ctx context.Context, vehicleID int64, todayOnly bool) ([]*models.VehicleLocation, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":    "tracking",
		"method":     "VehicleHistory",
		"vehicle_id": vehicleID,
		"today_only": todayOnly,
	})

	// Транспорт должен существовать; пустая история - не ошибка
	if _, err := s.vehicles.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("History requested for unknown vehicle")
			return nil, fmt.Errorf("service: vehicle %d: %w", vehicleID, models.ErrNotFound)
		}
		log.WithError(err).Error("Failed to resolve vehicle by id")
		return nil, fmt.Errorf("service: could not resolve vehicle: %w", err)
	}

	var (
		points []*models.VehicleLocation
		err    error
	)
	if todayOnly {
		points, err = s.locations.ListByVehicleToday(ctx, vehicleID)
	} else {
		points, err = s.locations.ListByVehicle(ctx, vehicleID)
	}
	if err != nil {
		log.WithError(err).Error("Failed to list location points")
		return nil, fmt.Errorf("service: could not list locations: %w", err)
	}

	log.WithField("count", len(points)).Debug("Location history fetched")
	return points, nil
}
