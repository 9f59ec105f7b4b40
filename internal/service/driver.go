package service

import (
	"context"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// DriverService определяет контракт для управления водителями.
// Создание водителя также заводит связанную учетную запись типа driver.
type DriverService interface {
	CreateDriver(ctx context.Context, barangayID int64, driver *models.Driver, email, password string) error
	UpdateDriver(ctx context.Context, barangayID, driverID int64, driver *models.Driver, email, password string) error
	DeleteDriver(ctx context.Context, barangayID, driverID int64) error
	ListDrivers(ctx context.Context) ([]*models.Driver, error)
}

type driverService struct {
	repo   DriverRepository
	users  UserRepository
	brgys  BarangayRepository
	logger *logrus.Logger
}

func NewDriverService(repo DriverRepository, users UserRepository, brgys BarangayRepository, logger *logrus.Logger) DriverService {
	return &driverService{
		repo:   repo,
		users:  users,
		brgys:  brgys,
		logger: logger,
	}
}

// CreateDriver создает учетную запись пользователя, затем запись водителя
func (s *driverService) CreateDriver(ctx context.Context, barangayID int64, driver *models.Driver, email, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "driver",
		"method":      "CreateDriver",
		"barangay_id": barangayID,
		"email":       email,
	})
	log.Info("Attempting to create a new driver")

	if _, err := s.brgys.GetByID(ctx, barangayID); err != nil {
		log.WithError(err).Warn("Barangay does not exist")
		return fmt.Errorf("service: barangay %d: %w", barangayID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return fmt.Errorf("service: could not hash password: %w", err)
	}

	// Сначала учетная запись
	user := &models.User{
		Name:         driver.Name,
		Email:        email,
		PasswordHash: string(hash),
		UserType:     models.UserTypeDriver,
		BarangayID:   &barangayID,
		IsActive:     true,
	}
	if err := s.users.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create driver user account")
		return fmt.Errorf("service: could not create driver account: %w", err)
	}

	// Затем запись водителя, связанная с ней
	driver.BarangayID = barangayID
	driver.UserID = user.ID
	if err := s.repo.Create(ctx, driver); err != nil {
		log.WithError(err).Error("Failed to create driver in repository")
		return fmt.Errorf("service: could not create driver: %w", err)
	}

	log.WithField("driver_id", driver.ID).Info("Driver created successfully")
	return nil
}

// UpdateDriver обновляет водителя и синхронизирует связанную учетную запись
func (s *driverService) UpdateDriver(ctx context.Context, barangayID, driverID int64, driver *models.Driver, email, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "driver",
		"method":      "UpdateDriver",
		"barangay_id": barangayID,
		"driver_id":   driverID,
	})
	log.Info("Attempting to update driver")

	existing, err := s.driverInBarangay(ctx, barangayID, driverID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent driver")
		return err
	}

	// Синхронизация учетной записи
	user, err := s.users.GetByID(ctx, existing.UserID)
	if err == nil {
		user.Name = driver.Name
		user.Email = email
		if password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
			if err != nil {
				log.WithError(err).Error("Failed to hash password")
				return fmt.Errorf("service: could not hash password: %w", err)
			}
			user.PasswordHash = string(hash)
		}
		if err := s.users.Update(ctx, user); err != nil {
			log.WithError(err).Error("Failed to update driver user account")
			return fmt.Errorf("service: could not update driver account: %w", err)
		}
	} else {
		log.WithError(err).Warn("Driver has no linked user account")
	}

	existing.Name = driver.Name
	existing.LicenseNumber = driver.LicenseNumber
	existing.ContactNumber = driver.ContactNumber

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update driver in repository")
		return fmt.Errorf("service: could not update driver: %w", err)
	}

	log.Info("Driver updated successfully")
	return nil
}

// DeleteDriver удаляет водителя
func (s *driverService) DeleteDriver(ctx context.Context, barangayID, driverID int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "driver",
		"method":      "DeleteDriver",
		"barangay_id": barangayID,
		"driver_id":   driverID,
	})
	log.Info("Attempting to delete driver")

	if _, err := s.driverInBarangay(ctx, barangayID, driverID); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent driver")
		return err
	}

	if err := s.repo.Delete(ctx, driverID); err != nil {
		log.WithError(err).Error("Failed to delete driver in repository")
		return fmt.Errorf("service: could not delete driver: %w", err)
	}

	log.Info("Driver deleted successfully")
	return nil
}

// ListDrivers возвращает всех водителей
func (s *driverService) ListDrivers(ctx context.Context) ([]*models.Driver, error) {
	drivers, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list drivers from repository")
		return nil, fmt.Errorf("service: could not list drivers: %w", err)
	}
	return drivers, nil
}

// driverInBarangay находит водителя и проверяет его принадлежность барангаю
func (s *driverService) driverInBarangay(ctx context.Context, barangayID, driverID int64) (*models.Driver, error) {
	driver, err := s.repo.GetByID(ctx, driverID)
	if err != nil {
		return nil, fmt.Errorf("service: driver %d: %w", driverID, err)
	}
	if driver.BarangayID != barangayID {
		return nil, fmt.Errorf("service: driver %d in barangay %d: %w", driverID, barangayID, models.ErrNotFound)
	}
	return driver, nil
}
