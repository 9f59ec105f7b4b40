package service

import (
	"context"
	"fmt"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// BarangayService определяет контракт для управления барангаями
// и их учетными записями администраторов
type BarangayService interface {
	CreateBarangay(ctx context.Context, barangay *models.Barangay) error
	GetBarangay(ctx context.Context, id int64) (*models.Barangay, error)
	UpdateBarangay(ctx context.Context, barangay *models.Barangay) error
	DeleteBarangay(ctx context.Context, id int64) error
	ListBarangays(ctx context.Context) ([]*models.Barangay, error)
	BarangayInfo(ctx context.Context, id int64) (*models.BarangayInfo, error)

	CreateAdminUser(ctx context.Context, barangayID int64, user *models.User, password string) error
	UpdateAdminUser(ctx context.Context, barangayID, userID int64, user *models.User, password string) error
	DeleteAdminUser(ctx context.Context, barangayID, userID int64) error
}

type barangayService struct {
	repo     BarangayRepository
	users    UserRepository
	drivers  DriverRepository
	vehicles VehicleRepository
	logger   *logrus.Logger
}

func NewBarangayService(repo BarangayRepository, users UserRepository, drivers DriverRepository, vehicles VehicleRepository, logger *logrus.Logger) BarangayService {
	return &barangayService{
		repo:     repo,
		users:    users,
		drivers:  drivers,
		vehicles: vehicles,
		logger:   logger,
	}
}

// CreateBarangay создает барангай
func (s *barangayService) CreateBarangay(ctx context.Context, barangay *models.Barangay) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "barangay",
		"method":  "CreateBarangay",
		"name":    barangay.Name,
	})
	log.Info("Attempting to create a new barangay")

	if err := s.repo.Create(ctx, barangay); err != nil {
		log.WithError(err).Error("Failed to create barangay in repository")
		return fmt.Errorf("service: could not create barangay: %w", err)
	}

	log.WithField("barangay_id", barangay.ID).Info("Barangay created successfully")
	return nil
}

// GetBarangay получает барангай по ID
func (s *barangayService) GetBarangay(ctx context.Context, id int64) (*models.Barangay, error) {
	barangay, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.WithField("barangay_id", id).WithError(err).Warn("Failed to get barangay")
		return nil, fmt.Errorf("service: could not get barangay: %w", err)
	}
	return barangay, nil
}

// UpdateBarangay обновляет существующий барангай
func (s *barangayService) UpdateBarangay(ctx context.Context, barangay *models.Barangay) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "UpdateBarangay",
		"barangay_id": barangay.ID,
	})
	log.Info("Attempting to update barangay")

	existing, err := s.repo.GetByID(ctx, barangay.ID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent barangay")
		return fmt.Errorf("service: barangay %d not found for update: %w", barangay.ID, err)
	}

	existing.Name = barangay.Name
	existing.Latitude = barangay.Latitude
	existing.Longitude = barangay.Longitude

	if err := s.repo.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update barangay in repository")
		return fmt.Errorf("service: could not update barangay: %w", err)
	}
	log.Info("Barangay updated successfully")
	return nil
}

// DeleteBarangay удаляет барангай
func (s *barangayService) DeleteBarangay(ctx context.Context, id int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "DeleteBarangay",
		"barangay_id": id,
	})
	log.Info("Attempting to delete barangay")

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent barangay")
		return fmt.Errorf("service: barangay %d not found for delete: %w", id, err)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		log.WithError(err).Error("Failed to delete barangay in repository")
		return fmt.Errorf("service: could not delete barangay: %w", err)
	}

	log.Info("Barangay deleted successfully")
	return nil
}

// ListBarangays возвращает все барангаи
func (s *barangayService) ListBarangays(ctx context.Context) ([]*models.Barangay, error) {
	barangays, err := s.repo.List(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Failed to list barangays from repository")
		return nil, fmt.Errorf("service: could not list barangays: %w", err)
	}
	return barangays, nil
}

// BarangayInfo возвращает барангай вместе с его пользователями, водителями и транспортом
func (s *barangayService) BarangayInfo(ctx context.Context, id int64) (*models.BarangayInfo, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "BarangayInfo",
		"barangay_id": id,
	})

	barangay, err := s.repo.GetByID(ctx, id)
	if err != nil {
		log.WithError(err).Warn("Failed to get barangay for info page")
		return nil, fmt.Errorf("service: could not get barangay: %w", err)
	}

	users, err := s.users.ListByBarangay(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list barangay users")
		return nil, fmt.Errorf("service: could not list barangay users: %w", err)
	}

	drivers, err := s.drivers.ListByBarangay(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list barangay drivers")
		return nil, fmt.Errorf("service: could not list barangay drivers: %w", err)
	}

	vehicles, err := s.vehicles.ListByBarangay(ctx, id)
	if err != nil {
		log.WithError(err).Error("Failed to list barangay vehicles")
		return nil, fmt.Errorf("service: could not list barangay vehicles: %w", err)
	}

	return &models.BarangayInfo{
		Barangay: barangay,
		Users:    users,
		Drivers:  drivers,
		Vehicles: vehicles,
	}, nil
}

// CreateAdminUser создает учетную запись администратора барангая
func (s *barangayService) CreateAdminUser(ctx context.Context, barangayID int64, user *models.User, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "CreateAdminUser",
		"barangay_id": barangayID,
		"email":       user.Email,
	})
	log.Info("Attempting to create barangay admin user")

	if _, err := s.repo.GetByID(ctx, barangayID); err != nil {
		log.WithError(err).Warn("Barangay does not exist")
		return fmt.Errorf("service: barangay %d: %w", barangayID, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.WithError(err).Error("Failed to hash password")
		return fmt.Errorf("service: could not hash password: %w", err)
	}

	user.PasswordHash = string(hash)
	user.UserType = models.UserTypeBarangayAdmin
	user.BarangayID = &barangayID

	if err := s.users.Create(ctx, user); err != nil {
		log.WithError(err).Error("Failed to create user in repository")
		return fmt.Errorf("service: could not create admin user: %w", err)
	}

	log.WithField("user_id", user.ID).Info("Barangay admin user created successfully")
	return nil
}

// UpdateAdminUser обновляет учетную запись администратора барангая.
// Пустой пароль оставляет текущий хэш без изменений.
func (s *barangayService) UpdateAdminUser(ctx context.Context, barangayID, userID int64, user *models.User, password string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "UpdateAdminUser",
		"barangay_id": barangayID,
		"user_id":     userID,
	})
	log.Info("Attempting to update barangay admin user")

	existing, err := s.userInBarangay(ctx, barangayID, userID)
	if err != nil {
		log.WithError(err).Warn("Attempted to update a non-existent admin user")
		return err
	}

	existing.Name = user.Name
	existing.Email = user.Email
	existing.IsActive = user.IsActive

	if password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.WithError(err).Error("Failed to hash password")
			return fmt.Errorf("service: could not hash password: %w", err)
		}
		existing.PasswordHash = string(hash)
	}

	if err := s.users.Update(ctx, existing); err != nil {
		log.WithError(err).Error("Failed to update user in repository")
		return fmt.Errorf("service: could not update admin user: %w", err)
	}

	log.Info("Barangay admin user updated successfully")
	return nil
}

// DeleteAdminUser удаляет учетную запись администратора барангая
func (s *barangayService) DeleteAdminUser(ctx context.Context, barangayID, userID int64) error {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "barangay",
		"method":      "DeleteAdminUser",
		"barangay_id": barangayID,
		"user_id":     userID,
	})
	log.Info("Attempting to delete barangay admin user")

	if _, err := s.userInBarangay(ctx, barangayID, userID); err != nil {
		log.WithError(err).Warn("Attempted to delete a non-existent admin user")
		return err
	}

	if err := s.users.Delete(ctx, userID); err != nil {
		log.WithError(err).Error("Failed to delete user in repository")
		return fmt.Errorf("service: could not delete admin user: %w", err)
	}

	log.Info("Barangay admin user deleted successfully")
	return nil
}

// userInBarangay находит пользователя и проверяет его принадлежность барангаю
func (s *barangayService) userInBarangay(ctx context.Context, barangayID, userID int64) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service: user %d: %w", userID, err)
	}
	if user.BarangayID == nil || *user.BarangayID != barangayID {
		return nil, fmt.Errorf("service: user %d in barangay %d: %w", userID, barangayID, models.ErrNotFound)
	}
	return user, nil
}
