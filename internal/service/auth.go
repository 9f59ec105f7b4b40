package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/notify"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// Ошибки аутентификации
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidSession     = errors.New("invalid or expired session")
	ErrInvalidTwoFactor   = errors.New("the code is invalid or expired")
	ErrTwoFactorRequired  = errors.New("two-factor verification required")
)

// AuthService определяет контракт для входа в панель, сессий и email 2FA
type AuthService interface {
	Login(ctx context.Context, email, password string) (*models.Session, *models.User, error)
	VerifyTwoFactor(ctx context.Context, token, code string) error
	Logout(ctx context.Context, token string) error
	ValidateSession(ctx context.Context, token string) (*models.Session, error)
}

type authService struct {
	users     UserRepository
	sessions  SessionRepository
	publisher notify.Publisher
	cfg       *config.Config
	logger    *logrus.Logger
}

func NewAuthService(users UserRepository, sessions SessionRepository, publisher notify.Publisher, cfg *config.Config, logger *logrus.Logger) AuthService {
	return &authService{
		users:     users,
		sessions:  sessions,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Login проверяет учетные данные и создает сессию. Если у пользователя включена 2FA,
// сессия создается непройденной, а шестизначный код отправляется на почту.
func (s *authService) Login(ctx context.Context, email, password string) (*models.Session, *models.User, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "Login",
		"email":   email,
	})
	log.Info("Attempting login")

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Login with unknown email")
			return nil, nil, ErrInvalidCredentials
		}
		log.WithError(err).Error("Failed to get user by email")
		return nil, nil, fmt.Errorf("service: could not get user: %w", err)
	}

	if !user.IsActive {
		log.Warn("Login for deactivated account")
		return nil, nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		log.Warn("Login with wrong password")
		return nil, nil, ErrInvalidCredentials
	}

	session := &models.Session{
		Token:           uuid.NewString(),
		UserID:          user.ID,
		TwoFactorPassed: !user.TwoFactorEnabled,
		CreatedAt:       time.Now(),
	}
	if err := s.sessions.Save(ctx, session, s.cfg.SessionTTL); err != nil {
		log.WithError(err).Error("Failed to save session")
		return nil, nil, fmt.Errorf("service: could not create session: %w", err)
	}

	if user.TwoFactorEnabled {
		code, err := generateTwoFactorCode()
		if err != nil {
			log.WithError(err).Error("Failed to generate two-factor code")
			return nil, nil, fmt.Errorf("service: could not generate two-factor code: %w", err)
		}
		if err := s.sessions.SetTwoFactorCode(ctx, user.ID, code, s.cfg.TwoFactorCodeTTL); err != nil {
			log.WithError(err).Error("Failed to store two-factor code")
			return nil, nil, fmt.Errorf("service: could not store two-factor code: %w", err)
		}

		event := notify.NotificationEvent{
			Type:      notify.EventTwoFactorCode,
			Timestamp: time.Now(),
			Email:     user.Email,
			Name:      user.Name,
			Code:      code,
		}
		if err := s.publisher.Publish(ctx, event); err != nil {
			log.WithError(err).Error("Failed to queue two-factor code email")
		}
		log.Info("Two-factor code issued")
	}

	log.WithField("user_id", user.ID).Info("Login successful")
	return session, user, nil
}

// generateTwoFactorCode возвращает шестизначный код из криптографического
// источника случайности
func generateTwoFactorCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}

// VerifyTwoFactor сверяет код и помечает сессию прошедшей 2FA
func (s *authService) VerifyTwoFactor(ctx context.Context, token, code string) error {
	log := s.logger.WithFields(logrus.Fields{
		"service": "auth",
		"method":  "VerifyTwoFactor",
	})

	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return ErrInvalidSession
		}
		log.WithError(err).Error("Failed to get session")
		return fmt.Errorf("service: could not get session: %w", err)
	}

	stored, err := s.sessions.GetTwoFactorCode(ctx, session.UserID)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			log.Warn("Two-factor code expired or missing")
			return ErrInvalidTwoFactor
		}
		log.WithError(err).Error("Failed to get two-factor code")
		return fmt.Errorf("service: could not get two-factor code: %w", err)
	}

	if stored != code {
		log.Warn("Two-factor code mismatch")
		return ErrInvalidTwoFactor
	}

	// Код одноразовый
	if err := s.sessions.DeleteTwoFactorCode(ctx, session.UserID); err != nil {
		log.WithError(err).Warn("Failed to delete used two-factor code")
	}

	// Подтверждение кода не продлевает сессию: пересохраняем с остатком
	// исходного окна, отсчитанного от момента входа
	remaining := s.cfg.SessionTTL - time.Since(session.CreatedAt)
	if remaining <= 0 {
		return ErrInvalidSession
	}

	session.TwoFactorPassed = true
	if err := s.sessions.Save(ctx, session, remaining); err != nil {
		log.WithError(err).Error("Failed to save session after two-factor")
		return fmt.Errorf("service: could not update session: %w", err)
	}

	log.WithField("user_id", session.UserID).Info("Two-factor verification passed")
	return nil
}

// Logout удаляет сессию
func (s *authService) Logout(ctx context.Context, token string) error {
	if err := s.sessions.Delete(ctx, token); err != nil {
		s.logger.WithError(err).Error("Failed to delete session")
		return fmt.Errorf("service: could not delete session: %w", err)
	}
	return nil
}

// ValidateSession возвращает сессию по токену для middleware панели
func (s *authService) ValidateSession(ctx context.Context, token string) (*models.Session, error) {
	session, err := s.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		s.logger.WithError(err).Error("Failed to get session")
		return nil, fmt.Errorf("service: could not get session: %w", err)
	}
	return session, nil
}
