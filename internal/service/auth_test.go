package service

import (
	"bytes"
	"context"
	"fmt"
	"strconv"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/notify"
	notify_mocks "github.com/djgraphics28/bvms-api/internal/notify/mocks"
	"github.com/djgraphics28/bvms-api/internal/service/mocks"
)

// newTestAuthService — вспомогательная функция для создания инстанса сервиса с моками.
func newTestAuthService(t *testing.T) (*authService, *mocks.MockUserRepository, *mocks.MockSessionRepository, *notify_mocks.MockPublisher) {
	ctrl := gomock.NewController(t)
	usersMock := mocks.NewMockUserRepository(ctrl)
	sessionsMock := mocks.NewMockSessionRepository(ctrl)
	publisherMock := notify_mocks.NewMockPublisher(ctrl)

	logger := logrus.New()
	logger.SetOutput(&bytes.Buffer{}) // Отключаем вывод логов в тестах

	cfg := &config.Config{
		SessionTTL:       24 * time.Hour,
		TwoFactorCodeTTL: 10 * time.Minute,
	}

	service := NewAuthService(usersMock, sessionsMock, publisherMock, cfg, logger)
	return service.(*authService), usersMock, sessionsMock, publisherMock
}

// hashPassword хэширует пароль для тестовых учетных записей
func hashPassword(t *testing.T, password string) string {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(hash)
}

func TestLogin_Success_WithoutTwoFactor(t *testing.T) {
	// Подготовка
	service, usersMock, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{
		ID:           1,
		Email:        "admin@bvms.local",
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     true,
	}

	// Ожидания
	usersMock.EXPECT().GetByEmail(ctx, "admin@bvms.local").Return(user, nil).Times(1)
	sessionsMock.EXPECT().
		Save(ctx, gomock.Any(), 24*time.Hour).
		Return(nil).
		Times(1)

	// Действие
	session, gotUser, err := service.Login(ctx, "admin@bvms.local", "secret-password")

	// Проверки
	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, int64(1), session.UserID)
	assert.True(t, session.TwoFactorPassed)
	assert.Equal(t, user, gotUser)
}

func TestLogin_Success_WithTwoFactor(t *testing.T) {
	// Подготовка
	service, usersMock, sessionsMock, publisherMock := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{
		ID:               1,
		Name:             "Admin",
		Email:            "admin@bvms.local",
		PasswordHash:     hashPassword(t, "secret-password"),
		IsActive:         true,
		TwoFactorEnabled: true,
	}

	var issuedCode string

	// Ожидания
	usersMock.EXPECT().GetByEmail(ctx, "admin@bvms.local").Return(user, nil).Times(1)
	sessionsMock.EXPECT().
		Save(ctx, gomock.Any(), 24*time.Hour).
		DoAndReturn(func(_ context.Context, session *models.Session, _ time.Duration) error {
			assert.False(t, session.TwoFactorPassed)
			return nil
		}).
		Times(1)
	sessionsMock.EXPECT().
		SetTwoFactorCode(ctx, int64(1), gomock.Any(), 10*time.Minute).
		DoAndReturn(func(_ context.Context, _ int64, code string, _ time.Duration) error {
			assert.Len(t, code, 6)
			value, convErr := strconv.Atoi(code)
			require.NoError(t, convErr)
			assert.GreaterOrEqual(t, value, 100000)
			assert.LessOrEqual(t, value, 999999)
			issuedCode = code
			return nil
		}).
		Times(1)
	publisherMock.EXPECT().
		Publish(ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, event notify.NotificationEvent) error {
			assert.Equal(t, notify.EventTwoFactorCode, event.Type)
			assert.Equal(t, "admin@bvms.local", event.Email)
			assert.Equal(t, issuedCode, event.Code)
			return nil
		}).
		Times(1)

	// Действие
	session, _, err := service.Login(ctx, "admin@bvms.local", "secret-password")

	// Проверки
	require.NoError(t, err)
	assert.False(t, session.TwoFactorPassed)
}

func TestLogin_WrongPassword(t *testing.T) {
	// Подготовка
	service, usersMock, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{
		ID:           1,
		Email:        "admin@bvms.local",
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     true,
	}

	// Ожидания
	usersMock.EXPECT().GetByEmail(ctx, "admin@bvms.local").Return(user, nil).Times(1)
	sessionsMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	session, gotUser, err := service.Login(ctx, "admin@bvms.local", "wrong")

	// Проверки
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	assert.Nil(t, session)
	assert.Nil(t, gotUser)
}

func TestLogin_UnknownEmail(t *testing.T) {
	service, usersMock, _, _ := newTestAuthService(t)
	ctx := context.Background()

	usersMock.EXPECT().
		GetByEmail(ctx, "nobody@bvms.local").
		Return(nil, fmt.Errorf("repository: user by email: %w", models.ErrNotFound)).
		Times(1)

	_, _, err := service.Login(ctx, "nobody@bvms.local", "whatever")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	service, usersMock, _, _ := newTestAuthService(t)
	ctx := context.Background()
	user := &models.User{
		ID:           1,
		Email:        "admin@bvms.local",
		PasswordHash: hashPassword(t, "secret-password"),
		IsActive:     false,
	}

	usersMock.EXPECT().GetByEmail(ctx, "admin@bvms.local").Return(user, nil).Times(1)

	_, _, err := service.Login(ctx, "admin@bvms.local", "secret-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTwoFactor_Success(t *testing.T) {
	// Подготовка
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	session := &models.Session{Token: "pending-token", UserID: 1, TwoFactorPassed: false, CreatedAt: time.Now()}

	// Ожидания
	sessionsMock.EXPECT().Get(ctx, "pending-token").Return(session, nil).Times(1)
	sessionsMock.EXPECT().GetTwoFactorCode(ctx, int64(1)).Return("123456", nil).Times(1)
	sessionsMock.EXPECT().DeleteTwoFactorCode(ctx, int64(1)).Return(nil).Times(1)
	sessionsMock.EXPECT().
		Save(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, updated *models.Session, _ time.Duration) error {
			assert.True(t, updated.TwoFactorPassed)
			return nil
		}).
		Times(1)

	// Действие
	err := service.VerifyTwoFactor(ctx, "pending-token", "123456")

	// Проверки
	require.NoError(t, err)
}

func TestVerifyTwoFactor_KeepsSessionWindow(t *testing.T) {
	// Подготовка: сессия создана час назад, подтверждение не должно продлить ее
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	session := &models.Session{
		Token:     "pending-token",
		UserID:    1,
		CreatedAt: time.Now().Add(-time.Hour),
	}

	// Ожидания: пересохранение с остатком исходного окна, не с полным TTL
	sessionsMock.EXPECT().Get(ctx, "pending-token").Return(session, nil).Times(1)
	sessionsMock.EXPECT().GetTwoFactorCode(ctx, int64(1)).Return("123456", nil).Times(1)
	sessionsMock.EXPECT().DeleteTwoFactorCode(ctx, int64(1)).Return(nil).Times(1)
	sessionsMock.EXPECT().
		Save(ctx, gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ *models.Session, ttl time.Duration) error {
			assert.InDelta(t, (23 * time.Hour).Seconds(), ttl.Seconds(), 5)
			return nil
		}).
		Times(1)

	// Действие
	err := service.VerifyTwoFactor(ctx, "pending-token", "123456")

	// Проверки
	require.NoError(t, err)
}

func TestVerifyTwoFactor_WrongCode(t *testing.T) {
	// Подготовка
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	session := &models.Session{Token: "pending-token", UserID: 1}

	// Ожидания: неверный код не расходует сохраненный
	sessionsMock.EXPECT().Get(ctx, "pending-token").Return(session, nil).Times(1)
	sessionsMock.EXPECT().GetTwoFactorCode(ctx, int64(1)).Return("123456", nil).Times(1)
	sessionsMock.EXPECT().DeleteTwoFactorCode(gomock.Any(), gomock.Any()).Times(0)
	sessionsMock.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	// Действие
	err := service.VerifyTwoFactor(ctx, "pending-token", "000000")

	// Проверки
	assert.ErrorIs(t, err, ErrInvalidTwoFactor)
}

func TestVerifyTwoFactor_ExpiredCode(t *testing.T) {
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()
	session := &models.Session{Token: "pending-token", UserID: 1}

	sessionsMock.EXPECT().Get(ctx, "pending-token").Return(session, nil).Times(1)
	sessionsMock.EXPECT().
		GetTwoFactorCode(ctx, int64(1)).
		Return("", fmt.Errorf("repository: two-factor code: %w", models.ErrNotFound)).
		Times(1)

	err := service.VerifyTwoFactor(ctx, "pending-token", "123456")

	assert.ErrorIs(t, err, ErrInvalidTwoFactor)
}

func TestValidateSession_Expired(t *testing.T) {
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()

	sessionsMock.EXPECT().
		Get(ctx, "gone-token").
		Return(nil, fmt.Errorf("repository: session: %w", models.ErrNotFound)).
		Times(1)

	session, err := service.ValidateSession(ctx, "gone-token")

	assert.ErrorIs(t, err, ErrInvalidSession)
	assert.Nil(t, session)
}

func TestLogout_DeletesSession(t *testing.T) {
	service, _, sessionsMock, _ := newTestAuthService(t)
	ctx := context.Background()

	sessionsMock.EXPECT().Delete(ctx, "valid-token").Return(nil).Times(1)

	err := service.Logout(ctx, "valid-token")

	require.NoError(t, err)
}
