package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/redis/go-redis/v9"
)

// SessionRepository хранит сессии панели и коды 2FA в Redis.
// TTL ключей и есть срок жизни сессии/кода.
type SessionRepository struct {
	redisClient *redis.Client
}

func NewSessionRepository(redisClient *redis.Client) service.SessionRepository {
	return &SessionRepository{redisClient: redisClient}
}

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func twoFactorKey(userID int64) string {
	return fmt.Sprintf("2fa:%d", userID)
}

// Save сохраняет сессию с заданным TTL
func (r *SessionRepository) Save(ctx context.Context, session *models.Session, ttl time.Duration) error {
	val, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}
	if err := r.redisClient.Set(ctx, sessionKey(session.Token), val, ttl).Err(); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Get возвращает сессию по токену
func (r *SessionRepository) Get(ctx context.Context, token string) (*models.Session, error) {
	val, err := r.redisClient.Get(ctx, sessionKey(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("session %q: %w", token, models.ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	session := &models.Session{}
	if err := json.Unmarshal(val, session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return session, nil
}

// Delete удаляет сессию
func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	if err := r.redisClient.Del(ctx, sessionKey(token)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// SetTwoFactorCode сохраняет код 2FA пользователя с TTL
func (r *SessionRepository) SetTwoFactorCode(ctx context.Context, userID int64, code string, ttl time.Duration) error {
	if err := r.redisClient.Set(ctx, twoFactorKey(userID), code, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set two-factor code: %w", err)
	}
	return nil
}

// GetTwoFactorCode возвращает код 2FA пользователя
func (r *SessionRepository) GetTwoFactorCode(ctx context.Context, userID int64) (string, error) {
	code, err := r.redisClient.Get(ctx, twoFactorKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", fmt.Errorf("two-factor code for user %d: %w", userID, models.ErrNotFound)
		}
		return "", fmt.Errorf("failed to get two-factor code: %w", err)
	}
	return code, nil
}

// DeleteTwoFactorCode удаляет использованный код 2FA
func (r *SessionRepository) DeleteTwoFactorCode(ctx context.Context, userID int64) error {
	if err := r.redisClient.Del(ctx, twoFactorKey(userID)).Err(); err != nil {
		return fmt.Errorf("failed to delete two-factor code: %w", err)
	}
	return nil
}
