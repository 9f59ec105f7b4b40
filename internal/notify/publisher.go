package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/djgraphics28/bvms-api/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	notificationQueueKey = "notification_events"
)

// Типы событий уведомлений
const (
	EventIncidentReported = "incident_reported"
	EventTwoFactorCode    = "two_factor_code"
)

// NotificationEvent - структура для данных уведомления
type NotificationEvent struct {
	Type      string                 `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Incident  *models.IncidentReport `json:"incident,omitempty"`
	// Поля для писем с кодом 2FA
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	Code  string `json:"code,omitempty"`
}

// Publisher - интерфейс для публикации уведомлений
type Publisher interface {
	Publish(ctx context.Context, event NotificationEvent) error
}

// RedisPublisher - реализация Publisher, использующая Redis
type RedisPublisher struct {
	redisClient *redis.Client
}

// NewRedisPublisher создает новый RedisPublisher
func NewRedisPublisher(client *redis.Client) *RedisPublisher {
	return &RedisPublisher{
		redisClient: client,
	}
}

// Publish публикует событие уведомления в очередь Redis
func (p *RedisPublisher) Publish(ctx context.Context, event NotificationEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal notification event: %w", err)
	}

	// Используем LPUSH для добавления события в левую часть списка (очереди)
	if err := p.redisClient.LPush(ctx, notificationQueueKey, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish notification event to Redis: %w", err)
	}
	return nil
}
