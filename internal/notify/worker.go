package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// Worker - структура для обработки очереди уведомлений и отправки писем
type Worker struct {
	redisClient *redis.Client
	logger      *logrus.Logger
	cfg         *config.Config
	mailer      Mailer
}

// NewWorker создает новый Worker
func NewWorker(redisClient *redis.Client, logger *logrus.Logger, cfg *config.Config, mailer Mailer) *Worker {
	return &Worker{
		redisClient: redisClient,
		logger:      logger,
		cfg:         cfg,
		mailer:      mailer,
	}
}

// Start запускает горутину для обработки очереди уведомлений
func (w *Worker) Start(ctx context.Context) {
	w.logger.Info("Starting notification worker...")
	go func() {
		for {
			select {
			case <-ctx.Done():
				w.logger.Info("Stopping notification worker.")
				return
			default:
				// BRPOP - блокирующее извлечение из правой части списка (очереди)
				// 0 означает бесконечное ожидание
				result, err := w.redisClient.BRPop(ctx, 0, notificationQueueKey).Result()
				if err != nil {
					if errors.Is(err, context.Canceled) {
						continue // Контекст отменен, но не ошибка Redis
					}
					w.logger.WithError(err).Error("Failed to pop notification event from Redis")
					time.Sleep(w.cfg.NotifyBaseDelay) // Ждем перед повторной попыткой
					continue
				}

				// result[0] - ключ, result[1] - значение
				var event NotificationEvent
				if err := json.Unmarshal([]byte(result[1]), &event); err != nil {
					w.logger.WithError(err).Error("Failed to unmarshal notification event from Redis")
					continue
				}

				w.processEvent(event)
			}
		}
	}()
}

func (w *Worker) processEvent(event NotificationEvent) {
	log := w.logger.WithField("event_type", event.Type)
	log.Debug("Processing notification event...")

	maxRetries := w.cfg.NotifyMaxRetries
	baseDelay := w.cfg.NotifyBaseDelay

	for i := 0; i < maxRetries; i++ {
		err := w.deliver(event)
		if err == nil {
			log.Info("Notification delivered successfully.")
			return
		}

		log.WithError(err).Warnf("Failed to deliver notification. Retrying in %v. Retries left: %d", baseDelay, maxRetries-1-i)
		time.Sleep(baseDelay)
		baseDelay *= 2 // Экспоненциальная задержка
	}

	log.Errorf("Failed to deliver notification after %d retries.", maxRetries)
}

func (w *Worker) deliver(event NotificationEvent) error {
	switch event.Type {
	case EventIncidentReported:
		if event.Incident == nil {
			return fmt.Errorf("incident event without incident payload")
		}
		return w.mailer.SendIncidentReport(event.Incident)
	case EventTwoFactorCode:
		return w.mailer.SendTwoFactorCode(event.Email, event.Name, event.Code)
	default:
		return fmt.Errorf("unknown notification event type: %s", event.Type)
	}
}
