package scheduler

import (
	"context"
	"time"

	"github.com/djgraphics28/bvms-api/internal/config"
	"github.com/djgraphics28/bvms-api/internal/service"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

// RetentionPruner периодически удаляет GPS-точки старше окна хранения.
// При LOCATION_RETENTION_DAYS=0 очистка выключена и таблица растет
// неограниченно.
type RetentionPruner struct {
	cron      *cron.Cron
	locations service.LocationRepository
	cfg       *config.Config
	logger    *logrus.Logger
}

// NewRetentionPruner создает новый RetentionPruner
func NewRetentionPruner(locations service.LocationRepository, cfg *config.Config, logger *logrus.Logger) *RetentionPruner {
	return &RetentionPruner{
		cron:      cron.New(cron.WithLocation(time.UTC)),
		locations: locations,
		cfg:       cfg,
		logger:    logger,
	}
}

// Start регистрирует задачу очистки и запускает планировщик
func (p *RetentionPruner) Start() {
	if p.cfg.LocationRetentionDays <= 0 {
		p.logger.Info("Location retention disabled, points are kept forever")
		return
	}

	_, err := p.cron.AddFunc(p.cfg.RetentionCronSpec, p.prune)
	if err != nil {
		p.logger.WithError(err).Error("Failed to register location retention job")
		return
	}

	p.cron.Start()
	p.logger.WithFields(logrus.Fields{
		"retention_days": p.cfg.LocationRetentionDays,
		"schedule":       p.cfg.RetentionCronSpec,
	}).Info("Location retention pruner started")
}

// Stop останавливает планировщик и дожидается завершения текущей задачи
func (p *RetentionPruner) Stop() {
	ctx := p.cron.Stop()
	<-ctx.Done()
	p.logger.Info("Location retention pruner stopped")
}

func (p *RetentionPruner) prune() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -p.cfg.LocationRetentionDays)
	deleted, err := p.locations.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		p.logger.WithError(err).Error("Location retention prune failed")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"deleted": deleted,
		"cutoff":  cutoff,
	}).Info("Location retention prune completed")
}
