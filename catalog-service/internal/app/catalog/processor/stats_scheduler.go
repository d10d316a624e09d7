package processor

import (
	"context"
	"log"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/pkg/logger"

	"github.com/robfig/cron/v3"
)

// StatsRefresher пересчитывает размеры каталога
type StatsRefresher interface {
	RefreshCatalogStats(ctx context.Context) (*entity.CatalogStats, error)
}

// StatsScheduler периодически обновляет gauge метрики каталога
type StatsScheduler struct {
	cron     *cron.Cron
	statsSvc StatsRefresher
}

func NewStatsScheduler(statsSvc StatsRefresher) *StatsScheduler {
	c := cron.New(cron.WithLogger(cron.PrintfLogger(log.New(logger.Logger(), "", 0))))

	return &StatsScheduler{
		cron:     c,
		statsSvc: statsSvc,
	}
}

// Start регистрирует задачу и сразу выполняет первое обновление
func (s *StatsScheduler) Start(ctx context.Context, schedule string) error {
	logger.Info().Str("schedule", schedule).Msg("Starting catalog stats scheduler")

	_, err := s.cron.AddFunc(schedule, func() {
		s.refresh(ctx)
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.refresh(ctx)

	return nil
}

func (s *StatsScheduler) refresh(ctx context.Context) {
	stats, err := s.statsSvc.RefreshCatalogStats(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to refresh catalog stats")
		return
	}

	logger.Debug().
		Int64("products", stats.Products).
		Int64("categories", stats.Categories).
		Msg("Catalog stats refreshed")
}

func (s *StatsScheduler) Stop() {
	logger.Info().Msg("Stopping catalog stats scheduler...")
	ctx := s.cron.Stop()
	<-ctx.Done()
	logger.Info().Msg("Catalog stats scheduler stopped")
}

func (s *StatsScheduler) GetEntries() []cron.Entry {
	return s.cron.Entries()
}
