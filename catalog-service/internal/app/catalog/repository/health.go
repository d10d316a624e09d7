package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// DatabasePinger проверяет доступность PostgreSQL для /health
type DatabasePinger struct {
	db *gorm.DB
}

func NewDatabasePinger(db *gorm.DB) *DatabasePinger {
	return &DatabasePinger{db: db}
}

func (p *DatabasePinger) Ping(ctx context.Context) error {
	sqlDB, err := p.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
