package util

import (
	"context"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"
)

// NoopCache используется, когда REDIS_HOST не задан: каждый запрос идёт в БД
type NoopCache struct{}

func (NoopCache) SetCategories(context.Context, []entity.ProductCategory, time.Duration) error {
	return nil
}

func (NoopCache) GetCategories(context.Context) ([]entity.ProductCategory, error) {
	return nil, nil
}

func (NoopCache) Ping(context.Context) error { return nil }
func (NoopCache) Close() error               { return nil }

// NoopPublisher используется, когда KAFKA_BROKERS не задан
type NoopPublisher struct{}

func (NoopPublisher) PublishMessage(context.Context, string, []byte) error { return nil }
func (NoopPublisher) Close() error                                        { return nil }
