package util

import (
	"context"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"
)

// CategoryCache интерфейс для кеша списка категорий
// Используется для dependency injection и упрощения тестирования
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.ProductCategory, ttl time.Duration) error
	// GetCategories возвращает nil, nil при промахе кеша
	GetCategories(ctx context.Context) ([]entity.ProductCategory, error)
	Ping(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки сообщений в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
