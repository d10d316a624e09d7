package util

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/pkg/metrics"

	"github.com/redis/go-redis/v9"
)

const (
	categoriesCacheKey = "catalog:categories:all"
	categoriesKeyLabel = "categories"
	serviceName        = "catalog-service"
)

// RedisClient кеширует список категорий; товары в кеш не попадают
type RedisClient struct {
	client *redis.Client
}

func NewRedisClient(addr, password string, db int) (*RedisClient, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisClient{client: client}, nil
}

// NewRedisClientFromClient оборачивает уже созданный клиент (используется в тестах)
func NewRedisClientFromClient(client *redis.Client) *RedisClient {
	return &RedisClient{client: client}
}

func (r *RedisClient) SetCategories(ctx context.Context, categories []entity.ProductCategory, ttl time.Duration) error {
	data, err := json.Marshal(categories)
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}

	start := time.Now()
	err = r.client.Set(ctx, categoriesCacheKey, data, ttl).Err()
	metrics.ObserveRedis(serviceName, metrics.RedisOpSet, start, err)
	if err != nil {
		return fmt.Errorf("failed to set categories in cache: %w", err)
	}

	return nil
}

// GetCategories читает список категорий из кеша
// Повреждённое значение удаляется, следующий запрос перечитает категории из БД
func (r *RedisClient) GetCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	start := time.Now()
	data, err := r.client.Get(ctx, categoriesCacheKey).Bytes()
	if errors.Is(err, redis.Nil) {
		metrics.ObserveRedis(serviceName, metrics.RedisOpGet, start, nil)
		metrics.RecordCacheLookup(serviceName, categoriesKeyLabel, false)
		return nil, nil
	}
	metrics.ObserveRedis(serviceName, metrics.RedisOpGet, start, err)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories from cache: %w", err)
	}

	var categories []entity.ProductCategory
	if err := json.Unmarshal(data, &categories); err != nil {
		if delErr := r.dropCategories(ctx); delErr != nil {
			return nil, fmt.Errorf("failed to unmarshal categories: %w: %w", err, delErr)
		}
		return nil, fmt.Errorf("failed to unmarshal categories: %w", err)
	}

	metrics.RecordCacheLookup(serviceName, categoriesKeyLabel, true)
	return categories, nil
}

func (r *RedisClient) dropCategories(ctx context.Context) error {
	start := time.Now()
	err := r.client.Del(ctx, categoriesCacheKey).Err()
	metrics.ObserveRedis(serviceName, metrics.RedisOpDel, start, err)
	if err != nil {
		return fmt.Errorf("failed to delete categories from cache: %w", err)
	}
	return nil
}

func (r *RedisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *RedisClient) Close() error {
	return r.client.Close()
}
