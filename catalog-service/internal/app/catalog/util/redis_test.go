package util

import (
	"context"
	"testing"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// RedisClientTestSuite тестовый suite для кеша категорий
type RedisClientTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	cache     *RedisClient
}

func TestRedisClientSuite(t *testing.T) {
	suite.Run(t, new(RedisClientTestSuite))
}

func (s *RedisClientTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.cache = NewRedisClientFromClient(s.client)
}

func (s *RedisClientTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *RedisClientTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

func (s *RedisClientTestSuite) TestSetAndGetCategories() {
	ctx := context.Background()
	categories := []entity.ProductCategory{
		{ID: 1, Name: "Hardware", Active: true},
		{ID: 2, Name: "Archive", Deleted: true},
	}

	// Act
	err := s.cache.SetCategories(ctx, categories, time.Minute)
	require.NoError(s.T(), err)

	result, err := s.cache.GetCategories(ctx)

	// Assert
	assert.NoError(s.T(), err)
	assert.Equal(s.T(), categories, result)
}

func (s *RedisClientTestSuite) TestGetCategories_Miss() {
	ctx := context.Background()

	// Act
	result, err := s.cache.GetCategories(ctx)

	// Assert
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), result)
}

func (s *RedisClientTestSuite) TestGetCategories_Expired() {
	ctx := context.Background()

	err := s.cache.SetCategories(ctx, []entity.ProductCategory{{ID: 1, Name: "Food"}}, time.Second)
	require.NoError(s.T(), err)

	// miniredis поддерживает FastForward
	s.miniRedis.FastForward(2 * time.Second)

	// Act
	result, err := s.cache.GetCategories(ctx)

	// Assert
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), result)
}

func (s *RedisClientTestSuite) TestGetCategories_CorruptedPayloadIsDropped() {
	ctx := context.Background()
	require.NoError(s.T(), s.miniRedis.Set(categoriesCacheKey, "not-json"))

	// Act
	result, err := s.cache.GetCategories(ctx)

	// Assert
	assert.Error(s.T(), err)
	assert.Nil(s.T(), result)
	assert.Contains(s.T(), err.Error(), "failed to unmarshal categories")
	assert.False(s.T(), s.miniRedis.Exists(categoriesCacheKey))

	// Следующее чтение - обычный промах
	result, err = s.cache.GetCategories(ctx)
	assert.NoError(s.T(), err)
	assert.Nil(s.T(), result)
}

func (s *RedisClientTestSuite) TestPing() {
	assert.NoError(s.T(), s.cache.Ping(context.Background()))
}

func TestNewRedisClient_ConnectionRefused(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	// Act
	client, err := NewRedisClient(addr, "", 0)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, client)
}

func TestNoopCache(t *testing.T) {
	var cache CategoryCache = NoopCache{}
	ctx := context.Background()

	assert.NoError(t, cache.SetCategories(ctx, []entity.ProductCategory{{ID: 1}}, time.Minute))
	categories, err := cache.GetCategories(ctx)
	assert.NoError(t, err)
	assert.Nil(t, categories)

	var publisher MessagePublisher = NoopPublisher{}
	assert.NoError(t, publisher.PublishMessage(ctx, "1", []byte("{}")))
}
