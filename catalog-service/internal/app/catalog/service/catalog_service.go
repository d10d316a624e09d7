package service

import (
	"context"
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"time"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/catalog-service/internal/app/catalog/repository"
	"catalogapi/catalog-service/internal/app/catalog/util"
	"catalogapi/pkg/logger"
	"catalogapi/pkg/metrics"
)

// Результаты изменений для метрики catalog_mutations_total
const (
	resultSuccess  = "success"
	resultRejected = "rejected"
	resultError    = "error"
)

// CatalogService обрабатывает бизнес-логику каталога товаров
// Координирует работу репозиториев, Redis кеша категорий и Kafka producer
type CatalogService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        util.CategoryCache
	publisher    util.MessagePublisher
	queryMode    entity.QueryMode
	cacheTTL     time.Duration
}

// NewCatalogService создает новый сервис каталога с внедрением зависимостей
func NewCatalogService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache util.CategoryCache,
	publisher util.MessagePublisher,
	queryMode entity.QueryMode,
	cacheTTL time.Duration,
) *CatalogService {
	if queryMode == "" {
		queryMode = entity.QueryModeMemory
	}
	return &CatalogService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		publisher:    publisher,
		queryMode:    queryMode,
		cacheTTL:     cacheTTL,
	}
}

// === PRODUCTS ===

// ListProducts возвращает страницу товаров с учётом поиска и сортировки
// pageNumber <= 0 и pageSize <= 0 заменяются на 1 и 10
func (s *CatalogService) ListProducts(ctx context.Context, q entity.ProductQuery) (*entity.ProductPage, error) {
	if !q.OrderBy.Valid() {
		return nil, newError(ErrValidation, nil, "unknown orderBy value %d", int(q.OrderBy))
	}
	q = q.Normalize()

	metrics.CatalogListRequests.WithLabelValues(q.OrderBy.String(), string(s.queryMode)).Inc()

	if s.queryMode == entity.QueryModeStore {
		return s.listFromStore(ctx, q)
	}

	// Полная выборка, дальше всё в памяти
	products, err := s.productRepo.GetAllWithCategories(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list products")
	}

	return runProductQuery(products, q), nil
}

// listFromStore выполняет поиск, сортировку и пагинацию в PostgreSQL
func (s *CatalogService) listFromStore(ctx context.Context, q entity.ProductQuery) (*entity.ProductPage, error) {
	offset := math.MaxInt
	if q.PageNumber-1 <= math.MaxInt/q.PageSize {
		offset = (q.PageNumber - 1) * q.PageSize
	}

	products, total, err := s.productRepo.Query(ctx, entity.ProductFilter{
		SearchText: q.SearchText,
		OrderBy:    q.OrderBy,
		Offset:     offset,
		Limit:      q.PageSize,
	})
	if err != nil {
		return nil, storeFailure(err, "failed to list products")
	}
	if products == nil {
		products = []entity.Product{}
	}

	return &entity.ProductPage{
		Items:        products,
		TotalRecords: total,
		TotalPages:   totalPages(total, q.PageSize),
		PageNumber:   q.PageNumber,
		PageSize:     q.PageSize,
	}, nil
}

// GetProduct получает товар с категорией
// Отсутствие товара не является ошибкой: возвращается found = false
func (s *CatalogService) GetProduct(ctx context.Context, id int) (*entity.Product, bool, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, false, nil
		}
		return nil, false, storeFailure(err, "failed to get product %d", id)
	}

	return product, true, nil
}

// UpdateProduct полностью перезаписывает товар
// Несовпадение id пути и тела - false без обращения к БД
func (s *CatalogService) UpdateProduct(ctx context.Context, id int, product *entity.Product) (bool, error) {
	if product.ID != id {
		metrics.RecordMutation("update", resultRejected)
		return false, nil
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		metrics.RecordMutation("update", resultError)
		return false, s.updateError(ctx, product, err)
	}

	metrics.RecordMutation("update", resultSuccess)
	s.publishEvent(ctx, entity.EventProductUpdated, product)

	return true, nil
}

// updateError при конфликте перепроверяет существование строки:
// исчезнувший товар - not found, иначе исходный конфликт
func (s *CatalogService) updateError(ctx context.Context, product *entity.Product, err error) error {
	switch {
	case errors.Is(err, repository.ErrConcurrencyConflict):
		exists, existsErr := s.productRepo.Exists(ctx, product.ID)
		if existsErr != nil {
			return storeFailure(existsErr, "failed to update product %d", product.ID)
		}
		if !exists {
			return newError(ErrNotFound, nil, "product %d - %s does not exist", product.ID, product.Name)
		}
		return newError(ErrConflict, err, "product %d - %s was modified concurrently", product.ID, product.Name)
	case errors.Is(err, repository.ErrForeignKey):
		return newError(ErrValidation, nil, "product category %d does not exist", product.CategoryID)
	default:
		return storeFailure(err, "failed to update product %d", product.ID)
	}
}

// CreateProduct добавляет товар в каталог
// Ненулевой id, который уже занят, - конфликт, вставка не выполняется
func (s *CatalogService) CreateProduct(ctx context.Context, product *entity.Product) (bool, error) {
	if product.ID != 0 {
		exists, err := s.productRepo.Exists(ctx, product.ID)
		if err != nil {
			metrics.RecordMutation("create", resultError)
			return false, storeFailure(err, "failed to create product")
		}
		if exists {
			metrics.RecordMutation("create", resultRejected)
			return false, duplicateError(product)
		}
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		metrics.RecordMutation("create", resultError)
		switch {
		case errors.Is(err, repository.ErrDuplicateKey):
			// Товар с тем же id вставили между проверкой и INSERT
			return false, duplicateError(product)
		case errors.Is(err, repository.ErrForeignKey):
			return false, newError(ErrValidation, nil, "product category %d does not exist", product.CategoryID)
		default:
			return false, storeFailure(err, "failed to create product")
		}
	}

	metrics.RecordMutation("create", resultSuccess)
	s.publishEvent(ctx, entity.EventProductCreated, product)

	return true, nil
}

func duplicateError(product *entity.Product) error {
	return newError(ErrConflict, nil, "product %d - %s already exists in the catalog", product.ID, product.Name)
}

// DeleteProduct удаляет товар; отсутствующий товар - false без удаления
func (s *CatalogService) DeleteProduct(ctx context.Context, id int) (bool, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			metrics.RecordMutation("delete", resultRejected)
			return false, nil
		}
		metrics.RecordMutation("delete", resultError)
		return false, storeFailure(err, "failed to delete product %d", id)
	}

	if err := s.productRepo.Delete(ctx, id); err != nil {
		// Удалён конкурентным запросом после чтения
		if errors.Is(err, repository.ErrProductNotFound) {
			metrics.RecordMutation("delete", resultRejected)
			return false, nil
		}
		metrics.RecordMutation("delete", resultError)
		return false, storeFailure(err, "failed to delete product %d", id)
	}

	metrics.RecordMutation("delete", resultSuccess)
	s.publishEvent(ctx, entity.EventProductDeleted, product)

	return true, nil
}

// publishEvent отправляет событие в Kafka
// Ошибки логируются и не влияют на результат: изменение уже сохранено в БД
func (s *CatalogService) publishEvent(ctx context.Context, eventType string, product *entity.Product) {
	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		CategoryID: product.CategoryID,
		Timestamp:  time.Now().UTC(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("Failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.Itoa(product.ID), data); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Int("product_id", product.ID).
			Msg("Failed to publish product event")
	}
}

// === CATEGORIES ===

// ListCategories получает все категории с кешированием в Redis
// Флаги Active/Deleted не фильтруются
func (s *CatalogService) ListCategories(ctx context.Context) ([]entity.ProductCategory, error) {
	categories, err := s.cache.GetCategories(ctx)
	if err != nil {
		logger.Warn().Err(err).Msg("Failed to read categories from cache")
	} else if categories != nil {
		return categories, nil
	}

	categories, err = s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to list categories")
	}
	if categories == nil {
		categories = []entity.ProductCategory{}
	}

	if err := s.cache.SetCategories(ctx, categories, s.cacheTTL); err != nil {
		logger.Warn().Err(err).Msg("Failed to cache categories")
	}

	return categories, nil
}

func (s *CatalogService) GetCategory(ctx context.Context, id int16) (*entity.ProductCategory, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrCategoryNotFound) {
			return nil, newError(ErrNotFound, nil, "product category %d does not exist", id)
		}
		return nil, storeFailure(err, "failed to get product category %d", id)
	}

	return category, nil
}

// === STATS ===

// RefreshCatalogStats пересчитывает размеры каталога и обновляет gauge метрики
func (s *CatalogService) RefreshCatalogStats(ctx context.Context) (*entity.CatalogStats, error) {
	products, err := s.productRepo.Count(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to count products")
	}

	categories, err := s.categoryRepo.Count(ctx)
	if err != nil {
		return nil, storeFailure(err, "failed to count categories")
	}

	metrics.CatalogProductsTotal.Set(float64(products))
	metrics.CatalogCategoriesTotal.Set(float64(categories))

	return &entity.CatalogStats{Products: products, Categories: categories}, nil
}
