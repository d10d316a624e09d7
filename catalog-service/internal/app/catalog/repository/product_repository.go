package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/pkg/metrics"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const productTable = "Product"

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository создает новый репозиторий товаров
func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

// GetByID получает товар по ID вместе с категорией (LEFT JOIN)
func (r *productRepository) GetByID(ctx context.Context, id int) (*entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, productTable)
	defer timer.ObserveDuration()

	var product entity.Product
	result := r.db.WithContext(ctx).Joins("Category").First(&product, `"Product"."ProductID" = ?`, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get product: %w", result.Error)
	}

	return &product, nil
}

// Exists проверяет наличие товара без загрузки строки
func (r *productRepository) Exists(ctx context.Context, id int) (bool, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, productTable)
	defer timer.ObserveDuration()

	var count int64
	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where(`"ProductID" = ?`, id).Count(&count)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return false, fmt.Errorf("failed to check product existence: %w", result.Error)
	}

	return count > 0, nil
}

// GetAllWithCategories получает все товары с категориями в порядке первичного ключа
// INNER JOIN: товар без существующей категории в выборку не попадает
func (r *productRepository) GetAllWithCategories(ctx context.Context) ([]entity.Product, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, productTable)
	defer timer.ObserveDuration()

	var products []entity.Product
	result := r.db.WithContext(ctx).InnerJoins("Category").Order(`"Product"."ProductID"`).Find(&products)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get products: %w", result.Error)
	}

	return products, nil
}

// Query выполняет поиск, сортировку и пагинацию на стороне PostgreSQL
// Возвращает страницу товаров и общее количество строк, прошедших фильтр
func (r *productRepository) Query(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, int, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, productTable)
	defer timer.ObserveDuration()

	var total int64
	if err := r.filtered(ctx, filter.SearchText).Count(&total).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	products := []entity.Product{}
	if total == 0 || int64(filter.Offset) >= total {
		return products, int(total), nil
	}

	result := r.filtered(ctx, filter.SearchText).
		Order(orderClause(filter.OrderBy)).
		Offset(filter.Offset).
		Limit(filter.Limit).
		Find(&products)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, 0, fmt.Errorf("failed to query products: %w", result.Error)
	}

	return products, int(total), nil
}

func (r *productRepository) filtered(ctx context.Context, searchText string) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&entity.Product{}).InnerJoins("Category")
	if strings.TrimSpace(searchText) == "" {
		return q
	}

	pattern := "%" + escapeLike(strings.ToLower(searchText)) + "%"
	return q.Where(
		`LOWER("Product"."ProductName") LIKE ? OR LOWER("Product"."ProductDescription") LIKE ? OR LOWER("Category"."ProductCategoryName") LIKE ?`,
		pattern, pattern, pattern,
	)
}

// orderClause повторяет порядок in-memory сортировки:
// побайтовое сравнение (COLLATE "C"), при равенстве - порядок первичного ключа
func orderClause(orderBy entity.ProductOrderBy) string {
	switch orderBy {
	case entity.OrderByNameAsc:
		return `"Product"."ProductName" COLLATE "C" ASC, "Product"."ProductID"`
	case entity.OrderByNameDesc:
		return `"Product"."ProductName" COLLATE "C" DESC, "Product"."ProductID"`
	case entity.OrderByCategoryAsc:
		return `"Category"."ProductCategoryName" COLLATE "C" ASC, "Product"."ProductID"`
	case entity.OrderByCategoryDesc:
		return `"Category"."ProductCategoryName" COLLATE "C" DESC, "Product"."ProductID"`
	default:
		return `"Product"."ProductID"`
	}
}

// escapeLike экранирует спецсимволы LIKE (обратный слэш - escape по умолчанию в PostgreSQL)
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

// Create вставляет товар; связанная категория не записывается
func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpInsert, productTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Omit(clause.Associations).Create(product)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpInsert)
		return translateError("failed to create product", result.Error)
	}

	return nil
}

// Update перезаписывает все неключевые колонки товара
// Ноль затронутых строк означает, что строку удалили конкурентно
func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpUpdate, productTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Model(&entity.Product{}).Where(`"ProductID" = ?`, product.ID).Updates(map[string]interface{}{
		"ProductName":        product.Name,
		"ProductDescription": product.Description,
		"ProductCategoryID":  product.CategoryID,
		"ProductImage":       product.Image,
	})
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpUpdate)
		return translateError("failed to update product", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrConcurrencyConflict
	}

	return nil
}

// Delete удаляет товар
func (r *productRepository) Delete(ctx context.Context, id int) error {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpDelete, productTable)
	defer timer.ObserveDuration()

	result := r.db.WithContext(ctx).Delete(&entity.Product{}, `"ProductID" = ?`, id)
	if result.Error != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpDelete)
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}

	return nil
}

func (r *productRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.Product{}).Count(&count).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return 0, fmt.Errorf("failed to count products: %w", err)
	}
	return count, nil
}

// translateError переводит коды ошибок PostgreSQL в ошибки репозитория
func translateError(msg string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return fmt.Errorf("%s: %w: %w", msg, ErrDuplicateKey, err)
		case "23503": // foreign_key_violation
			return fmt.Errorf("%s: %w: %w", msg, ErrForeignKey, err)
		}
	}
	return fmt.Errorf("%s: %w", msg, err)
}
