package repository

import (
	"context"
	"errors"
	"fmt"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/pkg/metrics"

	"gorm.io/gorm"
)

const categoryTable = "ProductCategory"

type categoryRepository struct {
	db *gorm.DB
}

// NewCategoryRepository создает новый репозиторий категорий
func NewCategoryRepository(db *gorm.DB) CategoryRepository {
	return &categoryRepository{db: db}
}

// GetAll получает все категории, включая помеченные как удалённые
// Результат кешируется в Redis через service layer
func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.ProductCategory, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, categoryTable)
	defer timer.ObserveDuration()

	var categories []entity.ProductCategory
	if err := r.db.WithContext(ctx).Order(`"ProductCategoryID"`).Find(&categories).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}

	return categories, nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int16) (*entity.ProductCategory, error) {
	timer := metrics.NewDbTimer(serviceName, metrics.DbOpSelect, categoryTable)
	defer timer.ObserveDuration()

	var category entity.ProductCategory
	result := r.db.WithContext(ctx).First(&category, `"ProductCategoryID" = ?`, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return nil, fmt.Errorf("failed to get category by id: %w", result.Error)
	}

	return &category, nil
}

func (r *categoryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&entity.ProductCategory{}).Count(&count).Error; err != nil {
		metrics.RecordDbError(serviceName, metrics.DbOpSelect)
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}
