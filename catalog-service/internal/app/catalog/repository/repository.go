package repository

import (
	"context"
	"errors"

	"catalogapi/catalog-service/internal/app/catalog/entity"
)

const serviceName = "catalog-service"

var (
	ErrProductNotFound     = errors.New("product not found")
	ErrCategoryNotFound    = errors.New("category not found")
	ErrConcurrencyConflict = errors.New("row was modified or removed concurrently")
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKey          = errors.New("foreign key violation")
)

type ProductRepository interface {
	GetByID(ctx context.Context, id int) (*entity.Product, error)
	Exists(ctx context.Context, id int) (bool, error)
	GetAllWithCategories(ctx context.Context) ([]entity.Product, error)
	Query(ctx context.Context, filter entity.ProductFilter) ([]entity.Product, int, error)
	Create(ctx context.Context, product *entity.Product) error
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id int) error
	Count(ctx context.Context) (int64, error)
}

type CategoryRepository interface {
	GetAll(ctx context.Context) ([]entity.ProductCategory, error)
	GetByID(ctx context.Context, id int16) (*entity.ProductCategory, error)
	Count(ctx context.Context) (int64, error)
}
