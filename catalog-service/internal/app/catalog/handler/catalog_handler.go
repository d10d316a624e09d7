package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"catalogapi/catalog-service/internal/app/catalog/entity"
	"catalogapi/catalog-service/internal/app/catalog/service"
	"catalogapi/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type CatalogServiceInterface interface {
	ListProducts(ctx context.Context, q entity.ProductQuery) (*entity.ProductPage, error)
	GetProduct(ctx context.Context, id int) (*entity.Product, bool, error)
	UpdateProduct(ctx context.Context, id int, product *entity.Product) (bool, error)
	CreateProduct(ctx context.Context, product *entity.Product) (bool, error)
	DeleteProduct(ctx context.Context, id int) (bool, error)
	ListCategories(ctx context.Context) ([]entity.ProductCategory, error)
	GetCategory(ctx context.Context, id int16) (*entity.ProductCategory, error)
}

// CatalogHandler обрабатывает HTTP запросы для каталога
type CatalogHandler struct {
	catalogService CatalogServiceInterface
	validator      *validator.Validate
}

// NewCatalogHandler создает новый обработчик каталога
func NewCatalogHandler(catalogService CatalogServiceInterface) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
		validator:      validator.New(),
	}
}

// === PRODUCTS HANDLERS ===

// GetProducts обрабатывает GET /api/products
// Тело ответа - массив товаров, итоги пагинации передаются в заголовках
func (h *CatalogHandler) GetProducts(c *gin.Context) {
	query, err := parseProductQuery(c)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.catalogService.ListProducts(c.Request.Context(), query)
	if err != nil {
		respondError(c, err)
		return
	}

	c.Header(entity.HeaderTotalCount, strconv.Itoa(page.TotalRecords))
	c.Header(entity.HeaderTotalPages, strconv.Itoa(page.TotalPages))
	c.Header(entity.HeaderPageNumber, strconv.Itoa(page.PageNumber))
	c.Header(entity.HeaderPageSize, strconv.Itoa(page.PageSize))
	c.JSON(http.StatusOK, page.Items)
}

func parseProductQuery(c *gin.Context) (entity.ProductQuery, error) {
	orderBy, err := entity.ParseProductOrderBy(c.Query("orderBy"))
	if err != nil {
		return entity.ProductQuery{}, err
	}

	pageNumber, err := optionalInt(c.Query("pageNumber"))
	if err != nil {
		return entity.ProductQuery{}, errors.New("pageNumber must be an integer")
	}

	pageSize, err := optionalInt(c.Query("pageSize"))
	if err != nil {
		return entity.ProductQuery{}, errors.New("pageSize must be an integer")
	}

	return entity.ProductQuery{
		SearchText: c.Query("searchText"),
		OrderBy:    orderBy,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// optionalInt: пустая строка - 0, дальше сработает нормализация в сервисе
func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}

// GetProduct обрабатывает GET /api/products/:id
func (h *CatalogHandler) GetProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, found, err := h.catalogService.GetProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		respondMessage(c, http.StatusNotFound, "product "+strconv.Itoa(id)+" not found")
		return
	}

	c.JSON(http.StatusOK, product)
}

// UpdateProduct обрабатывает PUT /api/products/:id
// false от сервиса (id в пути и теле не совпадают) - 404
func (h *CatalogHandler) UpdateProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	product, ok := decodeProduct(c)
	if !ok {
		return
	}
	// Тело с чужим id не валидируем: сервис вернёт false, ответ 404
	if product.ID == id && !h.validProduct(c, product) {
		return
	}

	updated, err := h.catalogService.UpdateProduct(c.Request.Context(), id, product)
	if err != nil {
		respondError(c, err)
		return
	}
	if !updated {
		respondMessage(c, http.StatusNotFound, "product "+strconv.Itoa(id)+" not found")
		return
	}

	c.JSON(http.StatusOK, true)
}

// CreateProduct обрабатывает POST /api/products
// Возвращает 200 с созданным товаром
func (h *CatalogHandler) CreateProduct(c *gin.Context) {
	product, ok := h.bindProduct(c)
	if !ok {
		return
	}

	created, err := h.catalogService.CreateProduct(c.Request.Context(), product)
	if err != nil {
		respondError(c, err)
		return
	}
	if !created {
		respondMessage(c, http.StatusBadRequest, "product was not created")
		return
	}

	c.JSON(http.StatusOK, product)
}

// DeleteProduct обрабатывает DELETE /api/products/:id
func (h *CatalogHandler) DeleteProduct(c *gin.Context) {
	id, ok := productIDParam(c)
	if !ok {
		return
	}

	deleted, err := h.catalogService.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	if !deleted {
		respondMessage(c, http.StatusNotFound, "product "+strconv.Itoa(id)+" not found")
		return
	}

	c.JSON(http.StatusOK, true)
}

func (h *CatalogHandler) bindProduct(c *gin.Context) (*entity.Product, bool) {
	product, ok := decodeProduct(c)
	if !ok || !h.validProduct(c, product) {
		return nil, false
	}
	return product, true
}

func decodeProduct(c *gin.Context) (*entity.Product, bool) {
	var product entity.Product
	if err := c.ShouldBindJSON(&product); err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid request body")
		return nil, false
	}
	return &product, true
}

func (h *CatalogHandler) validProduct(c *gin.Context, product *entity.Product) bool {
	if err := h.validator.Struct(product); err != nil {
		respondMessage(c, http.StatusBadRequest, formatValidationError(err))
		return false
	}
	return true
}

func productIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid product ID")
		return 0, false
	}
	return id, true
}

// === CATEGORIES HANDLERS ===

// GetCategories обрабатывает GET /api/categories (с кешированием)
func (h *CatalogHandler) GetCategories(c *gin.Context) {
	categories, err := h.catalogService.ListCategories(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, categories)
}

// GetCategory обрабатывает GET /api/categories/:id
func (h *CatalogHandler) GetCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 16)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid category ID")
		return
	}

	category, err := h.catalogService.GetCategory(c.Request.Context(), int16(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, category)
}

// === HELPERS ===

// respondError переводит вид ошибки сервиса в HTTP статус
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrValidation):
		status = http.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrConflict):
		status = http.StatusConflict
	}

	if status == http.StatusInternalServerError {
		logger.Error().Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("Catalog request failed")
	}

	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, entity.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
	})
}

func formatValidationError(err error) string {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		for _, fieldError := range validationErrors {
			return fieldError.Field() + " is " + fieldError.Tag()
		}
	}
	return "Validation failed"
}
