package service

import (
	"slices"
	"strings"

	"catalogapi/catalog-service/internal/app/catalog/entity"
)

// sortProducts упорядочивает товары на месте
// Сортировка стабильная: при равных ключах сохраняется порядок выборки из БД
func sortProducts(products []entity.Product, orderBy entity.ProductOrderBy) {
	var cmp func(a, b entity.Product) int

	switch orderBy {
	case entity.OrderByNameAsc:
		cmp = func(a, b entity.Product) int { return strings.Compare(a.Name, b.Name) }
	case entity.OrderByNameDesc:
		cmp = func(a, b entity.Product) int { return strings.Compare(b.Name, a.Name) }
	case entity.OrderByCategoryAsc:
		cmp = func(a, b entity.Product) int { return strings.Compare(a.CategoryName(), b.CategoryName()) }
	case entity.OrderByCategoryDesc:
		cmp = func(a, b entity.Product) int { return strings.Compare(b.CategoryName(), a.CategoryName()) }
	default:
		return
	}

	slices.SortStableFunc(products, cmp)
}

// filterProducts оставляет товары, у которых имя, описание или имя категории
// содержит строку поиска без учёта регистра
func filterProducts(products []entity.Product, searchText string) []entity.Product {
	if strings.TrimSpace(searchText) == "" {
		return products
	}

	needle := strings.ToLower(searchText)
	filtered := make([]entity.Product, 0, len(products))
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) ||
			strings.Contains(strings.ToLower(p.Description), needle) ||
			strings.Contains(strings.ToLower(p.CategoryName()), needle) {
			filtered = append(filtered, p)
		}
	}

	return filtered
}

func totalPages(totalRecords, pageSize int) int {
	pages := totalRecords / pageSize
	if totalRecords%pageSize != 0 {
		pages++
	}
	return pages
}

// paginate вырезает страницу из уже отсортированного и отфильтрованного списка
// pageNumber и pageSize должны быть нормализованы (> 0)
func paginate(products []entity.Product, pageNumber, pageSize int) *entity.ProductPage {
	total := len(products)
	pages := totalPages(total, pageSize)

	page := &entity.ProductPage{
		Items:        []entity.Product{},
		TotalRecords: total,
		TotalPages:   pages,
		PageNumber:   pageNumber,
		PageSize:     pageSize,
	}

	// Сравнение по номеру страницы, а не по смещению: (pageNumber-1)*pageSize может переполниться
	if pageNumber-1 >= pages {
		return page
	}

	offset := (pageNumber - 1) * pageSize
	end := total
	if total-offset > pageSize {
		end = offset + pageSize
	}

	page.Items = append(page.Items, products[offset:end]...)
	return page
}

// runProductQuery - полный in-memory конвейер: сортировка, затем фильтр, затем страница
func runProductQuery(products []entity.Product, q entity.ProductQuery) *entity.ProductPage {
	sortProducts(products, q.OrderBy)
	return paginate(filterProducts(products, q.SearchText), q.PageNumber, q.PageSize)
}
