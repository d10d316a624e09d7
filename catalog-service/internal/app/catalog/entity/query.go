package entity

import (
	"errors"
	"strconv"
)

// Значения по умолчанию для постраничной выдачи
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 10
)

var ErrInvalidOrderBy = errors.New("invalid orderBy value")

// ProductOrderBy задаёт порядок сортировки списка товаров
type ProductOrderBy int

const (
	OrderByNone ProductOrderBy = iota
	OrderByNameAsc
	OrderByNameDesc
	OrderByCategoryAsc
	OrderByCategoryDesc
)

var orderByNames = map[ProductOrderBy]string{
	OrderByNone:         "none",
	OrderByNameAsc:      "ByNameAsc",
	OrderByNameDesc:     "ByNameDesc",
	OrderByCategoryAsc:  "ByCategoryAsc",
	OrderByCategoryDesc: "ByCategoryDesc",
}

func (o ProductOrderBy) String() string {
	if name, ok := orderByNames[o]; ok {
		return name
	}
	return "unknown"
}

func (o ProductOrderBy) Valid() bool {
	_, ok := orderByNames[o]
	return ok
}

// ParseProductOrderBy принимает число 0-4 или имя значения
// Пустая строка означает отсутствие сортировки
func ParseProductOrderBy(s string) (ProductOrderBy, error) {
	if s == "" {
		return OrderByNone, nil
	}

	if n, err := strconv.Atoi(s); err == nil {
		o := ProductOrderBy(n)
		if !o.Valid() {
			return OrderByNone, ErrInvalidOrderBy
		}
		return o, nil
	}

	for o, name := range orderByNames {
		if name == s {
			return o, nil
		}
	}

	return OrderByNone, ErrInvalidOrderBy
}

// ProductQuery - параметры запроса списка товаров
type ProductQuery struct {
	SearchText string
	OrderBy    ProductOrderBy
	PageNumber int
	PageSize   int
}

// Normalize подставляет значения по умолчанию для номера и размера страницы
// Любое значение <= 0 заменяется на default
func (q ProductQuery) Normalize() ProductQuery {
	if q.PageNumber <= 0 {
		q.PageNumber = DefaultPageNumber
	}
	if q.PageSize <= 0 {
		q.PageSize = DefaultPageSize
	}
	return q
}

// ProductFilter - запрос к хранилищу при выполнении выборки на стороне БД
type ProductFilter struct {
	SearchText string
	OrderBy    ProductOrderBy
	Offset     int
	Limit      int
}

// ProductPage - страница отфильтрованного и отсортированного списка
// Items никогда не nil и содержит не больше PageSize элементов
type ProductPage struct {
	Items        []Product
	TotalRecords int
	TotalPages   int
	PageNumber   int
	PageSize     int
}

// QueryMode определяет, где выполняется поиск, сортировка и пагинация
type QueryMode string

const (
	QueryModeMemory QueryMode = "memory"
	QueryModeStore  QueryMode = "store"
)

func ParseQueryMode(s string) (QueryMode, error) {
	switch QueryMode(s) {
	case QueryModeMemory, QueryModeStore:
		return QueryMode(s), nil
	}
	return "", errors.New("unknown query mode: " + s)
}
