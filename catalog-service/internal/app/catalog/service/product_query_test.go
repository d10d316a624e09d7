package service

import (
	"fmt"
	"testing"

	"catalogapi/catalog-service/internal/app/catalog/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProduct(id int, name, description, category string) entity.Product {
	return entity.Product{
		ID:          id,
		Name:        name,
		Description: description,
		CategoryID:  int16(len(category)),
		Category:    &entity.ProductCategory{ID: int16(len(category)), Name: category},
	}
}

func names(products []entity.Product) []string {
	result := make([]string, 0, len(products))
	for _, p := range products {
		result = append(result, p.Name)
	}
	return result
}

func ids(products []entity.Product) []int {
	result := make([]int, 0, len(products))
	for _, p := range products {
		result = append(result, p.ID)
	}
	return result
}

func sampleCatalog() []entity.Product {
	return []entity.Product{
		newProduct(1, "Bolt", "Steel bolt", "Hardware"),
		newProduct(2, "Apple", "Green apple", "Food"),
		newProduct(3, "apple pie", "Baked", "Food"),
		newProduct(4, "Nut", "Matches the BOLT", "Hardware"),
		newProduct(5, "Zebra toy", "Plush", "Toys"),
	}
}

// ===================== Sorting Tests =====================

func TestSortProducts_ByNameAscIsOrdinal(t *testing.T) {
	products := sampleCatalog()

	sortProducts(products, entity.OrderByNameAsc)

	// Заглавные буквы идут раньше строчных
	assert.Equal(t, []string{"Apple", "Bolt", "Nut", "Zebra toy", "apple pie"}, names(products))
}

func TestSortProducts_ByNameDesc(t *testing.T) {
	products := sampleCatalog()

	sortProducts(products, entity.OrderByNameDesc)

	assert.Equal(t, []string{"apple pie", "Zebra toy", "Nut", "Bolt", "Apple"}, names(products))
}

func TestSortProducts_ByCategoryIsStable(t *testing.T) {
	products := sampleCatalog()

	sortProducts(products, entity.OrderByCategoryAsc)

	// Food(2,3), Hardware(1,4), Toys(5): внутри категории порядок выборки сохраняется
	assert.Equal(t, []int{2, 3, 1, 4, 5}, ids(products))
}

func TestSortProducts_ByCategoryDescIsStable(t *testing.T) {
	products := sampleCatalog()

	sortProducts(products, entity.OrderByCategoryDesc)

	assert.Equal(t, []int{5, 1, 4, 2, 3}, ids(products))
}

func TestSortProducts_ByCategoryUsesCategoryName(t *testing.T) {
	products := []entity.Product{
		newProduct(1, "A", "", "Zeta"),
		newProduct(2, "Z", "", "Alpha"),
	}

	sortProducts(products, entity.OrderByCategoryAsc)

	assert.Equal(t, []int{2, 1}, ids(products))
}

func TestSortProducts_NoneKeepsOrder(t *testing.T) {
	products := sampleCatalog()

	sortProducts(products, entity.OrderByNone)

	assert.Equal(t, []int{1, 2, 3, 4, 5}, ids(products))
}

func TestSortProducts_MissingCategorySortsFirst(t *testing.T) {
	products := []entity.Product{
		newProduct(1, "A", "", "Food"),
		{ID: 2, Name: "B"},
	}

	sortProducts(products, entity.OrderByCategoryAsc)

	assert.Equal(t, []int{2, 1}, ids(products))
}

// ===================== Filtering Tests =====================

func TestFilterProducts_CaseInsensitiveAcrossFields(t *testing.T) {
	products := sampleCatalog()

	// Act
	result := filterProducts(products, "BoL")

	// Assert - совпадение по имени (Bolt) и по описанию (Nut)
	assert.Equal(t, []int{1, 4}, ids(result))
}

func TestFilterProducts_MatchesCategoryName(t *testing.T) {
	result := filterProducts(sampleCatalog(), "food")

	assert.Equal(t, []int{2, 3}, ids(result))
}

func TestFilterProducts_BlankSearchKeepsEverything(t *testing.T) {
	products := sampleCatalog()

	assert.Len(t, filterProducts(products, ""), 5)
	assert.Len(t, filterProducts(products, "   "), 5)
}

func TestFilterProducts_SearchTextIsNotTrimmed(t *testing.T) {
	// " pie" содержит пробел и находит только "apple pie"
	result := filterProducts(sampleCatalog(), " pie")

	assert.Equal(t, []int{3}, ids(result))
}

func TestFilterProducts_NoMatches(t *testing.T) {
	result := filterProducts(sampleCatalog(), "laptop")

	assert.NotNil(t, result)
	assert.Empty(t, result)
}

// ===================== Pagination Tests =====================

func TestPaginate_PagesAndBounds(t *testing.T) {
	products := make([]entity.Product, 0, 23)
	for i := 1; i <= 23; i++ {
		products = append(products, newProduct(i, fmt.Sprintf("P%02d", i), "", "C"))
	}

	tests := []struct {
		name       string
		pageNumber int
		pageSize   int
		wantIDs    []int
		wantPages  int
	}{
		{"first page", 1, 10, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 3},
		{"last partial page", 3, 10, []int{21, 22, 23}, 3},
		{"beyond last page", 4, 10, []int{}, 3},
		{"exact division", 2, 23, []int{}, 1},
		{"single item pages", 23, 1, []int{23}, 23},
		{"huge page number", int(^uint(0) >> 1), 10, []int{}, 3},
		{"huge page size", 1, int(^uint(0) >> 1), nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page := paginate(products, tt.pageNumber, tt.pageSize)

			require.NotNil(t, page.Items)
			assert.LessOrEqual(t, len(page.Items), tt.pageSize)
			assert.Equal(t, 23, page.TotalRecords)
			assert.Equal(t, tt.wantPages, page.TotalPages)
			if tt.wantIDs != nil {
				assert.Equal(t, tt.wantIDs, ids(page.Items))
			} else {
				assert.Len(t, page.Items, 23)
			}
		})
	}
}

func TestPaginate_Empty(t *testing.T) {
	page := paginate(nil, 1, 10)

	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
	assert.Equal(t, 0, page.TotalRecords)
	assert.Equal(t, 0, page.TotalPages)
}

func TestTotalPagesIsCeiling(t *testing.T) {
	for total := 0; total <= 40; total++ {
		for size := 1; size <= 12; size++ {
			want := (total + size - 1) / size
			assert.Equal(t, want, totalPages(total, size), "total=%d size=%d", total, size)
		}
	}
}

// ===================== Pipeline Tests =====================

func TestRunProductQuery_SortThenFilterThenPage(t *testing.T) {
	page := runProductQuery(sampleCatalog(), entity.ProductQuery{
		SearchText: "apple",
		OrderBy:    entity.OrderByNameDesc,
		PageNumber: 1,
		PageSize:   1,
	})

	assert.Equal(t, []string{"apple pie"}, names(page.Items))
	assert.Equal(t, 2, page.TotalRecords)
	assert.Equal(t, 2, page.TotalPages)
}
