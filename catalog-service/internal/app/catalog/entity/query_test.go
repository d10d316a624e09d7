package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProductOrderBy(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    ProductOrderBy
		wantErr bool
	}{
		{"empty", "", OrderByNone, false},
		{"zero", "0", OrderByNone, false},
		{"number", "2", OrderByNameDesc, false},
		{"name", "ByCategoryDesc", OrderByCategoryDesc, false},
		{"none name", "none", OrderByNone, false},
		{"out of range", "5", OrderByNone, true},
		{"negative", "-1", OrderByNone, true},
		{"unknown name", "ByPrice", OrderByNone, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseProductOrderBy(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidOrderBy)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProductQuery_Normalize(t *testing.T) {
	q := ProductQuery{PageNumber: 0, PageSize: -3}.Normalize()
	assert.Equal(t, 1, q.PageNumber)
	assert.Equal(t, 10, q.PageSize)

	q = ProductQuery{PageNumber: 3, PageSize: 25}.Normalize()
	assert.Equal(t, 3, q.PageNumber)
	assert.Equal(t, 25, q.PageSize)
}

func TestParseQueryMode(t *testing.T) {
	mode, err := ParseQueryMode("store")
	require.NoError(t, err)
	assert.Equal(t, QueryModeStore, mode)

	_, err = ParseQueryMode("cache")
	assert.Error(t, err)
}

func TestProduct_CategoryName(t *testing.T) {
	p := Product{}
	assert.Equal(t, "", p.CategoryName())

	p.Category = &ProductCategory{Name: "Hardware"}
	assert.Equal(t, "Hardware", p.CategoryName())
}
