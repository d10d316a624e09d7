package entity

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// Заголовки с итогами пагинации для GET /api/products
const (
	HeaderTotalCount = "X-Total-Count"
	HeaderTotalPages = "X-Total-Pages"
	HeaderPageNumber = "X-Page-Number"
	HeaderPageSize   = "X-Page-Size"
)
