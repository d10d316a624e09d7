package entity

import (
	"time"
)

// ProductCategory представляет категорию товаров
// Флаги Active/Deleted хранятся, но ни одна операция их не учитывает
type ProductCategory struct {
	ID      int16  `json:"productCategoryId" gorm:"column:ProductCategoryID;primaryKey"`
	Name    string `json:"productCategoryName" gorm:"column:ProductCategoryName;type:varchar(255)"`
	Active  bool   `json:"productCategoryActive" gorm:"column:Active"`
	Deleted bool   `json:"productCategoryDeleted" gorm:"column:Deleted"`
}

func (ProductCategory) TableName() string {
	return "ProductCategory"
}

// Product представляет товар в каталоге
// Category заполняется явным join'ом в репозитории, при записи не используется
type Product struct {
	ID          int              `json:"productId" gorm:"column:ProductID;primaryKey"`
	Name        string           `json:"productName" gorm:"column:ProductName;type:varchar(255)" validate:"required,max=255"`
	Description string           `json:"productDescription" gorm:"column:ProductDescription;type:varchar(1024)" validate:"required,max=1024"`
	CategoryID  int16            `json:"productCategoryId" gorm:"column:ProductCategoryID" validate:"required"`
	Image       []byte           `json:"productImage" gorm:"column:ProductImage"`
	Category    *ProductCategory `json:"productCategory,omitempty" gorm:"foreignKey:CategoryID;references:ID" validate:"-"`
}

func (Product) TableName() string {
	return "Product"
}

// CategoryName возвращает имя категории или пустую строку, если категория не загружена
func (p *Product) CategoryName() string {
	if p.Category == nil {
		return ""
	}
	return p.Category.Name
}

// ProductEvent представляет событие изменения товара для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID  int       `json:"product_id"`
	Name       string    `json:"name"`
	CategoryID int16     `json:"category_id"`
	Timestamp  time.Time `json:"timestamp"`
}

const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// CatalogStats - снимок размеров каталога для метрик
type CatalogStats struct {
	Products   int64
	Categories int64
}
