// internal/domain/catalog/entity.go
package catalog

import (
	"time"

	"gorm.io/gorm"
)

// Display types for homepage category showcases
const (
	DisplayTypeText  = 0
	DisplayTypeImage = 1
)

// Category represents a goods category
type Category struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"not null;size:100" json:"name"`
	Logo      string         `gorm:"size:100" json:"logo"`
	Image     string         `gorm:"size:500" json:"image"`
	SortOrder int            `gorm:"default:0" json:"sort_order"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// SPU groups multiple SKUs of the same item (e.g. same fruit, different pack sizes)
type SPU struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"not null;size:100" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// SKU represents a purchasable product variant
type SKU struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	CategoryID uint           `gorm:"not null;index" json:"category_id"`
	SPUID      uint           `gorm:"not null;index" json:"spu_id"`
	Name       string         `gorm:"not null;size:100" json:"name"`
	Caption    string         `gorm:"size:256" json:"caption"`
	Unit       string         `gorm:"size:20" json:"unit"`
	Price      int64          `gorm:"not null" json:"price"` // Price in cents
	Stock      int            `gorm:"default:1" json:"stock"`
	Sales      int            `gorm:"default:0" json:"sales"`
	Image      string         `gorm:"size:500" json:"image"`
	IsOnSale   bool           `gorm:"default:true" json:"is_on_sale"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Category Category `gorm:"foreignKey:CategoryID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"category"`
	SPU      SPU      `gorm:"foreignKey:SPUID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"spu"`
}

// SlideItem is a homepage carousel entry
type SlideItem struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SKUID     uint      `gorm:"not null;index" json:"sku_id"`
	Image     string    `gorm:"size:500" json:"image"`
	Index     int       `gorm:"default:0" json:"index"` // Smaller values display first
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	SKU SKU `gorm:"foreignKey:SKUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sku"`
}

// Promotion is a homepage promotional banner
type Promotion struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100" json:"name"`
	URL       string    `gorm:"size:500" json:"url"`
	Image     string    `gorm:"size:500" json:"image"`
	Index     int       `gorm:"default:0" json:"index"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryShowcase places a SKU on the homepage under its category,
// either as a text link or an image tile
type CategoryShowcase struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	CategoryID  uint      `gorm:"not null;index" json:"category_id"`
	SKUID       uint      `gorm:"not null;index" json:"sku_id"`
	DisplayType int       `gorm:"not null;default:0" json:"display_type"` // 0 text, 1 image
	Index       int       `gorm:"default:0" json:"index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	SKU SKU `gorm:"foreignKey:SKUID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"sku"`
}

// TableName overrides keep the original storefront schema names
func (Category) TableName() string         { return "df_goods_category" }
func (SPU) TableName() string              { return "df_goods_spu" }
func (SKU) TableName() string              { return "df_goods_sku" }
func (SlideItem) TableName() string        { return "df_index_slide" }
func (Promotion) TableName() string        { return "df_index_promotion" }
func (CategoryShowcase) TableName() string { return "df_index_category_goods" }

// Business methods for SKU

// IsInStock reports whether any quantity is available
func (s *SKU) IsInStock() bool {
	return s.Stock > 0
}

// GetFormattedPrice returns price as a float in major currency units
func (s *SKU) GetFormattedPrice() float64 {
	return float64(s.Price) / 100
}
