package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gocart/storefront/pkg/types"
)

// Product is the authoritative catalog row; its price always wins over the cart.
type Product struct {
	ID          uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	StoreID     uuid.UUID        `gorm:"column:store_id;type:uuid;not null" json:"storeId"`
	Name        string           `gorm:"column:name;not null" json:"name"`
	Description string           `gorm:"column:description;not null;default:''" json:"description"`
	MRP         decimal.Decimal  `gorm:"column:mrp;type:numeric(12,2);not null" json:"mrp"`
	Price       decimal.Decimal  `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Images      types.StringList `gorm:"column:images;type:jsonb;not null;default:'[]'" json:"images"`
	Category    string           `gorm:"column:category;not null;default:''" json:"category"`
	InStock     bool             `gorm:"column:in_stock;not null;default:true" json:"inStock"`
	Store       *Store           `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
