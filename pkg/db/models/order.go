package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gocart/storefront/pkg/enums"
	"github.com/gocart/storefront/pkg/types"
)

// Order holds the items of a single store from one placement request.
type Order struct {
	ID            uuid.UUID            `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID        string               `gorm:"column:user_id;type:text;not null;index" json:"userId"`
	StoreID       uuid.UUID            `gorm:"column:store_id;type:uuid;not null;index" json:"storeId"`
	AddressID     uuid.UUID            `gorm:"column:address_id;type:uuid;not null" json:"addressId"`
	Total         decimal.Decimal      `gorm:"column:total;type:numeric(12,2);not null" json:"total"`
	Status        enums.OrderStatus    `gorm:"column:status;type:text;not null;default:'ORDER_PLACED'" json:"status"`
	PaymentMethod enums.PaymentMethod  `gorm:"column:payment_method;type:text;not null" json:"paymentMethod"`
	IsPaid        bool                 `gorm:"column:is_paid;not null;default:false" json:"isPaid"`
	IsCouponUsed  bool                 `gorm:"column:is_coupon_used;not null;default:false" json:"isCouponUsed"`
	Coupon        types.CouponSnapshot `gorm:"column:coupon;type:jsonb;serializer:json" json:"coupon"`
	Items         []OrderItem          `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Address       *Address             `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Store         *Store               `gorm:"foreignKey:StoreID" json:"store,omitempty"`
	User          *User                `gorm:"foreignKey:UserID" json:"user,omitempty"`
	CreatedAt     time.Time            `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time            `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// OrderItem is keyed by (order_id, product_id); price is the stored unit price.
type OrderItem struct {
	OrderID   uuid.UUID       `gorm:"column:order_id;type:uuid;primaryKey" json:"orderId"`
	ProductID uuid.UUID       `gorm:"column:product_id;type:uuid;primaryKey" json:"productId"`
	Quantity  int             `gorm:"column:quantity;not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null" json:"price"`
	Product   *Product        `gorm:"foreignKey:ProductID" json:"product,omitempty"`
}

// LineTotal is price × quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
