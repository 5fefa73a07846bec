package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon is a percentage discount keyed by its upper-case code.
type Coupon struct {
	Code        string          `gorm:"column:code;type:text;primaryKey" json:"code"`
	Description string          `gorm:"column:description;not null" json:"description"`
	Discount    decimal.Decimal `gorm:"column:discount;type:numeric(5,2);not null" json:"discount"`
	ExpiresAt   time.Time       `gorm:"column:expires_at;not null" json:"expiresAt"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
}

// ActiveAt reports whether the coupon can still be redeemed at now.
func (c Coupon) ActiveAt(now time.Time) bool {
	return c.ExpiresAt.After(now)
}
