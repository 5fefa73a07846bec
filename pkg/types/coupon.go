package types

import "github.com/shopspring/decimal"

// CouponSnapshot is the copy of a coupon stored on each order it discounted.
// The zero value serializes to {} and means no coupon was applied.
type CouponSnapshot struct {
	Code        string           `json:"code,omitempty"`
	Discount    *decimal.Decimal `json:"discount,omitempty"`
	Description string           `json:"description,omitempty"`
}

// IsZero reports whether the snapshot is empty.
func (c CouponSnapshot) IsZero() bool {
	return c.Code == "" && c.Discount == nil && c.Description == ""
}
