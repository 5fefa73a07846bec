package orders

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/gocart/storefront/internal/addresses"
	"github.com/gocart/storefront/pkg/db/models"
)

// CartItem is one line of the buyer's cart. Price and StoreID are whatever the
// client displayed and are never trusted: the catalog row decides both.
type CartItem struct {
	ID       uuid.UUID        `json:"id" validate:"required"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Price    *decimal.Decimal `json:"price,omitempty"`
	StoreID  *uuid.UUID       `json:"storeId,omitempty"`
}

// CouponInput is the coupon the storefront echoes back at checkout. Clients
// send the whole coupon they fetched; only the code is read and the rest
// (description, discount, expiry) is looked up again.
type CouponInput struct {
	Code string `json:"code"`
}

func (c *CouponInput) UnmarshalJSON(data []byte) error {
	var wire struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	c.Code = wire.Code
	return nil
}

// PlaceOrderInput is the checkout request. Either AddressID or AddressData
// must be present; AddressID wins when both are sent.
type PlaceOrderInput struct {
	Items         []CartItem       `json:"items"`
	AddressID     *uuid.UUID       `json:"addressId,omitempty"`
	AddressData   *addresses.Input `json:"addressData,omitempty"`
	PaymentMethod string           `json:"paymentMethod"`
	Coupon        *CouponInput     `json:"coupon,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
}

// CouponCode returns the submitted code, or "" when none was sent.
func (in PlaceOrderInput) CouponCode() string {
	if in.Coupon == nil {
		return ""
	}
	return in.Coupon.Code
}

// Placement is the result of a successful checkout: one order per store.
type Placement struct {
	Orders  []models.Order `json:"orders"`
	Message string         `json:"message"`
}
