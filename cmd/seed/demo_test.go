package main

import (
	"context"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gocart/storefront/internal/coupons"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/pkg/db/dbtest"
	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
)

func TestSeedDemoIsRepeatable(t *testing.T) {
	gdb := dbtest.Open(t)
	ctx := context.Background()
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	first, err := seedDemo(ctx, gdb, gofakeit.New(1), 4, now)
	require.NoError(t, err)
	assert.Equal(t, 4, first.ProductsCreated)
	assert.True(t, first.CouponCreated)

	second, err := seedDemo(ctx, gdb, gofakeit.New(2), 4, now)
	require.NoError(t, err)
	assert.Equal(t, first.StoreID, second.StoreID)
	assert.Zero(t, second.ProductsCreated)
	assert.False(t, second.CouponCreated)

	store, err := stores.NewRepository(gdb).FindByUserID(ctx, demoSellerID)
	require.NoError(t, err)
	assert.Equal(t, enums.StoreStatusApproved, store.Status)
	assert.True(t, store.IsActive)

	var items []models.Product
	require.NoError(t, gdb.Where("store_id = ?", store.ID).Find(&items).Error)
	require.Len(t, items, 4)
	for _, p := range items {
		assert.True(t, p.Price.IsPositive())
		assert.True(t, p.MRP.GreaterThanOrEqual(p.Price), "mrp %s below price %s", p.MRP, p.Price)
		assert.True(t, p.InStock)
	}

	coupon, err := coupons.NewRepository(gdb).FindByCode(ctx, demoCouponCode)
	require.NoError(t, err)
	assert.True(t, coupon.ActiveAt(now))
	assert.False(t, coupon.ActiveAt(now.Add(demoCouponTTL)))
}
