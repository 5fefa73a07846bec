package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/gocart/storefront/internal/coupons"
	"github.com/gocart/storefront/internal/products"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
	"github.com/gocart/storefront/pkg/types"
)

const (
	demoSellerID      = "demo_seller"
	demoStoreUsername = "demo-store"
	demoCouponCode    = "WELCOME10"
	demoCouponTTL     = 30 * 24 * time.Hour
)

var mrpMarkup = decimal.RequireFromString("1.2")

type demoSummary struct {
	StoreID         uuid.UUID
	ProductsCreated int
	CouponCreated   bool
}

// seedDemo gives a fresh database an approved store with a catalog and one
// live coupon. Each part is skipped when it already exists.
func seedDemo(ctx context.Context, gdb *gorm.DB, faker *gofakeit.Faker, productCount int, now time.Time) (demoSummary, error) {
	var summary demoSummary

	userRepo := users.NewRepository(gdb)
	if _, err := userRepo.FindByID(ctx, demoSellerID); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, fmt.Errorf("load demo seller: %w", err)
		}
		seller := &models.User{ID: demoSellerID, Name: faker.Name(), Email: faker.Email(), Cart: types.JSONMap{}}
		if err := userRepo.Create(ctx, seller); err != nil {
			return summary, fmt.Errorf("create demo seller: %w", err)
		}
	}

	storeRepo := stores.NewRepository(gdb)
	store, err := storeRepo.FindByUserID(ctx, demoSellerID)
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		store = &models.Store{
			ID:          uuid.New(),
			UserID:      demoSellerID,
			Name:        faker.Company(),
			Description: faker.Sentence(8),
			Username:    demoStoreUsername,
			Address:     faker.Street() + ", " + faker.City(),
			Status:      enums.StoreStatusApproved,
			IsActive:    true,
			Email:       faker.Email(),
			Contact:     faker.Phone(),
		}
		if err := storeRepo.Create(ctx, store); err != nil {
			return summary, fmt.Errorf("create demo store: %w", err)
		}
	case err != nil:
		return summary, fmt.Errorf("load demo store: %w", err)
	}
	summary.StoreID = store.ID

	productRepo := products.NewRepository(gdb)
	existing, err := productRepo.CountByStore(ctx, store.ID)
	if err != nil {
		return summary, fmt.Errorf("count demo products: %w", err)
	}
	if existing == 0 {
		for i := 0; i < productCount; i++ {
			price := decimal.NewFromFloat(faker.Price(5, 200)).Round(2)
			product := &models.Product{
				StoreID:     store.ID,
				Name:        faker.ProductName(),
				Description: faker.ProductDescription(),
				MRP:         price.Mul(mrpMarkup).Round(2),
				Price:       price,
				Images:      types.StringList{faker.URL()},
				Category:    faker.ProductCategory(),
				InStock:     true,
			}
			if err := productRepo.Create(ctx, product); err != nil {
				return summary, fmt.Errorf("create demo product: %w", err)
			}
			summary.ProductsCreated++
		}
	}

	couponRepo := coupons.NewRepository(gdb)
	if _, err := couponRepo.FindByCode(ctx, demoCouponCode); err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return summary, fmt.Errorf("load demo coupon: %w", err)
		}
		coupon := &models.Coupon{
			Code:        demoCouponCode,
			Description: "10% off your first order",
			Discount:    decimal.NewFromInt(10),
			ExpiresAt:   now.Add(demoCouponTTL),
		}
		if err := couponRepo.Create(ctx, coupon); err != nil {
			return summary, fmt.Errorf("create demo coupon: %w", err)
		}
		summary.CouponCreated = true
	}

	return summary, nil
}
