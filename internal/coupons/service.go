package coupons

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

type couponRepository interface {
	FindByCode(ctx context.Context, code string) (*models.Coupon, error)
}

// Service resolves coupon codes at checkout.
type Service interface {
	// Resolve returns the coupon when code names one that has not expired at now.
	// Unknown, blank and expired codes all yield (nil, nil).
	Resolve(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
}

type service struct {
	repo couponRepository
}

func NewService(repo couponRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("coupon repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Resolve(ctx context.Context, code string, now time.Time) (*models.Coupon, error) {
	code = NormalizeCode(code)
	if code == "" {
		return nil, nil
	}
	coupon, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load coupon")
	}
	if !coupon.ActiveAt(now) {
		return nil, nil
	}
	return coupon, nil
}

// NormalizeCode trims and upper-cases a coupon code.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
