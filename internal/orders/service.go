package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"

	"github.com/gocart/storefront/internal/addresses"
	"github.com/gocart/storefront/internal/products"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/types"
)

const msgPlaced = "Order placed successfully"

// failure reasons reported to metrics.
const (
	reasonValidation = "validation"
	reasonAddress    = "address"
	reasonCatalog    = "catalog"
	reasonStorage    = "storage"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type couponResolver interface {
	Resolve(ctx context.Context, code string, now time.Time) (*models.Coupon, error)
}

type userEnsurer interface {
	EnsureUser(ctx context.Context, identity users.Identity) (*models.User, error)
}

type storeResolver interface {
	ApprovedStoreFor(ctx context.Context, userID string) (*models.Store, error)
}

type orderPublisher interface {
	PublishOrder(order models.Order)
}

type placementRecorder interface {
	IncPlaced(paymentMethod string)
	IncFailure(reason string)
	IncCouponApplied()
}

// Service places and lists orders.
type Service interface {
	Place(ctx context.Context, identity users.Identity, input PlaceOrderInput) (*Placement, error)
	List(ctx context.Context, userID string) ([]models.Order, error)
	ListForStore(ctx context.Context, userID string) ([]models.Order, error)
}

type service struct {
	tx        txRunner
	orders    Repository
	products  *products.Repository
	addresses *addresses.Repository
	coupons   couponResolver
	users     userEnsurer
	stores    storeResolver
	publisher orderPublisher
	metrics   placementRecorder
	now       func() time.Time
}

// ServiceParams wires the order service. Publisher and Metrics are optional.
type ServiceParams struct {
	Tx        txRunner
	Orders    Repository
	Products  *products.Repository
	Addresses *addresses.Repository
	Coupons   couponResolver
	Users     userEnsurer
	Stores    storeResolver
	Publisher orderPublisher
	Metrics   placementRecorder
}

// NewService builds the order service.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if params.Orders == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if params.Products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if params.Addresses == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if params.Coupons == nil {
		return nil, fmt.Errorf("coupon resolver required")
	}
	if params.Users == nil {
		return nil, fmt.Errorf("users service required")
	}
	if params.Stores == nil {
		return nil, fmt.Errorf("store service required")
	}
	return &service{
		tx:        params.Tx,
		orders:    params.Orders,
		products:  params.Products,
		addresses: params.Addresses,
		coupons:   params.Coupons,
		users:     params.Users,
		stores:    params.Stores,
		publisher: params.Publisher,
		metrics:   params.Metrics,
		now:       time.Now,
	}, nil
}

// Place turns a cart into one order per owning store. Everything after input
// validation runs in a single transaction.
func (s *service) Place(ctx context.Context, identity users.Identity, input PlaceOrderInput) (*Placement, error) {
	method, err := validatePlacement(input)
	if err != nil {
		return nil, s.fail(reasonValidation, err)
	}

	if _, err := s.users.EnsureUser(ctx, identity); err != nil {
		return nil, s.fail(reasonStorage, err)
	}

	coupon, err := s.coupons.Resolve(ctx, input.CouponCode(), s.now())
	if err != nil {
		return nil, s.fail(reasonStorage, err)
	}

	items := mergeItems(input.Items)
	var orderIDs []uuid.UUID
	var reason string
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		address, err := s.resolveAddress(ctx, tx, identity.UserID, input)
		if err != nil {
			reason = reasonAddress
			return err
		}

		lines, err := s.priceItems(ctx, tx, items)
		if err != nil {
			reason = reasonCatalog
			return err
		}

		ordersRepo := s.orders.WithTx(tx)
		for _, group := range groupByStore(lines) {
			order := buildOrder(identity.UserID, address.ID, method, group, coupon)
			if err := ordersRepo.CreateOrder(ctx, &order); err != nil {
				reason = reasonStorage
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
			}
			if err := ordersRepo.CreateItems(ctx, order.Items); err != nil {
				reason = reasonStorage
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order items")
			}
			orderIDs = append(orderIDs, order.ID)
		}
		return nil
	})
	if err != nil {
		if reason == "" {
			reason = reasonStorage
		}
		if pkgerrors.As(err) == nil {
			err = pkgerrors.Wrap(pkgerrors.CodeDependency, err, "place order")
		}
		return nil, s.fail(reason, err)
	}

	placed, err := s.loadInOrder(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for _, order := range placed {
		if s.metrics != nil {
			s.metrics.IncPlaced(order.PaymentMethod.String())
			if order.IsCouponUsed {
				s.metrics.IncCouponApplied()
			}
		}
		if s.publisher != nil {
			s.publisher.PublishOrder(order)
		}
	}
	return &Placement{Orders: placed, Message: msgPlaced}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]models.Order, error) {
	rows, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return rows, nil
}

// ListForStore returns the orders received by the caller's approved store.
func (s *service) ListForStore(ctx context.Context, userID string) ([]models.Order, error) {
	store, err := s.stores.ApprovedStoreFor(ctx, userID)
	if err != nil {
		return nil, err
	}
	rows, err := s.orders.ListByStore(ctx, store.ID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list store orders")
	}
	return rows, nil
}

func validatePlacement(input PlaceOrderInput) (enums.PaymentMethod, error) {
	if len(input.Items) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Cart is empty")
	}
	if strings.TrimSpace(input.PaymentMethod) == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Payment method is required")
	}
	method, err := enums.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Invalid payment method. Must be COD or STRIPE")
	}
	for _, item := range input.Items {
		if item.ID == uuid.Nil || item.Quantity < 1 {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "Each item needs a product id and a quantity of at least 1")
		}
	}
	switch {
	case input.AddressID != nil && *input.AddressID != uuid.Nil:
	case input.AddressData != nil:
		if !input.AddressData.Normalize().Complete() {
			return "", pkgerrors.New(pkgerrors.CodeValidation, "All address fields are required")
		}
	default:
		return "", pkgerrors.New(pkgerrors.CodeValidation, "Address is required")
	}
	return method, nil
}

func (s *service) resolveAddress(ctx context.Context, tx *gorm.DB, userID string, input PlaceOrderInput) (*models.Address, error) {
	repo := s.addresses.WithTx(tx)
	if input.AddressID != nil && *input.AddressID != uuid.Nil {
		address, err := repo.FindOwned(ctx, userID, *input.AddressID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "Invalid address")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
		}
		return address, nil
	}

	address := input.AddressData.Normalize().ToModel(userID)
	if err := repo.Create(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return address, nil
}

// priceItems swaps client prices for catalog prices and rejects anything
// that cannot be sold.
func (s *service) priceItems(ctx context.Context, tx *gorm.DB, items []CartItem) ([]pricedLine, error) {
	ids := lo.Map(items, func(item CartItem, _ int) uuid.UUID { return item.ID })
	rows, err := s.products.WithTx(tx).FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load products")
	}
	catalog := lo.KeyBy(rows, func(p models.Product) uuid.UUID { return p.ID })

	lines := make([]pricedLine, 0, len(items))
	for _, item := range items {
		product, ok := catalog[item.ID]
		if !ok {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Product with id %s not found", item.ID)
		}
		if product.Store == nil {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Store not found for product %s", product.Name)
		}
		if !product.InStock {
			return nil, pkgerrors.Newf(pkgerrors.CodeValidation, "Product %s is out of stock", product.Name)
		}
		lines = append(lines, pricedLine{Product: product, Quantity: item.Quantity})
	}
	return lines, nil
}

func buildOrder(userID string, addressID uuid.UUID, method enums.PaymentMethod, group storeGroup, coupon *models.Coupon) models.Order {
	order := models.Order{
		ID:            uuid.New(),
		UserID:        userID,
		StoreID:       group.StoreID,
		AddressID:     addressID,
		Status:        enums.OrderStatusPlaced,
		PaymentMethod: method,
		IsPaid:        method.SettlesAtCheckout(),
	}

	subtotal := group.subtotal()
	order.Total = subtotal
	if coupon != nil {
		pct := coupon.Discount
		order.Total = subtotal.Sub(percentOff(subtotal, pct))
		order.IsCouponUsed = true
		order.Coupon = types.CouponSnapshot{Code: coupon.Code, Discount: &pct, Description: coupon.Description}
	}

	order.Items = lo.Map(group.Lines, func(line pricedLine, _ int) models.OrderItem {
		return models.OrderItem{
			OrderID:   order.ID,
			ProductID: line.Product.ID,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		}
	})
	return order
}

// loadInOrder reloads the created orders with their relations, in creation order.
func (s *service) loadInOrder(ctx context.Context, ids []uuid.UUID) ([]models.Order, error) {
	rows, err := s.orders.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload orders")
	}
	byID := lo.KeyBy(rows, func(o models.Order) uuid.UUID { return o.ID })
	out := make([]models.Order, 0, len(ids))
	for _, id := range ids {
		if order, ok := byID[id]; ok {
			out = append(out, order)
		}
	}
	return out, nil
}

func (s *service) fail(reason string, err error) error {
	if s.metrics != nil {
		s.metrics.IncFailure(reason)
	}
	return err
}
