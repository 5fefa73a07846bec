package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gocart/storefront/pkg/db/models"
)

// Repository defines persistence for orders and their line items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateOrder(ctx context.Context, order *models.Order) error
	CreateItems(ctx context.Context, items []models.OrderItem) error
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Order, error)
	ListByUser(ctx context.Context, userID string) ([]models.Order, error)
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]models.Order, error)
}
