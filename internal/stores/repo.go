package stores

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
)

// Repository handles store persistence.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, store *models.Store) error {
	if store == nil {
		return fmt.Errorf("store is required")
	}
	return r.db.WithContext(ctx).Omit("User").Create(store).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// FindByUserID returns the single store a user may own.
func (r *Repository) FindByUserID(ctx context.Context, userID string) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &store, nil
}

// UsernameTaken matches the already-lowercased username.
func (r *Repository) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("username = ?", username).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// List returns stores newest first with their owners, optionally filtered by status.
func (r *Repository) List(ctx context.Context, status *enums.StoreStatus) ([]models.Store, error) {
	query := r.db.WithContext(ctx).Preload("User").Order("created_at DESC")
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var rows []models.Store
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets status and is_active together; gorm.ErrRecordNotFound when
// no row matched.
func (r *Repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus, active bool) error {
	res := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Where("id = ?", id).
		Updates(map[string]any{"status": status, "is_active": active})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// FindWithOwner reloads a store with the owning user.
func (r *Repository) FindWithOwner(ctx context.Context, id uuid.UUID) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).Preload("User").First(&store, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &store, nil
}
