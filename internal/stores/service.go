package stores

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db"
	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

const (
	msgAlreadyHasStore = "You already have a store. Only one store per user is allowed."
	msgMissingFields   = "All fields except logo are required"
	msgBadUsername     = "Username can only contain letters, numbers, hyphens, and underscores"
	msgUsernameTaken   = "Username is already taken. Please choose a different one."
)

type storeRepository interface {
	Create(ctx context.Context, store *models.Store) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Store, error)
	FindByUserID(ctx context.Context, userID string) (*models.Store, error)
	UsernameTaken(ctx context.Context, username string) (bool, error)
	List(ctx context.Context, status *enums.StoreStatus) ([]models.Store, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.StoreStatus, active bool) error
	FindWithOwner(ctx context.Context, id uuid.UUID) (*models.Store, error)
}

type userEnsurer interface {
	EnsureUser(ctx context.Context, identity users.Identity) (*models.User, error)
}

type statusRecorder interface {
	IncStoreStatus(status string)
}

// Service exposes seller onboarding and the admin review workflow.
type Service interface {
	GetMine(ctx context.Context, userID string) (*MyStore, error)
	Create(ctx context.Context, identity users.Identity, input CreateStoreInput) (*models.Store, error)
	ListForReview(ctx context.Context, status *enums.StoreStatus) ([]ReviewStore, error)
	UpdateStatus(ctx context.Context, storeID uuid.UUID, status enums.StoreStatus) (*ReviewStore, error)
	// ApprovedStoreFor returns the caller's store, requiring it to be approved.
	ApprovedStoreFor(ctx context.Context, userID string) (*models.Store, error)
}

type service struct {
	repo    storeRepository
	users   userEnsurer
	metrics statusRecorder
}

func NewService(repo storeRepository, usersSvc userEnsurer, metrics statusRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("store repository required")
	}
	if usersSvc == nil {
		return nil, fmt.Errorf("users service required")
	}
	return &service{repo: repo, users: usersSvc, metrics: metrics}, nil
}

func (s *service) GetMine(ctx context.Context, userID string) (*MyStore, error) {
	store, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &MyStore{HasStore: false}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	return &MyStore{HasStore: true, Store: store}, nil
}

func (s *service) Create(ctx context.Context, identity users.Identity, input CreateStoreInput) (*models.Store, error) {
	// One store per user wins over any payload problem.
	existing, err := s.repo.FindByUserID(ctx, identity.UserID)
	switch {
	case err == nil && existing != nil:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgAlreadyHasStore)
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check existing store")
	}

	input = input.normalize()
	if !input.complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgMissingFields)
	}
	if !usernamePattern.MatchString(input.Username) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgBadUsername)
	}

	store := input.toModel(identity.UserID)
	taken, err := s.repo.UsernameTaken(ctx, store.Username)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check username")
	}
	if taken {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, msgUsernameTaken)
	}

	if _, err := s.users.EnsureUser(ctx, identity); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, store); err != nil {
		// Lost a race against a concurrent request; the unique indexes decide.
		switch {
		case db.IsUniqueViolation(err, "stores_username_key"), db.IsUniqueViolation(err, "stores.username"):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgUsernameTaken)
		case db.IsUniqueViolation(err, ""):
			return nil, pkgerrors.New(pkgerrors.CodeValidation, msgAlreadyHasStore)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create store")
	}
	return store, nil
}

func (s *service) ListForReview(ctx context.Context, status *enums.StoreStatus) ([]ReviewStore, error) {
	if status != nil && !status.IsValid() {
		return nil, invalidStatusError()
	}
	rows, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list stores")
	}
	out := make([]ReviewStore, 0, len(rows))
	for _, row := range rows {
		out = append(out, toReviewStore(row))
	}
	return out, nil
}

// UpdateStatus moves a store through the review workflow. Only approved stores are active.
func (s *service) UpdateStatus(ctx context.Context, storeID uuid.UUID, status enums.StoreStatus) (*ReviewStore, error) {
	if storeID == uuid.Nil || strings.TrimSpace(string(status)) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "storeId and status are required")
	}
	if !status.IsValid() {
		return nil, invalidStatusError()
	}

	if err := s.repo.UpdateStatus(ctx, storeID, status, status.IsActive()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update store status")
	}
	if s.metrics != nil {
		s.metrics.IncStoreStatus(string(status))
	}

	store, err := s.repo.FindWithOwner(ctx, storeID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload store")
	}
	review := toReviewStore(*store)
	return &review, nil
}

func (s *service) ApprovedStoreFor(ctx context.Context, userID string) (*models.Store, error) {
	store, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "Store not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load store")
	}
	if store.Status != enums.StoreStatusApproved {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "Store is not approved")
	}
	return store, nil
}

func invalidStatusError() error {
	return pkgerrors.New(pkgerrors.CodeValidation, "Invalid status. Must be pending, approved, or rejected")
}
