package users

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/types"
)

// Identity is what the identity provider tells us about the caller.
type Identity struct {
	UserID string
	Email  string
	Name   string
	Image  string
}

// UpdateProfileInput carries optional profile fields; nil means unchanged.
type UpdateProfileInput struct {
	Name  *string
	Email *string
	Image *string
	Cart  *types.JSONMap
}

type userRepository interface {
	FindByID(ctx context.Context, id string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, id string, columns map[string]any) error
	FindProfile(ctx context.Context, id string) (*models.User, error)
}

// Service manages the local mirror of identity-provider users.
type Service interface {
	EnsureUser(ctx context.Context, identity Identity) (*models.User, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
	UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error)
}

type service struct {
	repo userRepository
}

func NewService(repo userRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("users repository required")
	}
	return &service{repo: repo}, nil
}

// EnsureUser creates the row on first sight and refreshes name, email and image
// when the identity claims changed.
func (s *service) EnsureUser(ctx context.Context, identity Identity) (*models.User, error) {
	if strings.TrimSpace(identity.UserID) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}

	user, err := s.repo.FindByID(ctx, identity.UserID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}

	if user == nil {
		user = &models.User{
			ID:    identity.UserID,
			Name:  displayName(identity),
			Email: identity.Email,
			Image: identity.Image,
			Cart:  types.JSONMap{},
		}
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create user")
		}
		return user, nil
	}

	changes := map[string]any{}
	if name := displayName(identity); identity.Name != "" && name != user.Name {
		changes["name"] = name
		user.Name = name
	}
	if identity.Email != "" && identity.Email != user.Email {
		changes["email"] = identity.Email
		user.Email = identity.Email
	}
	if identity.Image != "" && identity.Image != user.Image {
		changes["image"] = identity.Image
		user.Image = identity.Image
	}
	if err := s.repo.Update(ctx, user.ID, changes); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh user")
	}
	return user, nil
}

func (s *service) Profile(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.FindProfile(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load profile")
	}
	return user, nil
}

func (s *service) UpdateProfile(ctx context.Context, userID string, input UpdateProfileInput) (*models.User, error) {
	columns := map[string]any{}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "Name cannot be empty")
		}
		columns["name"] = name
	}
	if input.Email != nil {
		columns["email"] = strings.TrimSpace(*input.Email)
	}
	if input.Image != nil {
		columns["image"] = strings.TrimSpace(*input.Image)
	}
	if input.Cart != nil {
		cart := *input.Cart
		if cart == nil {
			cart = types.JSONMap{}
		}
		columns["cart"] = cart
	}

	if _, err := s.repo.FindByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "User not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	if err := s.repo.Update(ctx, userID, columns); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update user")
	}

	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload user")
	}
	return user, nil
}

func displayName(identity Identity) string {
	for _, candidate := range []string{identity.Name, identity.Email} {
		if v := strings.TrimSpace(candidate); v != "" {
			return v
		}
	}
	return "User"
}
