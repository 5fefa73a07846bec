package stores

import (
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/gocart/storefront/pkg/db/models"
	"github.com/gocart/storefront/pkg/enums"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]+$`)

// CreateStoreInput is the onboarding form. Logo is the only optional field.
type CreateStoreInput struct {
	Name        string
	Username    string
	Description string
	Email       string
	Contact     string
	Address     string
	Logo        string
}

func (in CreateStoreInput) normalize() CreateStoreInput {
	return CreateStoreInput{
		Name:        strings.TrimSpace(in.Name),
		Username:    strings.TrimSpace(in.Username),
		Description: strings.TrimSpace(in.Description),
		Email:       strings.TrimSpace(in.Email),
		Contact:     strings.TrimSpace(in.Contact),
		Address:     strings.TrimSpace(in.Address),
		Logo:        strings.TrimSpace(in.Logo),
	}
}

func (in CreateStoreInput) complete() bool {
	for _, v := range []string{in.Name, in.Username, in.Description, in.Email, in.Contact, in.Address} {
		if v == "" {
			return false
		}
	}
	return true
}

func (in CreateStoreInput) toModel(userID string) *models.Store {
	return &models.Store{
		ID:          uuid.New(),
		UserID:      userID,
		Name:        in.Name,
		Description: in.Description,
		Username:    strings.ToLower(in.Username),
		Address:     in.Address,
		Status:      enums.StoreStatusPending,
		IsActive:    false,
		Logo:        in.Logo,
		Email:       in.Email,
		Contact:     in.Contact,
	}
}

// MyStore answers "does the caller have a store yet".
type MyStore struct {
	HasStore bool          `json:"hasStore"`
	Store    *models.Store `json:"store,omitempty"`
}

// StoreOwner is the slice of the owning user shown to reviewers.
type StoreOwner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ReviewStore is a store as listed on the admin review screen.
type ReviewStore struct {
	models.Store
	User *StoreOwner `json:"user,omitempty"`
}

func toReviewStore(m models.Store) ReviewStore {
	out := ReviewStore{Store: m}
	if m.User != nil {
		out.User = &StoreOwner{ID: m.User.ID, Name: m.User.Name, Email: m.User.Email}
	}
	out.Store.User = nil
	return out
}
