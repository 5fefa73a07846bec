package addresses

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

// Input is a delivery address as submitted by a buyer. Every field is required.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
	Country string `json:"country"`
	Phone   string `json:"phone"`
}

// Normalize trims every field.
func (in Input) Normalize() Input {
	return Input{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Street:  strings.TrimSpace(in.Street),
		City:    strings.TrimSpace(in.City),
		State:   strings.TrimSpace(in.State),
		Zip:     strings.TrimSpace(in.Zip),
		Country: strings.TrimSpace(in.Country),
		Phone:   strings.TrimSpace(in.Phone),
	}
}

// Complete reports whether all eight fields are present.
func (in Input) Complete() bool {
	for _, v := range []string{in.Name, in.Email, in.Street, in.City, in.State, in.Zip, in.Country, in.Phone} {
		if v == "" {
			return false
		}
	}
	return true
}

// ToModel builds a new address row owned by userID.
func (in Input) ToModel(userID string) *models.Address {
	return &models.Address{
		ID:      uuid.New(),
		UserID:  userID,
		Name:    in.Name,
		Email:   in.Email,
		Street:  in.Street,
		City:    in.City,
		State:   in.State,
		Zip:     in.Zip,
		Country: in.Country,
		Phone:   in.Phone,
	}
}

type addressRepository interface {
	Create(ctx context.Context, address *models.Address) error
	ListByUser(ctx context.Context, userID string) ([]models.Address, error)
	FindOwned(ctx context.Context, userID string, id uuid.UUID) (*models.Address, error)
}

type userEnsurer interface {
	EnsureUser(ctx context.Context, identity users.Identity) (*models.User, error)
}

type Service interface {
	List(ctx context.Context, userID string) ([]models.Address, error)
	Create(ctx context.Context, identity users.Identity, input Input) (*models.Address, error)
	FindOwned(ctx context.Context, userID string, id uuid.UUID) (*models.Address, error)
}

type service struct {
	repo  addressRepository
	users userEnsurer
}

func NewService(repo addressRepository, usersSvc userEnsurer) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("address repository required")
	}
	if usersSvc == nil {
		return nil, fmt.Errorf("users service required")
	}
	return &service{repo: repo, users: usersSvc}, nil
}

func (s *service) List(ctx context.Context, userID string) ([]models.Address, error) {
	rows, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list addresses")
	}
	if rows == nil {
		rows = []models.Address{}
	}
	return rows, nil
}

func (s *service) Create(ctx context.Context, identity users.Identity, input Input) (*models.Address, error) {
	input = input.Normalize()
	if !input.Complete() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "All address fields are required")
	}
	if _, err := s.users.EnsureUser(ctx, identity); err != nil {
		return nil, err
	}

	address := input.ToModel(identity.UserID)
	if err := s.repo.Create(ctx, address); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create address")
	}
	return address, nil
}

// FindOwned returns CodeNotFound when the address is missing or belongs to someone else.
func (s *service) FindOwned(ctx context.Context, userID string, id uuid.UUID) (*models.Address, error) {
	address, err := s.repo.FindOwned(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "address not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load address")
	}
	return address, nil
}
