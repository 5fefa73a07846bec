package auth

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/gocart/storefront/pkg/config"
	"github.com/gocart/storefront/pkg/db/models"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/security"
)

// ProvisionRequest describes the admin account the seed command guarantees.
type ProvisionRequest struct {
	Email    string
	Name     string
	Password string
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Provisioner creates the admin account or resets its password and name.
type Provisioner struct {
	tx    txRunner
	repo  *AdminRepository
	pwCfg config.PasswordConfig
}

func NewProvisioner(tx txRunner, repo *AdminRepository, pwCfg config.PasswordConfig) (*Provisioner, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("admin repository required")
	}
	return &Provisioner{tx: tx, repo: repo, pwCfg: pwCfg}, nil
}

// Ensure upserts the admin by email. created reports whether a new row was inserted.
func (p *Provisioner) Ensure(ctx context.Context, req ProvisionRequest) (admin *models.Admin, created bool, err error) {
	email := NormalizeEmail(req.Email)
	if email == "" || req.Password == "" {
		return nil, false, pkgerrors.New(pkgerrors.CodeValidation, "admin email and password are required")
	}
	name := req.Name
	if name == "" {
		name = "Admin"
	}

	hash, err := security.HashPassword(req.Password, p.pwCfg)
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}

	err = p.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := p.repo.WithTx(tx)
		existing, err := repo.FindByEmail(ctx, email)
		switch {
		case err == nil:
			if err := repo.UpdatePassword(ctx, existing.ID, hash); err != nil {
				return err
			}
			if err := repo.UpdateName(ctx, existing.ID, name); err != nil {
				return err
			}
			existing.PasswordHash, existing.Name = hash, name
			admin = existing
			return nil
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return err
		}

		admin = &models.Admin{Email: email, Name: name, PasswordHash: hash}
		created = true
		return repo.Create(ctx, admin)
	})
	if err != nil {
		return nil, false, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "provision admin")
	}
	return admin, created, nil
}
