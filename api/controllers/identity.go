package controllers

import (
	"context"

	"github.com/gocart/storefront/api/middleware"
	"github.com/gocart/storefront/internal/users"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
)

// callerIdentity turns the verified bearer claims into the identity the user
// upsert expects.
func callerIdentity(ctx context.Context) (users.Identity, error) {
	claims := middleware.IdentityFromContext(ctx)
	if claims == nil || claims.UserID() == "" {
		return users.Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	return users.Identity{
		UserID: claims.UserID(),
		Email:  claims.Email,
		Name:   claims.DisplayName(),
		Image:  claims.Picture,
	}, nil
}

func callerID(ctx context.Context) (string, error) {
	id := middleware.UserIDFromContext(ctx)
	if id == "" {
		return "", pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized")
	}
	return id, nil
}
