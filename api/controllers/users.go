package controllers

import (
	"net/http"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/api/validators"
	"github.com/gocart/storefront/internal/users"
	"github.com/gocart/storefront/pkg/logger"
	"github.com/gocart/storefront/pkg/types"
)

type updateProfileRequest struct {
	Name  *string        `json:"name,omitempty"`
	Email *string        `json:"email,omitempty" validate:"omitempty,email"`
	Image *string        `json:"image,omitempty"`
	Cart  *types.JSONMap `json:"cart,omitempty"`
}

// Profile returns the caller with addresses and recent orders, creating the
// local user row on first sight.
func Profile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := callerIdentity(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.EnsureUser(r.Context(), identity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.Profile(r.Context(), identity.UserID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"user": user})
	}
}

func UpdateProfile(svc users.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := callerIdentity(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req updateProfileRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if _, err := svc.EnsureUser(r.Context(), identity); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		user, err := svc.UpdateProfile(r.Context(), identity.UserID, users.UpdateProfileInput{
			Name:  req.Name,
			Email: req.Email,
			Image: req.Image,
			Cart:  req.Cart,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"user": user})
	}
}
