package controllers

import (
	"net/http"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/api/validators"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/pkg/logger"
)

// createStoreBodyLimit leaves room for the logo, which arrives inline as a
// base64 data URL (about 6 MB of image).
const createStoreBodyLimit = 8 << 20

type createStoreRequest struct {
	Name        string `json:"name"`
	Username    string `json:"username"`
	Description string `json:"description"`
	Email       string `json:"email"`
	Contact     string `json:"contact"`
	Address     string `json:"address"`
	Logo        string `json:"logo"`
}

func (r createStoreRequest) toInput() stores.CreateStoreInput {
	return stores.CreateStoreInput{
		Name:        validators.SanitizeString(r.Name, 120),
		Username:    r.Username,
		Description: validators.SanitizeString(r.Description, 2000),
		Email:       r.Email,
		Contact:     r.Contact,
		Address:     validators.SanitizeString(r.Address, 500),
		Logo:        r.Logo,
	}
}

// MyStore reports whether the caller has onboarded a store yet.
func MyStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		mine, err := svc.GetMine(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, mine)
	}
}

// CreateStore submits a store for review. It starts pending and inactive.
func CreateStore(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := callerIdentity(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var req createStoreRequest
		if err := validators.DecodeJSONBodyLimit(r, &req, createStoreBodyLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := svc.Create(r.Context(), identity, req.toInput())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, map[string]any{
			"message": "Store created successfully! It will be activated after admin approval.",
			"store":   store,
		})
	}
}
