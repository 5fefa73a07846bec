package controllers

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/api/validators"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/pkg/enums"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/logger"
)

type updateStoreStatusRequest struct {
	StoreID string `json:"storeId"`
	Status  string `json:"status"`
}

// AdminListStores lists every store for review, optionally filtered by ?status=.
func AdminListStores(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, err := validators.ParseStoreStatusFilter(r, "status")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForReview(r.Context(), status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"stores": list})
	}
}

// AdminUpdateStoreStatus approves, rejects or re-queues a store.
func AdminUpdateStoreStatus(svc stores.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateStoreStatusRequest
		if err := validators.DecodeJSONBody(r, &req); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		storeID := uuid.Nil
		if req.StoreID != "" {
			parsed, err := uuid.Parse(req.StoreID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "Invalid store ID"))
				return
			}
			storeID = parsed
		}
		status := enums.StoreStatus(req.Status)

		store, err := svc.UpdateStatus(r.Context(), storeID, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{
			"store":   store,
			"message": fmt.Sprintf("Store %s successfully", status),
		})
	}
}
