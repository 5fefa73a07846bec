package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/internal/orders"
	"github.com/gocart/storefront/internal/stores"
	"github.com/gocart/storefront/pkg/logger"
)

type feedServer interface {
	Serve(w http.ResponseWriter, r *http.Request, storeID uuid.UUID) error
}

// StoreOrders lists the orders placed against the caller's approved store.
func StoreOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForStore(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orders": list})
	}
}

// StoreOrderFeed upgrades to a websocket that streams new orders for the
// caller's store. Only owners of approved stores may subscribe.
func StoreOrderFeed(storeSvc stores.Service, hub feedServer, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := callerID(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store, err := storeSvc.ApprovedStoreFor(r.Context(), userID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithStoreID(ctx, store.ID.String())
		}
		// The upgrader has already answered the client when Serve fails.
		if err := hub.Serve(w, r.WithContext(ctx), store.ID); err != nil && logg != nil {
			logg.Warn(logg.WithField(ctx, "error", err.Error()), "feed.upgrade_failed")
		}
	}
}

