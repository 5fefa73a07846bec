package middleware

import (
	"net/http"
	"strings"

	"github.com/gocart/storefront/api/responses"
	"github.com/gocart/storefront/api/validators"
	pkgauth "github.com/gocart/storefront/pkg/auth"
	"github.com/gocart/storefront/pkg/config"
	pkgerrors "github.com/gocart/storefront/pkg/errors"
	"github.com/gocart/storefront/pkg/logger"
)

// Identity verifies the identity-provider bearer token and seeds the request
// context with its claims. Websocket upgrades may pass the token as ?token=
// because browsers cannot set headers on them.
func Identity(cfg config.IdentityConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get("Authorization")
			if raw == "" && isWebsocketUpgrade(r) {
				raw = r.URL.Query().Get("token")
			}
			token, err := validators.BearerToken(raw)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "Unauthorized"))
				return
			}

			claims, err := pkgauth.ParseIdentityToken(cfg, token)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "Unauthorized"))
				return
			}

			ctx := WithIdentity(r.Context(), claims)
			if logg != nil {
				ctx = logg.WithFields(ctx, map[string]any{
					"user_id": claims.UserID(),
					"role":    string(claims.Role()),
				})
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func isWebsocketUpgrade(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("Upgrade"), "websocket")
}
